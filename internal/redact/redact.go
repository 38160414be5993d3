// Package redact scrubs credentials out of text before it leaves the process.
// Site briefs are free-form user input and sometimes carry pasted API keys or
// passwords; nothing matching these rules is ever sent to a completion service.
package redact

import (
	"regexp"
	"sort"
	"strings"
)

const redacted = "[REDACTED]"

// pemPattern matches PEM key blocks across multiple lines.
var pemPattern = regexp.MustCompile(`(?s)-----BEGIN [A-Z ]+KEY-----.*?-----END [A-Z ]+KEY-----`)

type rule struct {
	name string
	re   *regexp.Regexp
}

// rules holds single-line secret-detection regexes in priority order.
var rules = []rule{
	{"aws_access_key", regexp.MustCompile(`AKIA[0-9A-Z]{16}`)},
	{"api_secret_key", regexp.MustCompile(`\bsk-(?:ant-)?[A-Za-z0-9_\-]{20,}`)},
	{"github_token", regexp.MustCompile(`\bgh[pousr]_[A-Za-z0-9]{36,}`)},
	{"jwt", regexp.MustCompile(`eyJ[A-Za-z0-9\-_]+\.[A-Za-z0-9\-_]+\.[A-Za-z0-9\-_]+`)},
	// Bearer tokens need at least 20 chars to avoid matching prose.
	{"bearer_token", regexp.MustCompile(`(?i)Bearer\s+[A-Za-z0-9\-._~+/]{20,}=*`)},
	{"password", regexp.MustCompile(`(?i)password\s*[:=]\s*\S+`)},
}

// Redact replaces known secret patterns in input with [REDACTED].
// The number of newlines in the output always equals the number in the input.
func Redact(input string) string {
	input = pemPattern.ReplaceAllStringFunc(input, func(match string) string {
		lines := strings.Split(match, "\n")
		for i := range lines {
			lines[i] = redacted
		}
		return strings.Join(lines, "\n")
	})
	for _, r := range rules {
		input = r.re.ReplaceAllString(input, redacted)
	}
	return input
}

// Findings returns the sorted names of the rules that match input. It is used
// for logging; the matched text itself is never returned.
func Findings(input string) []string {
	var names []string
	if pemPattern.MatchString(input) {
		names = append(names, "pem_key")
	}
	for _, r := range rules {
		if r.re.MatchString(input) {
			names = append(names, r.name)
		}
	}
	sort.Strings(names)
	return names
}
