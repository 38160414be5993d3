// Package normalize turns raw completion text into decoded JSON. Models wrap
// JSON in markdown fences or prose, leave trailing commas and use arbitrary
// key casing; every stage that reads model output goes through here.
package normalize

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// MalformedError is returned when the response is still not valid JSON after
// the repair pass.
type MalformedError struct {
	// Raw is the response as received, truncated for logging.
	Raw string
	Err error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed model response: %v", e.Err)
}

func (e *MalformedError) Unwrap() error { return e.Err }

// IsMalformed reports whether err is (or wraps) a *MalformedError.
func IsMalformed(err error) bool {
	var me *MalformedError
	return errors.As(err, &me)
}

// StripFences removes leading/trailing markdown code fences (```json ... ``` or ``` ... ```).
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		idx := strings.Index(s, "\n")
		if idx < 0 {
			return ""
		}
		s = s[idx+1:]
	}
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s, "```")
	}
	return strings.TrimSpace(s)
}

// ExtractObject returns the text from the first '{' to the last '}'. Input
// without a brace pair is returned unchanged.
func ExtractObject(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end < start {
		return s
	}
	return s[start : end+1]
}

// RepairTrailingCommas drops commas that directly precede '}' or ']',
// ignoring whitespace between them. Commas inside string literals are kept.
func RepairTrailingCommas(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inString, escaped := false, false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			b.WriteByte(c)
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		if c == '"' {
			inString = true
			b.WriteByte(c)
			continue
		}
		if c == ',' {
			j := i + 1
			for j < len(s) && isSpace(s[j]) {
				j++
			}
			if j < len(s) && (s[j] == '}' || s[j] == ']') {
				continue
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// LowercaseKeys returns v with every object key lowercased, recursively.
// When two keys collide after lowercasing, the last one in map order wins.
func LowercaseKeys(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[strings.ToLower(k)] = LowercaseKeys(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = LowercaseKeys(val)
		}
		return out
	default:
		return v
	}
}

// DecodeMap parses raw into a JSON object with lowercased keys. A failed
// parse is retried once after trailing-comma repair.
func DecodeMap(raw string) (map[string]any, error) {
	cleaned := ExtractObject(StripFences(raw))
	var m map[string]any
	err := json.Unmarshal([]byte(cleaned), &m)
	if err != nil {
		if retryErr := json.Unmarshal([]byte(RepairTrailingCommas(cleaned)), &m); retryErr != nil {
			return nil, &MalformedError{Raw: clip(raw, 500), Err: retryErr}
		}
	}
	if m == nil {
		return nil, &MalformedError{Raw: clip(raw, 500), Err: errors.New("response is not a JSON object")}
	}
	return LowercaseKeys(m).(map[string]any), nil
}

// Decode parses raw like DecodeMap and decodes the result into v. Struct
// field matching in encoding/json is case-insensitive, so camelCase tags
// still bind after lowercasing.
func Decode(raw string, v any) error {
	m, err := DecodeMap(raw)
	if err != nil {
		return err
	}
	b, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("re-encoding normalized response: %w", err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return &MalformedError{Raw: clip(raw, 500), Err: err}
	}
	return nil
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
