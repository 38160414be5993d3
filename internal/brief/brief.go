// Package brief loads site descriptions and reference material from disk
// for the CLI.
package brief

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dshills/sitegen/internal/redact"
)

// ErrEmpty is returned when a brief has no text.
var ErrEmpty = errors.New("brief is empty")

// Brief holds a loaded site description.
type Brief struct {
	Path string
	Hash string // "sha256:<hex>"
	Text string // trimmed content
}

// Load reads a brief file. "-" reads standard input.
func Load(path string) (*Brief, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading brief: %w", err)
	}
	return parse(path, data)
}

func parse(path string, data []byte) (*Brief, error) {
	text := strings.TrimSpace(string(data))
	if text == "" {
		return nil, fmt.Errorf("%s: %w", path, ErrEmpty)
	}
	sum := sha256.Sum256([]byte(text))
	return &Brief{
		Path: path,
		Hash: fmt.Sprintf("sha256:%x", sum),
		Text: text,
	}, nil
}

// Reference is a supporting document (menu, bio, brand notes) after
// redaction.
type Reference struct {
	Path    string
	Content string
}

// LoadReferences reads and redacts each file.
func LoadReferences(paths []string) ([]Reference, error) {
	refs := make([]Reference, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("loading reference file %q: %w", p, err)
		}
		refs = append(refs, Reference{Path: p, Content: redact.Redact(string(data))})
	}
	return refs, nil
}

// Compose appends each reference to text wrapped in XML-style tags, producing
// the prompt passed to generation.
func Compose(text string, refs []Reference) string {
	if len(refs) == 0 {
		return text
	}
	var sb strings.Builder
	sb.WriteString(text)
	sb.WriteString("\n\n")
	for _, r := range refs {
		fmt.Fprintf(&sb, "<reference file=%q>\n", filepath.Base(r.Path))
		sb.WriteString(r.Content)
		if !strings.HasSuffix(r.Content, "\n") {
			sb.WriteString("\n")
		}
		sb.WriteString("</reference>\n")
	}
	return sb.String()
}
