package render

import (
	"fmt"

	"github.com/dshills/sitegen/internal/audit"
	"github.com/dshills/sitegen/internal/site"
)

// Report is the CLI output envelope for generate, mutate and audit.
type Report struct {
	Tool     string             `json:"tool"`
	Version  string             `json:"version"`
	Site     site.Document      `json:"site"`
	Analysis *site.Requirements `json:"analysis,omitempty"`
	Mutation *Mutation          `json:"mutation,omitempty"`
	Audit    *Audit             `json:"audit,omitempty"`
	Meta     Meta               `json:"meta"`
}

// Mutation describes an applied edit command.
type Mutation struct {
	Command     string         `json:"command"`
	Changes     site.ChangeSet `json:"changes"`
	Explanation string         `json:"explanation"`
	Suggestions []string       `json:"additionalSuggestions,omitempty"`
	Changed     []string       `json:"changed"`
}

// Audit holds design check results.
type Audit struct {
	Findings    audit.Findings     `json:"findings"`
	Score       int                `json:"score"`
	Suggestions []audit.Suggestion `json:"suggestions,omitempty"`
}

// Meta records how the report was produced.
type Meta struct {
	Model            string `json:"model,omitempty"`
	GenerationTimeMs int64  `json:"generationTimeMs"`
	Cached           bool   `json:"cached"`
}

// Renderer formats a Report into bytes for output.
type Renderer interface {
	Render(report *Report) ([]byte, error)
}

// NewRenderer returns a Renderer for the given format string.
// Supported formats: "json" (default), "md".
func NewRenderer(format string) (Renderer, error) {
	switch format {
	case "json", "":
		return &jsonRenderer{}, nil
	case "md":
		return &markdownRenderer{}, nil
	default:
		return nil, fmt.Errorf("unknown format %q: supported formats are json, md", format)
	}
}
