// Package mutate applies free-text edit commands to a site document. The
// model turns a command into a ChangeSet; Merge applies it under rules that
// never delete content.
package mutate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/sitegen/internal/llm"
	"github.com/dshills/sitegen/internal/logger"
	"github.com/dshills/sitegen/internal/normalize"
	"github.com/dshills/sitegen/internal/patch"
	"github.com/dshills/sitegen/internal/site"
)

// ErrEmptyCommand is returned for a blank command; the model is not called.
var ErrEmptyCommand = errors.New("command is required")

// parseTemperature keeps edits conservative.
const parseTemperature = 0.3

// changeSetKeys are the top-level keys of a ChangeSet, used to accept
// responses that omit the "changes" wrapper.
var changeSetKeys = []string{"colors", "fonts", "content", "layout", "components", "animations"}

// Recorder counts mutation outcomes.
type Recorder interface {
	Mutation(result string)
}

// Engine parses and applies edit commands. Results are never cached.
type Engine struct {
	provider llm.Provider
	log      logger.Logger
	rec      Recorder
}

// NewEngine returns an Engine. log and rec may be nil.
func NewEngine(p llm.Provider, log logger.Logger, rec Recorder) *Engine {
	if log == nil {
		log = logger.NewNop()
	}
	return &Engine{provider: p, log: log, rec: rec}
}

// ParseResult is the model's interpretation of a command.
type ParseResult struct {
	Changes     site.ChangeSet `json:"changes"`
	Explanation string         `json:"explanation"`
	Suggestions []string       `json:"additionalSuggestions,omitempty"`
}

// Result is a parsed and merged command.
type Result struct {
	ParseResult
	Site site.Document `json:"site"`
	// Diff is a patch from the old document JSON to the new one.
	Diff string `json:"diff"`
	// Changed lists the dotted paths that differ after the merge.
	Changed []string `json:"changed"`
}

// Parse asks the model for the ChangeSet that implements command on doc.
func (e *Engine) Parse(ctx context.Context, command string, doc site.Document) (*ParseResult, error) {
	if strings.TrimSpace(command) == "" {
		return nil, ErrEmptyCommand
	}
	prompt, err := BuildUserPrompt(command, doc)
	if err != nil {
		return nil, err
	}
	resp, err := e.provider.Complete(ctx, &llm.Request{
		SystemPrompt: systemPrompt,
		UserPrompt:   prompt,
		Temperature:  parseTemperature,
	})
	if err != nil {
		return nil, fmt.Errorf("parsing command: %w", err)
	}

	m, err := normalize.DecodeMap(resp.Content)
	if err != nil {
		return nil, fmt.Errorf("parsing command: %w", err)
	}
	if _, ok := m["changes"]; !ok && hasAnyKey(m, changeSetKeys) {
		m = map[string]any{"changes": m, "explanation": m["explanation"], "additionalsuggestions": m["additionalsuggestions"]}
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("parsing command: %w", err)
	}
	var pr ParseResult
	if err := json.Unmarshal(b, &pr); err != nil {
		return nil, fmt.Errorf("parsing command: %w", &normalize.MalformedError{Raw: resp.Content, Err: err})
	}
	return &pr, nil
}

// Apply parses command and merges the result into doc.
func (e *Engine) Apply(ctx context.Context, command string, doc site.Document) (*Result, error) {
	pr, err := e.Parse(ctx, command, doc)
	if err != nil {
		e.record("failed")
		return nil, err
	}

	if l := pr.Changes.Layout; l != nil && len(l.SectionOrder) > 0 && len(knownSections(l.SectionOrder)) == 0 {
		e.log.Warn("ignored section order with no known sections",
			logger.Strings("section_order", l.SectionOrder),
		)
	}
	merged := Merge(doc, pr.Changes)
	diff, err := patch.Diff(doc, merged)
	if err != nil {
		e.record("failed")
		return nil, err
	}
	changed, err := patch.ChangedPaths(doc, merged)
	if err != nil {
		e.record("failed")
		return nil, err
	}

	outcome := "applied"
	if len(changed) == 0 {
		outcome = "noop"
	}
	e.record(outcome)
	e.log.Info("mutation applied",
		logger.String("outcome", outcome),
		logger.Strings("changed", changed),
	)
	return &Result{ParseResult: *pr, Site: merged, Diff: diff, Changed: changed}, nil
}

func (e *Engine) record(result string) {
	if e.rec != nil {
		e.rec.Mutation(result)
	}
}

func hasAnyKey(m map[string]any, keys []string) bool {
	for _, k := range keys {
		if _, ok := m[k]; ok {
			return true
		}
	}
	return false
}
