package audit

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/dshills/sitegen/internal/llm"
	"github.com/dshills/sitegen/internal/logger"
	"github.com/dshills/sitegen/internal/normalize"
	"github.com/dshills/sitegen/internal/site"
)

// maxSuggestions caps what is returned to the caller.
const maxSuggestions = 5

// Suggestion is a ranked, directly applicable design improvement.
type Suggestion struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Category    string         `json:"category"`
	Priority    int            `json:"priority"`
	Changes     site.ChangeSet `json:"changes"`
}

// Suggester asks the model for improvements given audit findings.
type Suggester struct {
	provider llm.Provider
	log      logger.Logger
}

// NewSuggester returns a Suggester.
func NewSuggester(p llm.Provider, log logger.Logger) *Suggester {
	if log == nil {
		log = logger.NewNop()
	}
	return &Suggester{provider: p, log: log}
}

// Suggest returns suggestions for doc ordered by priority, most urgent first.
func (s *Suggester) Suggest(ctx context.Context, doc site.Document, f Findings) ([]Suggestion, error) {
	resp, err := s.provider.Complete(ctx, &llm.Request{
		SystemPrompt: systemPrompt,
		UserPrompt:   BuildUserPrompt(doc, f),
	})
	if err != nil {
		return nil, fmt.Errorf("suggesting improvements: %w", err)
	}

	var out struct {
		Suggestions []Suggestion `json:"suggestions"`
	}
	if err := normalize.Decode(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("suggesting improvements: %w", err)
	}
	return rank(out.Suggestions), nil
}

// rank drops untitled entries, moves unranked or out-of-range priorities to
// 5 and sorts stably.
func rank(in []Suggestion) []Suggestion {
	out := make([]Suggestion, 0, len(in))
	for _, sg := range in {
		if strings.TrimSpace(sg.Title) == "" {
			continue
		}
		if sg.Priority < 1 || sg.Priority > 5 {
			sg.Priority = 5
		}
		sg.Category = strings.ToLower(sg.Category)
		out = append(out, sg)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Priority < out[j].Priority })
	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	return out
}
