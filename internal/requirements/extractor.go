// Package requirements turns a free-text site description into a typed
// requirements record.
package requirements

import (
	"context"
	"fmt"

	"github.com/dshills/sitegen/internal/cache"
	"github.com/dshills/sitegen/internal/llm"
	"github.com/dshills/sitegen/internal/logger"
	"github.com/dshills/sitegen/internal/normalize"
	"github.com/dshills/sitegen/internal/site"
)

// extractTemperature is kept low; extraction is classification, not copy.
const extractTemperature = 0.2

// Extractor calls the model to build a Requirements record, memoized on the
// analysis cache.
type Extractor struct {
	provider llm.Provider
	cache    *cache.Cache[site.Requirements]
	log      logger.Logger
}

// NewExtractor returns an Extractor. c may be nil to disable caching.
func NewExtractor(p llm.Provider, c *cache.Cache[site.Requirements], log logger.Logger) *Extractor {
	if log == nil {
		log = logger.NewNop()
	}
	return &Extractor{provider: p, cache: c, log: log}
}

// Key returns the analysis cache key for prompt and opts.
func Key(prompt string, opts site.Options) string {
	return cache.Fingerprint(prompt, opts.Pairs())
}

// Extract returns the requirements for prompt. Caller options override
// whatever the model extracted. Errors are *llm.Error or
// *normalize.MalformedError; callers decide whether to fall back.
func (e *Extractor) Extract(ctx context.Context, prompt string, opts site.Options) (site.Requirements, error) {
	key := Key(prompt, opts)
	if e.cache != nil {
		if req, ok := e.cache.Get(key); ok {
			e.log.Debug("requirements cache hit", logger.String("key", key))
			return req, nil
		}
	}

	resp, err := e.provider.Complete(ctx, &llm.Request{
		SystemPrompt: BuildSystemPrompt(),
		UserPrompt:   BuildUserPrompt(prompt, opts),
		Temperature:  extractTemperature,
	})
	if err != nil {
		return site.Requirements{}, fmt.Errorf("extracting requirements: %w", err)
	}

	var req site.Requirements
	if err := normalize.Decode(resp.Content, &req); err != nil {
		return site.Requirements{}, fmt.Errorf("extracting requirements: %w", err)
	}
	applyOptions(&req, opts)
	req.Normalize()

	if e.cache != nil {
		e.cache.Set(key, req)
	}
	return req, nil
}
