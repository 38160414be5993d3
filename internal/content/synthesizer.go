// Package content writes the copy for a site. Requests are shaped per
// template before the model call and the response is repaired into typed
// Content afterwards.
package content

import (
	"context"
	"fmt"
	"strings"

	"github.com/dshills/sitegen/internal/cache"
	"github.com/dshills/sitegen/internal/llm"
	"github.com/dshills/sitegen/internal/logger"
	"github.com/dshills/sitegen/internal/normalize"
	"github.com/dshills/sitegen/internal/site"
	"github.com/dshills/sitegen/internal/template"
)

// Synthesizer produces Content for a requirements record and template,
// memoized on the content cache.
type Synthesizer struct {
	provider llm.Provider
	cache    *cache.Cache[site.Content]
	log      logger.Logger
}

// NewSynthesizer returns a Synthesizer. c may be nil to disable caching.
func NewSynthesizer(p llm.Provider, c *cache.Cache[site.Content], log logger.Logger) *Synthesizer {
	if log == nil {
		log = logger.NewNop()
	}
	return &Synthesizer{provider: p, cache: c, log: log}
}

// Key returns the content cache key for req rendered with templateID.
func Key(req site.Requirements, templateID string) string {
	return cache.Fingerprint(req.SiteName+" "+req.Description, map[string]string{
		"template": templateID,
		"siteType": string(req.SiteType),
		"tone":     req.Tone,
		"industry": req.Industry,
		"features": strings.Join(req.Features, ","),
	})
}

// Synthesize returns repaired content for req. An unknown templateID is an
// error; model failures are returned for the caller to fall back on.
func (s *Synthesizer) Synthesize(ctx context.Context, req site.Requirements, templateID string) (site.Content, error) {
	tpl, err := template.Get(templateID)
	if err != nil {
		return site.Content{}, err
	}

	key := Key(req, tpl.ID)
	if s.cache != nil {
		if c, ok := s.cache.Get(key); ok {
			s.log.Debug("content cache hit", logger.String("key", key))
			return c.Clone(), nil
		}
	}

	wantProjects := tpl.WantsProjects(req)
	resp, err := s.provider.Complete(ctx, &llm.Request{
		SystemPrompt: BuildSystemPrompt(tpl),
		UserPrompt:   BuildUserPrompt(req, wantProjects),
	})
	if err != nil {
		return site.Content{}, fmt.Errorf("synthesizing content: %w", err)
	}

	raw, err := normalize.DecodeMap(resp.Content)
	if err != nil {
		return site.Content{}, fmt.Errorf("synthesizing content: %w", err)
	}
	c, notes := Repair(raw, req, wantProjects)
	if len(notes) > 0 {
		s.log.Debug("content repaired",
			logger.String("template", tpl.ID),
			logger.Strings("fixes", notes),
		)
	}

	if s.cache != nil {
		s.cache.Set(key, c.Clone())
	}
	return c, nil
}
