// Package pipeline composes the generation stages: requirement extraction,
// template selection, content synthesis, design and layout.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/dshills/sitegen/internal/cache"
	"github.com/dshills/sitegen/internal/content"
	"github.com/dshills/sitegen/internal/design"
	"github.com/dshills/sitegen/internal/layout"
	"github.com/dshills/sitegen/internal/llm"
	"github.com/dshills/sitegen/internal/logger"
	"github.com/dshills/sitegen/internal/requirements"
	"github.com/dshills/sitegen/internal/site"
	"github.com/dshills/sitegen/internal/template"
)

// ErrEmptyPrompt is returned for a blank prompt; no stage runs.
var ErrEmptyPrompt = errors.New("prompt is required")

// Stage names used in fallback logs and metrics.
const (
	StageRequirements = "requirements"
	StageContent      = "content"
)

// Recorder receives generation metrics.
type Recorder interface {
	ObserveGeneration(d time.Duration, cached bool)
	Fallback(stage string)
}

// Result is a generated site with the analysis that produced it.
type Result struct {
	Site     site.Document     `json:"site"`
	Analysis site.Requirements `json:"analysis"`
	Cached   bool              `json:"cached"`
	Model    string            `json:"model"`
	// Fallbacks lists the stages that used a fallback value.
	Fallbacks []string      `json:"fallbacks,omitempty"`
	Duration  time.Duration `json:"-"`
}

func (r Result) clone() Result {
	out := r
	out.Site = r.Site.Clone()
	out.Analysis.Features = append([]string(nil), r.Analysis.Features...)
	out.Fallbacks = append([]string(nil), r.Fallbacks...)
	return out
}

// Pipeline runs generations. It is safe for concurrent use; concurrent
// requests with the same fingerprint share one run.
type Pipeline struct {
	extractor *requirements.Extractor
	synth     *content.Synthesizer
	caches    *Caches
	model     string
	log       logger.Logger
	rec       Recorder
	group     singleflight.Group
}

// New returns a Pipeline whose model-backed stages call p. model is the
// "provider:model" string reported in results. log and rec may be nil.
func New(p llm.Provider, caches *Caches, model string, log logger.Logger, rec Recorder) *Pipeline {
	if log == nil {
		log = logger.NewNop()
	}
	return &Pipeline{
		extractor: requirements.NewExtractor(p, caches.Analysis, log),
		synth:     content.NewSynthesizer(p, caches.Content, log),
		caches:    caches,
		model:     model,
		log:       log,
		rec:       rec,
	}
}

// Caches returns the pipeline's caches.
func (p *Pipeline) Caches() *Caches { return p.caches }

// CacheStats returns a snapshot of the three caches.
func (p *Pipeline) CacheStats() []cache.Stats { return p.caches.Stats() }

// Generate turns prompt into a site document. Stage failures fall back to
// minimal values; only validation errors and caller cancellation are
// returned. Results produced with a fallback are not cached.
func (p *Pipeline) Generate(ctx context.Context, prompt string, opts site.Options) (*Result, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, ErrEmptyPrompt
	}
	start := time.Now()
	key := cache.Fingerprint(prompt, opts.Pairs())

	if r, ok := p.caches.Results.Get(key); ok {
		out := r.clone()
		out.Cached = true
		out.Duration = time.Since(start)
		p.observe(out.Duration, true)
		p.log.Debug("result cache hit", logger.String("key", key))
		return &out, nil
	}

	v, err, shared := p.group.Do(key, func() (any, error) {
		return p.run(ctx, prompt, opts, key)
	})
	// The shared run belonged to another caller whose context ended; this
	// caller is still live, so run on its own.
	if err != nil && shared && ctx.Err() == nil && isContextErr(err) {
		v, err = p.run(ctx, prompt, opts, key)
	}
	if err != nil {
		return nil, err
	}

	out := v.(Result).clone()
	out.Duration = time.Since(start)
	p.observe(out.Duration, false)
	return &out, nil
}

func (p *Pipeline) run(ctx context.Context, prompt string, opts site.Options, key string) (Result, error) {
	res := Result{Model: p.model}

	req, err := p.extractor.Extract(ctx, prompt, opts)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Result{}, fmt.Errorf("generation aborted: %w", ctxErr)
		}
		p.fallback(StageRequirements, err)
		req = requirements.Fallback(prompt, opts)
		res.Fallbacks = append(res.Fallbacks, StageRequirements)
	}
	if err := ctx.Err(); err != nil {
		return Result{}, fmt.Errorf("generation aborted: %w", err)
	}

	templateID := template.Select(req.SiteType)
	c, err := p.synth.Synthesize(ctx, req, templateID)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Result{}, fmt.Errorf("generation aborted: %w", ctxErr)
		}
		p.fallback(StageContent, err)
		c = content.Fallback(req)
		res.Fallbacks = append(res.Fallbacks, StageContent)
	}
	if err := ctx.Err(); err != nil {
		return Result{}, fmt.Errorf("generation aborted: %w", err)
	}

	res.Analysis = req
	res.Site = site.Document{
		SchemaVersion: content.RepairVersion,
		TemplateID:    templateID,
		Title:         req.SiteName,
		Content:       c,
		Design:        design.Generate(req),
		SectionOrder:  layout.Order(c),
	}

	if len(res.Fallbacks) == 0 {
		p.caches.Results.Set(key, res.clone())
	}
	p.log.Info("site generated",
		logger.String("template", templateID),
		logger.String("site_type", string(req.SiteType)),
		logger.Strings("sections", res.Site.SectionOrder),
		logger.Strings("fallbacks", res.Fallbacks),
	)
	return res, nil
}

func (p *Pipeline) fallback(stage string, err error) {
	p.log.Warn("stage failed, using fallback",
		logger.String("stage", stage),
		logger.String("kind", string(llm.KindOf(err))),
		logger.Error(err),
	)
	if p.rec != nil {
		p.rec.Fallback(stage)
	}
}

func (p *Pipeline) observe(d time.Duration, cached bool) {
	if p.rec != nil {
		p.rec.ObserveGeneration(d, cached)
	}
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
