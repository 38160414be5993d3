package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dshills/sitegen/internal/cache"
	"github.com/dshills/sitegen/internal/config"
	"github.com/dshills/sitegen/internal/llm"
	"github.com/dshills/sitegen/internal/logger"
	"github.com/dshills/sitegen/internal/metrics"
	"github.com/dshills/sitegen/internal/pipeline"
	"github.com/dshills/sitegen/internal/render"
	"github.com/dshills/sitegen/internal/site"
)

// app holds what every command needs once config is loaded.
type app struct {
	cfg     *config.Config
	log     logger.Logger
	metrics *metrics.Metrics
}

// newApp loads configuration and builds the logger. Commands other than
// serve log at warn unless --verbose is set.
func newApp(g *globalFlags, quiet bool) (*app, error) {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return nil, codeError(exitInput, "loading config: %s", err)
	}
	logCfg := cfg.Logging
	switch {
	case g.verbose:
		logCfg.Level = "debug"
	case quiet:
		logCfg.Level = "warn"
	}
	log, err := logger.New(logCfg)
	if err != nil {
		return nil, codeError(exitInput, "creating logger: %s", err)
	}
	return &app{cfg: cfg, log: log, metrics: metrics.New()}, nil
}

// provider builds the completion provider behind a Gateway. A missing API
// key is reported here, before any request is made.
func (a *app) provider(debug bool) (llm.Provider, error) {
	p, err := llm.NewProvider(llm.Settings{Model: a.cfg.LLM.Model, BaseURL: a.cfg.LLM.BaseURL})
	if err != nil {
		return nil, codeError(exitProvider, "creating completion provider: %s", err)
	}
	if debug {
		p = &debugProvider{next: p, w: os.Stderr}
	}
	return llm.NewGateway(p, llm.GatewayConfig{
		Timeout:     a.cfg.LLM.CallTimeout,
		Temperature: a.cfg.LLM.Temperature,
		MaxTokens:   a.cfg.LLM.MaxTokens,
	}, a.log, a.metrics), nil
}

func (a *app) caches() *pipeline.Caches {
	toCache := func(s config.CacheSpec) cache.Config {
		return cache.Config{MaxSize: s.MaxSize, TTL: s.TTL}
	}
	return pipeline.NewCaches(pipeline.CacheSizes{
		Analysis: toCache(a.cfg.Cache.Analysis),
		Content:  toCache(a.cfg.Cache.Content),
		Results:  toCache(a.cfg.Cache.Results),
	}, cache.WithObserver(a.metrics))
}

func (a *app) costs() map[string]float64 {
	return map[string]float64{
		pipeline.CacheAnalysis: a.cfg.Cache.Analysis.CostPerCall,
		pipeline.CacheContent:  a.cfg.Cache.Content.CostPerCall,
		pipeline.CacheResults:  a.cfg.Cache.Results.CostPerCall,
	}
}

// debugProvider dumps each outbound request. It sits inside the Gateway, so
// what it prints has already been redacted.
type debugProvider struct {
	next llm.Provider
	w    io.Writer
}

func (d *debugProvider) Complete(ctx context.Context, req *llm.Request) (*llm.Response, error) {
	fmt.Fprintf(d.w, "=== DEBUG: redacted prompt ===\n[SYSTEM]\n%s\n\n[USER]\n%s\n=== END DEBUG ===\n", req.SystemPrompt, req.UserPrompt)
	return d.next.Complete(ctx, req)
}

// loadDocument reads a site document from path. Both a bare document and a
// report produced by this tool (with a "site" key) are accepted.
func loadDocument(path string) (site.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return site.Document{}, fmt.Errorf("reading site file: %w", err)
	}
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return site.Document{}, fmt.Errorf("parsing site file %s: %w", path, err)
	}
	if raw, ok := top["site"]; ok {
		data = raw
	}
	var doc site.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return site.Document{}, fmt.Errorf("parsing site file %s: %w", path, err)
	}
	if doc.TemplateID == "" && len(doc.SectionOrder) == 0 {
		return site.Document{}, errors.New("site file does not contain a site document")
	}
	return doc, nil
}

// writeReport renders report and writes it to out, or stdout when out is
// empty.
func writeReport(report *render.Report, format, out string) error {
	renderer, err := render.NewRenderer(format)
	if err != nil {
		return codeError(exitInput, "invalid format: %s", err)
	}
	data, err := renderer.Render(report)
	if err != nil {
		return codeError(exitInput, "rendering output: %s", err)
	}
	if out != "" {
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return codeError(exitInput, "writing output file: %s", err)
		}
		return nil
	}
	if _, err := os.Stdout.Write(data); err != nil {
		return codeError(exitInput, "writing output: %s", err)
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		fmt.Fprintln(os.Stdout)
	}
	return nil
}

func validateFormat(format string) error {
	switch format {
	case "json", "md":
		return nil
	default:
		return codeError(exitInput, "--format must be json or md, got %q", format)
	}
}
