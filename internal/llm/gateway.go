package llm

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dshills/sitegen/internal/logger"
	"github.com/dshills/sitegen/internal/redact"
)

// Recorder receives one outcome per completion call ("ok" or a Kind).
type Recorder interface {
	Completion(outcome string)
}

// GatewayConfig tunes a Gateway.
type GatewayConfig struct {
	// Timeout bounds a single call; the caller's context still applies.
	Timeout     time.Duration
	Temperature float64
	MaxTokens   int
}

// Gateway is the single path from pipeline stages to the completion
// service. It applies defaults and a per-call timeout, redacts secrets from
// outbound prompts and normalizes every failure into an *Error.
type Gateway struct {
	provider Provider
	cfg      GatewayConfig
	log      logger.Logger
	rec      Recorder
}

// NewGateway wraps p. log and rec may be nil.
func NewGateway(p Provider, cfg GatewayConfig, log logger.Logger, rec Recorder) *Gateway {
	if log == nil {
		log = logger.NewNop()
	}
	return &Gateway{provider: p, cfg: cfg, log: log, rec: rec}
}

// Complete implements Provider.
func (g *Gateway) Complete(ctx context.Context, req *Request) (*Response, error) {
	r := *req
	r.SystemPrompt = redact.Redact(r.SystemPrompt)
	r.UserPrompt = redact.Redact(r.UserPrompt)
	if r.Temperature == 0 {
		r.Temperature = g.cfg.Temperature
	}
	if r.MaxTokens == 0 {
		r.MaxTokens = g.cfg.MaxTokens
	}

	callCtx := ctx
	if g.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, g.cfg.Timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := g.provider.Complete(callCtx, &r)
	if err == nil && (resp == nil || strings.TrimSpace(resp.Content) == "") {
		err = errEmptyCompletion
	}
	if err != nil {
		// A cancelled caller is not a gateway timeout; let it propagate as-is
		// so the orchestrator can abort instead of falling back.
		if ctx.Err() != nil && !errors.Is(ctx.Err(), context.DeadlineExceeded) {
			g.record("cancelled")
			return nil, ctx.Err()
		}
		ge := classify(err)
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			ge = &Error{Kind: KindTimeout, Message: "the completion service did not respond in time", Err: err}
		}
		g.record(string(ge.Kind))
		g.log.Warn("completion failed",
			logger.String("kind", string(ge.Kind)),
			logger.Int("status", ge.Status),
			logger.Duration("elapsed", time.Since(start)),
			logger.Error(err),
		)
		return nil, ge
	}

	g.record("ok")
	g.log.Debug("completion succeeded",
		logger.String("model", resp.Model),
		logger.Int("chars", len(resp.Content)),
		logger.Duration("elapsed", time.Since(start)),
	)
	return resp, nil
}

func (g *Gateway) record(outcome string) {
	if g.rec != nil {
		g.rec.Completion(outcome)
	}
}
