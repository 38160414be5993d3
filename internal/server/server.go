// Package server exposes generation, mutation and audit over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dshills/sitegen/internal/audit"
	"github.com/dshills/sitegen/internal/config"
	"github.com/dshills/sitegen/internal/logger"
	"github.com/dshills/sitegen/internal/metrics"
	"github.com/dshills/sitegen/internal/mutate"
	"github.com/dshills/sitegen/internal/pipeline"
)

// Deps are the services the handlers call. Suggester and Metrics are
// optional.
type Deps struct {
	Pipeline  *pipeline.Pipeline
	Mutator   *mutate.Engine
	Suggester *audit.Suggester
	Metrics   *metrics.Metrics
	// Costs maps a cache name to the estimated price of one avoided call.
	Costs map[string]float64
	Log   logger.Logger
}

// Server is the HTTP API with lifecycle management.
type Server struct {
	deps   Deps
	cfg    config.ServerConfig
	router *gin.Engine
	http   *http.Server
	log    logger.Logger
}

// New builds the router and the underlying http.Server.
func New(cfg config.ServerConfig, deps Deps) (*Server, error) {
	if deps.Pipeline == nil || deps.Mutator == nil {
		return nil, errors.New("server: pipeline and mutation engine are required")
	}
	if deps.Log == nil {
		deps.Log = logger.NewNop()
	}
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{deps: deps, cfg: cfg, log: deps.Log}
	s.router = s.routes()
	s.http = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s, nil
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(recoveryMiddleware(s.log), requestIDMiddleware(), loggerMiddleware(s.log))

	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, errorBody{Error: "method not allowed"})
	})
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, errorBody{Error: "not found"})
	})

	r.GET("/health", s.handleHealth)
	if s.deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(s.deps.Metrics.Handler()))
	}

	api := r.Group("/api")
	api.POST("/generate", s.handleGenerate)
	api.POST("/mutate", s.handleMutate)
	api.POST("/audit", s.handleAudit)
	api.GET("/cache/stats", s.handleCacheStats)
	return r
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.router }

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("starting HTTP server", logger.String("address", s.http.Addr))
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("server error: %w", err)
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	s.log.Info("shutting down HTTP server", logger.Duration("timeout", timeout))
	//nolint:contextcheck // ctx is already cancelled here
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}
	s.log.Info("HTTP server stopped gracefully")
	return nil
}
