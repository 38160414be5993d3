package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dshills/sitegen/internal/audit"
	"github.com/dshills/sitegen/internal/mutate"
	"github.com/dshills/sitegen/internal/pipeline"
	"github.com/dshills/sitegen/internal/server"
)

func newServeCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, g)
		},
	}
}

// runServe refuses to start without a usable provider configuration.
func runServe(ctx context.Context, g *globalFlags) error {
	a, err := newApp(g, false)
	if err != nil {
		return err
	}
	defer a.log.Sync() //nolint:errcheck

	p, err := a.provider(g.debug)
	if err != nil {
		return err
	}
	srv, err := server.New(a.cfg.Server, server.Deps{
		Pipeline:  pipeline.New(p, a.caches(), a.cfg.LLM.Model, a.log, a.metrics),
		Mutator:   mutate.NewEngine(p, a.log, a.metrics),
		Suggester: audit.NewSuggester(p, a.log),
		Metrics:   a.metrics,
		Costs:     a.costs(),
		Log:       a.log,
	})
	if err != nil {
		return codeError(exitInput, "%s", err)
	}
	return srv.Run(ctx)
}
