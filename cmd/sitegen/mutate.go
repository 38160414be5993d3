package main

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/sitegen/internal/logger"
	"github.com/dshills/sitegen/internal/mutate"
	"github.com/dshills/sitegen/internal/render"
)

type mutateFlags struct {
	site    string
	format  string
	out     string
	diffOut string
}

func newMutateCmd(g *globalFlags) *cobra.Command {
	var flags mutateFlags
	cmd := &cobra.Command{
		Use:   "mutate <command>",
		Short: "Apply a plain-language edit to a site document",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMutate(cmd.Context(), g, strings.Join(args, " "), flags)
		},
	}
	f := cmd.Flags()
	f.StringVar(&flags.site, "site", "", "Site document or generate output to edit (required)")
	f.StringVar(&flags.format, "format", "json", "Output format: json or md")
	f.StringVar(&flags.out, "out", "", "Write output to file instead of stdout")
	f.StringVar(&flags.diffOut, "diff-out", "", "Write the document diff in diff-match-patch format to this file")
	_ = cmd.MarkFlagRequired("site")
	return cmd
}

func runMutate(ctx context.Context, g *globalFlags, command string, flags mutateFlags) error {
	if err := validateFormat(flags.format); err != nil {
		return err
	}
	if strings.TrimSpace(command) == "" {
		return codeError(exitInput, "%s", mutate.ErrEmptyCommand)
	}
	doc, err := loadDocument(flags.site)
	if err != nil {
		return codeError(exitInput, "%s", err)
	}

	a, err := newApp(g, true)
	if err != nil {
		return err
	}
	defer a.log.Sync() //nolint:errcheck

	p, err := a.provider(g.debug)
	if err != nil {
		return err
	}
	res, err := mutate.NewEngine(p, a.log, a.metrics).Apply(ctx, command, doc)
	if err != nil {
		return codeError(exitModel, "applying command: %s", err)
	}

	if flags.diffOut != "" {
		if err := os.WriteFile(flags.diffOut, []byte(res.Diff), 0o644); err != nil {
			a.log.Warn("diff write failed", logger.String("path", flags.diffOut), logger.Error(err))
		}
	}

	return writeReport(&render.Report{
		Tool:    "sitegen",
		Version: version,
		Site:    res.Site,
		Mutation: &render.Mutation{
			Command:     command,
			Changes:     res.Changes,
			Explanation: res.Explanation,
			Suggestions: res.Suggestions,
			Changed:     res.Changed,
		},
	}, flags.format, flags.out)
}
