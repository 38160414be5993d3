package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/dshills/sitegen/internal/audit"
	"github.com/dshills/sitegen/internal/render"
)

type auditFlags struct {
	site    string
	suggest bool
	format  string
	out     string
}

func newAuditCmd(g *globalFlags) *cobra.Command {
	var flags auditFlags
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Check a site document for contrast, font and ordering problems",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAudit(cmd.Context(), g, flags)
		},
	}
	f := cmd.Flags()
	f.StringVar(&flags.site, "site", "", "Site document or generate output to audit (required)")
	f.BoolVar(&flags.suggest, "suggest", false, "Ask the model for ranked improvement suggestions")
	f.StringVar(&flags.format, "format", "json", "Output format: json or md")
	f.StringVar(&flags.out, "out", "", "Write output to file instead of stdout")
	_ = cmd.MarkFlagRequired("site")
	return cmd
}

// runAudit only builds a provider when suggestions are requested; the checks
// themselves never call the model.
func runAudit(ctx context.Context, g *globalFlags, flags auditFlags) error {
	if err := validateFormat(flags.format); err != nil {
		return err
	}
	doc, err := loadDocument(flags.site)
	if err != nil {
		return codeError(exitInput, "%s", err)
	}

	findings := audit.Run(doc)
	result := &render.Audit{Findings: findings, Score: audit.Score(findings)}

	if flags.suggest {
		a, err := newApp(g, true)
		if err != nil {
			return err
		}
		defer a.log.Sync() //nolint:errcheck
		p, err := a.provider(g.debug)
		if err != nil {
			return err
		}
		sugg, err := audit.NewSuggester(p, a.log).Suggest(ctx, doc, findings)
		if err != nil {
			return codeError(exitModel, "suggesting improvements: %s", err)
		}
		result.Suggestions = sugg
	}

	return writeReport(&render.Report{
		Tool:    "sitegen",
		Version: version,
		Site:    doc,
		Audit:   result,
	}, flags.format, flags.out)
}
