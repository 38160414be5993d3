package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/sitegen/internal/brief"
	"github.com/dshills/sitegen/internal/design"
	"github.com/dshills/sitegen/internal/logger"
	"github.com/dshills/sitegen/internal/pipeline"
	"github.com/dshills/sitegen/internal/render"
	"github.com/dshills/sitegen/internal/site"
)

type generateFlags struct {
	brief    string
	refs     []string
	industry string
	tone     string
	color    string
	features []string
	format   string
	out      string
}

func newGenerateCmd(g *globalFlags) *cobra.Command {
	var flags generateFlags
	cmd := &cobra.Command{
		Use:   "generate [description]",
		Short: "Generate a site document from a description",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.Context(), g, strings.Join(args, " "), flags)
		},
	}
	f := cmd.Flags()
	f.StringVar(&flags.brief, "brief", "", `Read the description from a file ("-" for stdin)`)
	f.StringArrayVar(&flags.refs, "ref", nil, "Reference file (menu, bio, brand notes) appended to the description; may be repeated")
	f.StringVar(&flags.industry, "industry", "", "Industry hint")
	f.StringVar(&flags.tone, "tone", "", "Tone: professional, creative, casual or modern")
	f.StringVar(&flags.color, "color", "", "Preferred primary color as hex, e.g. #1E3A5F")
	f.StringArrayVar(&flags.features, "feature", nil, "Requested feature; may be repeated")
	f.StringVar(&flags.format, "format", "json", "Output format: json or md")
	f.StringVar(&flags.out, "out", "", "Write output to file instead of stdout")
	return cmd
}

func runGenerate(ctx context.Context, g *globalFlags, description string, flags generateFlags) error {
	if err := validateFormat(flags.format); err != nil {
		return err
	}
	if flags.color != "" {
		if _, err := design.ParseHex(flags.color); err != nil {
			return codeError(exitInput, "--color: %s", err)
		}
	}

	prompt, err := resolvePrompt(description, flags)
	if err != nil {
		return err
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
	pl := pipeline.New(p, a.caches(), a.cfg.LLM.Model, a.log, a.metrics)

	opts := site.Options{
		Industry: flags.industry,
		Tone:     flags.tone,
		Colors:   flags.color,
		Features: flags.features,
	}
	a.log.Debug("generating site", logger.Int("prompt_chars", len(prompt)))
	res, err := pl.Generate(ctx, prompt, opts)
	if err != nil {
		return codeError(exitModel, "generating site: %s", err)
	}
	for _, stage := range res.Fallbacks {
		a.log.Warn("stage used fallback output", logger.String("stage", stage))
	}

	analysis := res.Analysis
	return writeReport(&render.Report{
		Tool:     "sitegen",
		Version:  version,
		Site:     res.Site,
		Analysis: &analysis,
		Meta: render.Meta{
			Model:            res.Model,
			GenerationTimeMs: res.Duration.Milliseconds(),
			Cached:           res.Cached,
		},
	}, flags.format, flags.out)
}

// resolvePrompt combines the positional description, the brief file and any
// reference files into one prompt.
func resolvePrompt(description string, flags generateFlags) (string, error) {
	text := strings.TrimSpace(description)
	if flags.brief != "" {
		if text != "" {
			return "", codeError(exitInput, "give the description as an argument or with --brief, not both")
		}
		b, err := brief.Load(flags.brief)
		if err != nil {
			return "", codeError(exitInput, "loading brief: %s", err)
		}
		text = b.Text
	}
	if text == "" {
		return "", codeError(exitInput, "a description is required (argument or --brief)")
	}
	refs, err := brief.LoadReferences(flags.refs)
	if err != nil {
		return "", codeError(exitInput, "%s", err)
	}
	return brief.Compose(text, refs), nil
}
