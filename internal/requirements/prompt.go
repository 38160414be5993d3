package requirements

import (
	"fmt"
	"strings"

	"github.com/dshills/sitegen/internal/site"
)

const systemPrompt = `You are a website requirements analyst. You read a short free-text
description of a website and extract a structured requirements record.

Field rules:
- industry: the business domain in two words or fewer, lowercase (e.g. "restaurant", "software", "photography")
- siteType: exactly one of portfolio, business, resume, landing, restaurant, ecommerce, saas
- tone: one of professional, creative, casual, modern
- features: short lowercase phrases for functionality the user asked for (e.g. "menu", "reservations", "blog")
- siteName: the name of the business or person if stated; otherwise invent nothing and return ""
- description: one or two sentences summarizing what the site is for
- primaryColor: a hex color only if the user named a brand color; otherwise ""

Output rules:
- Return JSON only, no prose, no markdown fences
- Use exactly the keys shown in the example`

const recordExample = `{
  "industry": "restaurant",
  "siteType": "restaurant",
  "tone": "professional",
  "features": ["menu", "reservations"],
  "siteName": "",
  "description": "An Italian restaurant website with an online menu and table reservations.",
  "primaryColor": ""
}`

// BuildSystemPrompt returns the system prompt for requirement extraction.
func BuildSystemPrompt() string {
	return systemPrompt
}

// BuildUserPrompt embeds the description and any caller hints.
func BuildUserPrompt(prompt string, opts site.Options) string {
	var sb strings.Builder
	sb.WriteString("Extract the requirements for this website.\n\n")
	fmt.Fprintf(&sb, "<description>\n%s\n</description>\n", strings.TrimSpace(prompt))

	if hints := formatHints(opts); hints != "" {
		sb.WriteString("\nThe user also supplied these preferences; respect them:\n")
		sb.WriteString(hints)
	}

	sb.WriteString("\nRespond with JSON in this shape:\n")
	sb.WriteString(recordExample)
	sb.WriteString("\n")
	return sb.String()
}

func formatHints(opts site.Options) string {
	var sb strings.Builder
	if opts.Industry != "" {
		fmt.Fprintf(&sb, "- industry: %s\n", opts.Industry)
	}
	if opts.Tone != "" {
		fmt.Fprintf(&sb, "- tone: %s\n", opts.Tone)
	}
	if opts.Colors != "" {
		fmt.Fprintf(&sb, "- brand color: %s\n", opts.Colors)
	}
	if len(opts.Features) > 0 {
		fmt.Fprintf(&sb, "- features: %s\n", strings.Join(opts.Features, ", "))
	}
	return sb.String()
}
