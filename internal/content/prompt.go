package content

import (
	"fmt"
	"strings"

	"github.com/dshills/sitegen/internal/site"
	"github.com/dshills/sitegen/internal/template"
)

const systemPromptBase = `You are a website copywriter. You write the text content for a small website
from a structured requirements record.

Writing rules:
- Write specific, concrete copy for this business; avoid lorem ipsum and generic filler
- Do not invent prices, awards, or statistics
- Use placeholder contact details (example.com addresses, 555 phone numbers) unless given real ones
- Match the requested tone

Output rules:
- Return JSON only, no prose, no markdown fences
- Use only the sections and keys shown in the example; omit a section rather than leaving it empty
- All keys are lowercase`

const sectionsExample = `  "hero": {"headline": "...", "subheadline": "...", "ctatext": "...", "ctalink": "#contact"},
  "about": {"title": "...", "description": "...", "mission": "...", "values": ["..."]},
  "services": {"title": "...", "items": [{"title": "...", "description": "..."}]},
  "testimonials": {"title": "...", "items": [{"name": "...", "role": "...", "quote": "...", "rating": 5}]},
  "contact": {"title": "...", "email": "...", "phone": "...", "address": "...", "hours": "...", "formenabled": true},
  "social": {"instagram": "...", "facebook": "..."}`

const projectsExample = `  "projects": [{"title": "...", "description": "...", "tags": ["..."], "link": "..."}],`

const projectsInstruction = "Include a projects list with 3 to 6 entries showing representative work.\n"

// BuildSystemPrompt constructs the system prompt with the template rules.
func BuildSystemPrompt(t *template.Template) string {
	var sb strings.Builder
	sb.WriteString(systemPromptBase)
	if t != nil {
		if rules := t.FormatRulesForPrompt(); rules != "" {
			sb.WriteString("\n\n")
			sb.WriteString(rules)
		}
	}
	return sb.String()
}

// BuildUserPrompt describes the site and the JSON shape to return. The
// projects section is only mentioned when wantProjects is true so the model
// has no cue to fabricate one.
func BuildUserPrompt(req site.Requirements, wantProjects bool) string {
	var sb strings.Builder
	sb.WriteString("Write the website content for these requirements.\n\n")
	fmt.Fprintf(&sb, "Site name: %s\n", req.SiteName)
	if req.Industry != "" {
		fmt.Fprintf(&sb, "Industry: %s\n", req.Industry)
	}
	fmt.Fprintf(&sb, "Site type: %s\n", req.SiteType)
	fmt.Fprintf(&sb, "Tone: %s\n", req.Tone)
	if len(req.Features) > 0 {
		fmt.Fprintf(&sb, "Features: %s\n", strings.Join(req.Features, ", "))
	}
	if req.Description != "" {
		fmt.Fprintf(&sb, "Description: %s\n", req.Description)
	}

	if wantProjects {
		sb.WriteString("\n")
		sb.WriteString(projectsInstruction)
	}

	sb.WriteString("\nRespond with JSON in this shape:\n{\n")
	if wantProjects {
		sb.WriteString(projectsExample)
		sb.WriteString("\n")
	}
	sb.WriteString(sectionsExample)
	sb.WriteString("\n}\n")
	return sb.String()
}
