package audit

import (
	"fmt"
	"strings"

	"github.com/dshills/sitegen/internal/site"
)

const systemPrompt = `You are a web design reviewer. You receive a summary of a website's design
system and the results of automated checks, and you propose concrete improvements.

Suggestion rules:
- Address every failed check first, then at most two further improvements
- Each suggestion carries the exact change to apply, using the change format shown
- Colors are 6-digit hex values; fonts are Google Fonts family names
- Priority 1 is most urgent, 5 least
- category is one of accessibility, typography, layout, color, content

Output rules:
- Return JSON only, no prose, no markdown fences`

const suggestionExample = `{
  "suggestions": [
    {
      "title": "Darken body text",
      "description": "Body text fails WCAG AA contrast on the current background.",
      "category": "accessibility",
      "priority": 1,
      "changes": {"colors": {"text": "#1A1A1A"}}
    }
  ]
}`

// BuildUserPrompt summarizes doc and the check results.
func BuildUserPrompt(doc site.Document, f Findings) string {
	var sb strings.Builder
	sb.WriteString("Review this website design.\n\n")
	fmt.Fprintf(&sb, "Template: %s\n", doc.TemplateID)
	c := doc.Design.Colors
	fmt.Fprintf(&sb, "Colors: primary %s, secondary %s, accent %s, background %s, text %s, secondary text %s\n",
		c.Primary, c.Secondary, c.Accent, c.Background, c.Text, c.TextSecondary)
	fmt.Fprintf(&sb, "Fonts: heading %s, body %s\n", doc.Design.Fonts.Heading, doc.Design.Fonts.Body)
	fmt.Fprintf(&sb, "Section order: %s\n", strings.Join(doc.SectionOrder, ", "))

	sb.WriteString("\nAutomated checks:\n")
	fmt.Fprintf(&sb, "- low contrast: %t (ratio %.2f, minimum %.1f)\n", f.LowContrast, f.ContrastRatio, MinContrast)
	fmt.Fprintf(&sb, "- font issue: %t", f.FontIssue)
	if f.FontReason != "" {
		fmt.Fprintf(&sb, " (%s)", f.FontReason)
	}
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "- section order issue: %t", f.OrderIssue)
	if f.OrderReason != "" {
		fmt.Fprintf(&sb, " (%s)", f.OrderReason)
	}
	sb.WriteString("\n")

	sb.WriteString("\nRespond with JSON in this shape:\n")
	sb.WriteString(suggestionExample)
	sb.WriteString("\n")
	return sb.String()
}
