package mutate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dshills/sitegen/internal/site"
)

const systemPrompt = `You are a website editor. You translate a user's edit command into a minimal
change set for an existing website.

Change rules:
- Include ONLY properties that actually change; omit everything else
- Never remove content; to hide a section use components.remove
- To show a hidden or new section use components.add
- layout.sectionOrder must list the complete new order when the order changes
- Colors are 6-digit hex values; fonts are Google Fonts family names
- Recognised sections: hero, about, services, projects, testimonials, contact, social

Output rules:
- Return JSON only, no prose, no markdown fences
- explanation is one or two sentences describing the change for the user`

const changeExample = `{
  "changes": {
    "colors": {"primary": "#1E3A5F"},
    "fonts": {"heading": "Playfair Display"},
    "content": {"hero": {"headline": "..."}},
    "layout": {"sectionOrder": ["hero", "services", "about", "contact"], "spacing": "relaxed", "alignment": "center"},
    "components": {"add": ["testimonials"], "remove": ["about"]},
    "animations": {"hero": "fade-in"}
  },
  "explanation": "...",
  "additionalSuggestions": ["..."]
}`

// snapshot is the reduced document state sent with a command.
type snapshot struct {
	TemplateID   string           `json:"templateId"`
	Colors       site.ColorScheme `json:"colors"`
	Fonts        site.FontScheme  `json:"fonts"`
	SectionOrder []string         `json:"sectionOrder"`
	Sections     map[string]bool  `json:"sections"`
}

func newSnapshot(doc site.Document) snapshot {
	return snapshot{
		TemplateID:   doc.TemplateID,
		Colors:       doc.Design.Colors,
		Fonts:        doc.Design.Fonts,
		SectionOrder: doc.SectionOrder,
		Sections:     doc.Content.Present(),
	}
}

// BuildUserPrompt embeds the command and the document snapshot.
func BuildUserPrompt(command string, doc site.Document) (string, error) {
	snap, err := json.MarshalIndent(newSnapshot(doc), "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding snapshot: %w", err)
	}
	var sb strings.Builder
	sb.WriteString("Current website state:\n")
	sb.Write(snap)
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "<command>\n%s\n</command>\n", strings.TrimSpace(command))
	sb.WriteString("\nRespond with JSON in this shape (every key inside changes is optional):\n")
	sb.WriteString(changeExample)
	sb.WriteString("\n")
	return sb.String(), nil
}
