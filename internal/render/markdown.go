package render

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/dshills/sitegen/internal/site"
)

type markdownRenderer struct{}

var mdTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"join":     strings.Join,
	"sections": sections,
}).Parse(`# {{ .Site.Title }}

**Template:** {{ .Site.TemplateID }}
**Sections:** {{ join .Site.SectionOrder " → " }}
{{ with .Analysis }}**Industry:** {{ .Industry }} | **Type:** {{ .SiteType }} | **Tone:** {{ .Tone }}
{{ end }}
---

## Design

| Role | Color |
|------|-------|
| primary | {{ .Site.Design.Colors.Primary }} |
| secondary | {{ .Site.Design.Colors.Secondary }} |
| accent | {{ .Site.Design.Colors.Accent }} |
| background | {{ .Site.Design.Colors.Background }} |
| backgroundAlt | {{ .Site.Design.Colors.BackgroundAlt }} |
| text | {{ .Site.Design.Colors.Text }} |
| textSecondary | {{ .Site.Design.Colors.TextSecondary }} |

**Fonts:** {{ .Site.Design.Fonts.Heading }} / {{ .Site.Design.Fonts.Body }} (h1 {{ .Site.Design.Fonts.Sizes.H1 }}, h2 {{ .Site.Design.Fonts.Sizes.H2 }}, h3 {{ .Site.Design.Fonts.Sizes.H3 }})

---

## Content
{{ range sections .Site }}
### {{ .Name }}
{{ .Body }}
{{ end }}{{ with .Mutation }}
---

## Mutation

> {{ .Command }}

{{ .Explanation }}
{{ if .Changed }}
Changed: {{ join .Changed ", " }}
{{ end }}{{ range .Suggestions }}- {{ . }}
{{ end }}{{ end }}{{ with .Audit }}
---

## Audit

**Score:** {{ .Score }}/100
- Low contrast: {{ .Findings.LowContrast }} (ratio {{ printf "%.2f" .Findings.ContrastRatio }})
- Font issue: {{ .Findings.FontIssue }}{{ with .Findings.FontReason }} ({{ . }}){{ end }}
- Order issue: {{ .Findings.OrderIssue }}{{ with .Findings.OrderReason }} ({{ . }}){{ end }}
{{ range .Suggestions }}
### P{{ .Priority }} · {{ .Category }} · {{ .Title }}
{{ .Description }}
{{ end }}{{ end }}
---
*Model: {{ or .Meta.Model "n/a" }} | Cached: {{ .Meta.Cached }} | {{ .Meta.GenerationTimeMs }} ms*
`))

type sectionBlock struct {
	Name string
	Body string
}

// sections renders each section in display order as a short markdown body.
func sections(doc site.Document) []sectionBlock {
	c := doc.Content
	var out []sectionBlock
	for _, name := range doc.SectionOrder {
		var lines []string
		switch name {
		case site.SectionHero:
			if c.Hero != nil {
				lines = append(lines, "**"+c.Hero.Headline+"**", c.Hero.Subheadline)
				if c.Hero.CTAText != "" {
					lines = append(lines, fmt.Sprintf("[%s](%s)", c.Hero.CTAText, c.Hero.CTALink))
				}
			}
		case site.SectionAbout:
			if c.About != nil {
				lines = append(lines, c.About.Description)
			}
		case site.SectionServices:
			if c.Services != nil {
				for _, s := range c.Services.Items {
					lines = append(lines, bullet(s.Title, s.Description))
				}
			}
		case site.SectionProjects:
			for _, p := range c.Projects {
				lines = append(lines, bullet(p.Title, p.Description))
			}
		case site.SectionTestimonials:
			if c.Testimonials != nil {
				for _, t := range c.Testimonials.Items {
					lines = append(lines, fmt.Sprintf("> %s (%s)", t.Quote, t.Name))
				}
			}
		case site.SectionContact:
			if c.Contact != nil {
				for _, v := range []string{c.Contact.Email, c.Contact.Phone, c.Contact.Address, c.Contact.Hours} {
					if v != "" {
						lines = append(lines, "- "+v)
					}
				}
			}
		case site.SectionSocial:
			if c.Social != nil {
				for _, v := range []string{c.Social.Twitter, c.Social.LinkedIn, c.Social.Instagram, c.Social.Facebook, c.Social.GitHub, c.Social.YouTube} {
					if v != "" {
						lines = append(lines, "- "+v)
					}
				}
			}
		}
		out = append(out, sectionBlock{Name: name, Body: strings.Join(nonEmpty(lines), "\n")})
	}
	return out
}

func bullet(title, desc string) string {
	if desc == "" {
		return "- **" + title + "**"
	}
	return "- **" + title + "**: " + desc
}

func nonEmpty(lines []string) []string {
	out := lines[:0]
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			out = append(out, l)
		}
	}
	return out
}

func (r *markdownRenderer) Render(report *Report) ([]byte, error) {
	var buf bytes.Buffer
	if err := mdTemplate.Execute(&buf, report); err != nil {
		return nil, fmt.Errorf("rendering markdown: %w", err)
	}
	return buf.Bytes(), nil
}
