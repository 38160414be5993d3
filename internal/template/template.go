package template

import (
	"fmt"
	"strings"

	"github.com/dshills/sitegen/internal/site"
)

// ProjectsPolicy controls whether the content prompt asks for a projects
// section.
type ProjectsPolicy int

const (
	// ProjectsNever omits the projects instruction entirely.
	ProjectsNever ProjectsPolicy = iota
	// ProjectsKeywordGated requests projects only when the requirements
	// mention project-like work.
	ProjectsKeywordGated
	// ProjectsAlways requests projects for every site.
	ProjectsAlways
)

// Default is the general-purpose template used for unmapped site types.
const Default = "professional-business"

// Template defines the content rules for a named site template.
type Template struct {
	ID               string
	Purpose          string
	Projects         ProjectsPolicy
	RequiredSections []string
	Guidelines       []string
}

// projectKeywords are matched case-insensitively against features and the
// description.
var projectKeywords = []string{
	"project",
	"portfolio",
	"work sample",
	"case study",
	"case studies",
	"gallery",
	"showcase",
}

// IDs lists the built-in template identifiers.
func IDs() []string {
	return []string{"modern-portfolio", "professional-business", "minimal-resume", "startup-landing"}
}

// Get returns the built-in template for the given id.
func Get(id string) (*Template, error) {
	switch id {
	case "professional-business", "":
		return professionalBusiness(), nil
	case "modern-portfolio":
		return modernPortfolio(), nil
	case "minimal-resume":
		return minimalResume(), nil
	case "startup-landing":
		return startupLanding(), nil
	default:
		return nil, fmt.Errorf("unknown template %q: valid templates are %s", id, strings.Join(IDs(), ", "))
	}
}

// Select maps a site type to its template id.
func Select(t site.SiteType) string {
	switch t {
	case site.SiteTypePortfolio:
		return "modern-portfolio"
	case site.SiteTypeResume:
		return "minimal-resume"
	case site.SiteTypeLanding, site.SiteTypeSaaS:
		return "startup-landing"
	default:
		return Default
	}
}

// WantsProjects reports whether content for req should include projects.
func (t *Template) WantsProjects(req site.Requirements) bool {
	switch t.Projects {
	case ProjectsAlways:
		return true
	case ProjectsKeywordGated:
		return mentionsProjects(req)
	default:
		return false
	}
}

func mentionsProjects(req site.Requirements) bool {
	texts := append([]string{req.Description}, req.Features...)
	for _, text := range texts {
		lower := strings.ToLower(text)
		for _, kw := range projectKeywords {
			if strings.Contains(lower, kw) {
				return true
			}
		}
	}
	return false
}

// FormatRulesForPrompt returns a string suitable for injection into the
// content system prompt.
func (t *Template) FormatRulesForPrompt() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Template: %s\n", t.ID)
	if t.Purpose != "" {
		fmt.Fprintf(&sb, "Purpose: %s\n", t.Purpose)
	}

	if len(t.RequiredSections) > 0 {
		sb.WriteString("\nRequired sections:\n")
		for _, s := range t.RequiredSections {
			fmt.Fprintf(&sb, "- %s\n", s)
		}
	}

	if len(t.Guidelines) > 0 {
		sb.WriteString("\nCopy guidelines:\n")
		for _, g := range t.Guidelines {
			fmt.Fprintf(&sb, "- %s\n", g)
		}
	}
	return sb.String()
}
