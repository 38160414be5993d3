// Package layout derives the display order of a site's sections.
package layout

import "github.com/dshills/sitegen/internal/site"

// canonical is the display order; contact and social always close the page.
var canonical = []string{
	site.SectionHero,
	site.SectionAbout,
	site.SectionServices,
	site.SectionProjects,
	site.SectionTestimonials,
	site.SectionContact,
	site.SectionSocial,
}

// Order returns the non-empty sections of c in canonical order.
func Order(c site.Content) []string {
	present := c.Present()
	order := make([]string, 0, len(canonical))
	for _, s := range canonical {
		if present[s] {
			order = append(order, s)
		}
	}
	return order
}
