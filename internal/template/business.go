package template

func professionalBusiness() *Template {
	return &Template{
		ID:       "professional-business",
		Purpose:  "general purpose business site focused on services and contact",
		Projects: ProjectsKeywordGated,
		RequiredSections: []string{
			"hero", "about", "services", "contact",
		},
		Guidelines: []string{
			"State what the business offers in the hero headline",
			"List 3-6 concrete services with short descriptions",
			"Include opening hours and an address when the business has a physical location",
			"Testimonials should sound like real customers, not marketing copy",
		},
	}
}
