package template

func startupLanding() *Template {
	return &Template{
		ID:       "startup-landing",
		Purpose:  "single product landing page optimized for sign-ups",
		Projects: ProjectsNever,
		RequiredSections: []string{
			"hero", "services", "testimonials", "contact",
		},
		Guidelines: []string{
			"The hero call to action must be a sign-up or trial",
			"Describe features as services items with benefit-led titles",
			"Keep every paragraph under 40 words",
		},
	}
}
