package template

func minimalResume() *Template {
	return &Template{
		ID:       "minimal-resume",
		Purpose:  "personal resume and professional profile",
		Projects: ProjectsKeywordGated,
		RequiredSections: []string{
			"hero", "about", "contact",
		},
		Guidelines: []string{
			"Write in the first person",
			"Use services to describe areas of expertise",
			"Prefer a professional email and LinkedIn over a contact form",
		},
	}
}
