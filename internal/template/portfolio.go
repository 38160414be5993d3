package template

func modernPortfolio() *Template {
	return &Template{
		ID:       "modern-portfolio",
		Purpose:  "showcase visual and creative work",
		Projects: ProjectsAlways,
		RequiredSections: []string{
			"hero", "about", "projects", "contact",
		},
		Guidelines: []string{
			"Lead with the work, not the biography",
			"Each project needs a title, a one-sentence description and 2-4 tags",
			"Keep the about section personal and under 80 words",
		},
	}
}
