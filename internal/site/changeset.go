package site

// ChangeSet is the partial mutation parsed from a free-text edit command.
// Only properties that change are set.
type ChangeSet struct {
	Colors     *ColorPatch    `json:"colors,omitempty"`
	Fonts      *FontPatch     `json:"fonts,omitempty"`
	Content    map[string]any `json:"content,omitempty"`
	Layout     *LayoutChange  `json:"layout,omitempty"`
	Components *ComponentOps  `json:"components,omitempty"`
	Animations map[string]any `json:"animations,omitempty"`
}

// IsEmpty reports whether cs would leave a document unchanged.
func (cs ChangeSet) IsEmpty() bool {
	return cs.Colors == nil &&
		cs.Fonts == nil &&
		len(cs.Content) == 0 &&
		cs.Layout == nil &&
		cs.Components == nil &&
		len(cs.Animations) == 0
}

// ColorPatch is a partial ColorScheme; empty fields are left unchanged.
type ColorPatch struct {
	Primary       string `json:"primary,omitempty"`
	Secondary     string `json:"secondary,omitempty"`
	Accent        string `json:"accent,omitempty"`
	Background    string `json:"background,omitempty"`
	BackgroundAlt string `json:"backgroundAlt,omitempty"`
	Text          string `json:"text,omitempty"`
	TextSecondary string `json:"textSecondary,omitempty"`
}

// Apply returns c with every non-empty patch field written over it.
func (p ColorPatch) Apply(c ColorScheme) ColorScheme {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&c.Primary, p.Primary)
	set(&c.Secondary, p.Secondary)
	set(&c.Accent, p.Accent)
	set(&c.Background, p.Background)
	set(&c.BackgroundAlt, p.BackgroundAlt)
	set(&c.Text, p.Text)
	set(&c.TextSecondary, p.TextSecondary)
	return c
}

// FontPatch is a partial FontScheme; empty fields are left unchanged.
type FontPatch struct {
	Heading string        `json:"heading,omitempty"`
	Body    string        `json:"body,omitempty"`
	Sizes   *HeadingSizes `json:"sizes,omitempty"`
}

// Apply returns f with every non-empty patch field written over it.
func (p FontPatch) Apply(f FontScheme) FontScheme {
	if p.Heading != "" {
		f.Heading = p.Heading
	}
	if p.Body != "" {
		f.Body = p.Body
	}
	if p.Sizes != nil {
		if p.Sizes.H1 != "" {
			f.Sizes.H1 = p.Sizes.H1
		}
		if p.Sizes.H2 != "" {
			f.Sizes.H2 = p.Sizes.H2
		}
		if p.Sizes.H3 != "" {
			f.Sizes.H3 = p.Sizes.H3
		}
	}
	return f
}

// LayoutChange replaces the section order atomically and sets style hints.
type LayoutChange struct {
	SectionOrder []string `json:"sectionOrder,omitempty"`
	Spacing      string   `json:"spacing,omitempty"`
	Alignment    string   `json:"alignment,omitempty"`
}

// ComponentOps reveals or hides sections. Remove never deletes content.
type ComponentOps struct {
	Add    []string `json:"add,omitempty"`
	Remove []string `json:"remove,omitempty"`
}
