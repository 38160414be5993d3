package mutate

import (
	"strings"

	"github.com/dshills/sitegen/internal/site"
)

// Merge applies cs to doc and returns the new document. doc is not modified.
// The engine owns these rules; the model only proposes the ChangeSet.
//
//  1. colors and fonts are shallow-merged (only provided keys change)
//  2. each content section is shallow-merged into the existing section;
//     lists (projects) are replaced as a whole
//  3. layout.sectionOrder replaces the order unless none of its names are
//     known sections; spacing and alignment become document style hints
//  4. components.add appends missing sections to the order
//  5. components.remove drops sections from the order only, and every
//     original content key missing after the merge is restored
//  6. animations are shallow-merged into the document animations map
func Merge(doc site.Document, cs site.ChangeSet) site.Document {
	out := doc.Clone()

	if cs.Colors != nil {
		out.Design.Colors = cs.Colors.Apply(out.Design.Colors)
	}
	if cs.Fonts != nil {
		out.Design.Fonts = cs.Fonts.Apply(out.Design.Fonts)
	}

	if len(cs.Content) > 0 {
		out.Content = mergeContent(out.Content, cs.Content)
	}

	if l := cs.Layout; l != nil {
		if order := knownSections(l.SectionOrder); len(order) > 0 {
			out.SectionOrder = order
		}
		if l.Spacing != "" || l.Alignment != "" {
			if out.Style == nil {
				out.Style = &site.Style{}
			}
			if l.Spacing != "" {
				out.Style.Spacing = l.Spacing
			}
			if l.Alignment != "" {
				out.Style.Alignment = l.Alignment
			}
		}
	}

	if c := cs.Components; c != nil {
		for _, id := range knownSections(c.Add) {
			if !site.Contains(out.SectionOrder, id) {
				out.SectionOrder = append(out.SectionOrder, id)
			}
		}
		if len(c.Remove) > 0 {
			out.SectionOrder = site.Without(out.SectionOrder, knownSections(c.Remove)...)
		}
	}
	out.Content = restoreMissing(doc.Content, out.Content)

	if len(cs.Animations) > 0 {
		if out.Animations == nil {
			out.Animations = make(map[string]any, len(cs.Animations))
		}
		for k, v := range cs.Animations {
			out.Animations[k] = v
		}
	}
	return out
}

// mergeContent shallow-merges each patch section into c. Unknown sections and
// patches that would not decode into the section type are skipped.
func mergeContent(c site.Content, patch map[string]any) site.Content {
	m, err := c.ToMap()
	if err != nil {
		return c
	}
	for name, p := range patch {
		if !site.IsSection(name) {
			continue
		}
		var next any
		switch pv := p.(type) {
		case map[string]any:
			merged := map[string]any{}
			if existing, ok := m[name].(map[string]any); ok {
				for k, v := range existing {
					merged[k] = v
				}
			}
			for k, v := range pv {
				merged[k] = v
			}
			next = merged
		case []any:
			next = pv
		default:
			continue
		}
		var check site.Content
		if err := check.FromMap(map[string]any{name: next}); err != nil {
			continue
		}
		m[name] = next
	}
	var out site.Content
	if err := out.FromMap(m); err != nil {
		return c
	}
	return out
}

// restoreMissing copies back every section present in orig but absent from
// merged, so hidden sections keep their data.
func restoreMissing(orig, merged site.Content) site.Content {
	before, err := orig.ToMap()
	if err != nil {
		return merged
	}
	after, err := merged.ToMap()
	if err != nil {
		return merged
	}
	restored := false
	for k, v := range before {
		if _, ok := after[k]; !ok {
			after[k] = v
			restored = true
		}
	}
	if !restored {
		return merged
	}
	var out site.Content
	if err := out.FromMap(after); err != nil {
		return merged
	}
	return out
}

// knownSections lowercases names, drops unrecognised ones and duplicates.
func knownSections(names []string) []string {
	lower := make([]string, len(names))
	for i, n := range names {
		lower[i] = strings.ToLower(strings.TrimSpace(n))
	}
	out := make([]string, 0, len(names))
	for _, n := range site.Dedupe(lower) {
		if site.IsSection(n) {
			out = append(out, n)
		}
	}
	return out
}
