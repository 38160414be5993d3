package content

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dshills/sitegen/internal/site"
)

// RepairVersion identifies the repair rules applied by Repair.
const RepairVersion = site.ContentSchemaVersion

// Repair converts a normalized (lowercase-keyed) model response into typed
// Content. Sections that cannot be decoded are dropped, hero and contact are
// always present afterwards, and projects are removed unless wantProjects.
// The returned notes describe each fix for logging.
func Repair(m map[string]any, req site.Requirements, wantProjects bool) (site.Content, []string) {
	var notes []string

	// Some responses nest everything under a "content" or "sections" key.
	if _, ok := m[site.SectionHero]; !ok {
		for _, wrapper := range []string{"content", "sections"} {
			if inner, ok := m[wrapper].(map[string]any); ok {
				m = inner
				notes = append(notes, "unwrapped "+wrapper)
				break
			}
		}
	}

	clean := make(map[string]any, len(site.Sections))
	for _, name := range site.Sections {
		v, ok := m[name]
		if !ok || v == nil {
			continue
		}
		v = reshape(name, v)
		if !decodes(name, v) {
			fixed, ok := salvage(name, v)
			if !ok {
				notes = append(notes, fmt.Sprintf("dropped malformed %s", name))
				continue
			}
			v = fixed
			notes = append(notes, fmt.Sprintf("repaired %s", name))
		}
		clean[name] = v
	}

	var c site.Content
	if err := c.FromMap(clean); err != nil {
		// Every section decoded on its own; a combined failure means none are usable.
		notes = append(notes, "discarded all sections")
		c = site.Content{}
	}

	if c.Hero == nil || strings.TrimSpace(c.Hero.Headline) == "" {
		c.Hero = defaultHero(req)
		notes = append(notes, "synthesized hero")
	}
	if c.Contact == nil {
		c.Contact = defaultContact()
		notes = append(notes, "synthesized contact")
	}
	if !wantProjects && c.Projects != nil {
		c.Projects = nil
		notes = append(notes, "removed unrequested projects")
	}
	return c, notes
}

// Fields whose model output is often a string instead of a number or bool.
var (
	intFields  = map[string]bool{"rating": true}
	boolFields = map[string]bool{"formenabled": true}
)

func decodes(name string, v any) bool {
	var c site.Content
	return c.FromMap(map[string]any{name: v}) == nil
}

// salvage retries a section that failed to decode. Numeric and boolean
// strings are coerced first; after that, list items and fields that still do
// not decode are dropped. ok is false when nothing usable remains.
func salvage(name string, v any) (any, bool) {
	v = coerce(v)
	if decodes(name, v) {
		return v, true
	}
	switch x := v.(type) {
	case []any:
		kept := keepItems(x, func(item any) bool { return decodes(name, []any{item}) })
		return kept, len(kept) > 0
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, fv := range x {
			if list, ok := fv.([]any); ok && k == "items" {
				kept := keepItems(list, func(item any) bool {
					return decodes(name, map[string]any{"items": []any{item}})
				})
				if len(kept) == 0 {
					return nil, false
				}
				out[k] = kept
				continue
			}
			if decodes(name, map[string]any{k: fv}) {
				out[k] = fv
			}
		}
		if len(out) == 0 || !decodes(name, out) {
			return nil, false
		}
		return out, true
	}
	return nil, false
}

func keepItems(items []any, ok func(any) bool) []any {
	kept := make([]any, 0, len(items))
	for _, item := range items {
		if ok(item) {
			kept = append(kept, item)
		}
	}
	return kept
}

// coerce converts known numeric and boolean fields given as strings (or as
// fractional numbers, for integers) into the decodable type.
func coerce(v any) any {
	switch x := v.(type) {
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = coerce(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, fv := range x {
			switch {
			case intFields[k]:
				out[k] = toInt(fv)
			case boolFields[k]:
				out[k] = toBool(fv)
			default:
				out[k] = coerce(fv)
			}
		}
		return out
	}
	return v
}

func toInt(v any) any {
	switch x := v.(type) {
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(x), 64); err == nil {
			return int(math.Round(f))
		}
	case float64:
		return int(math.Round(x))
	}
	return v
}

func toBool(v any) any {
	if s, ok := v.(string); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(s)); err == nil {
			return b
		}
	}
	return v
}

// reshape accepts the common alternative shapes for list sections.
func reshape(name string, v any) any {
	switch name {
	case site.SectionServices, site.SectionTestimonials:
		if list, ok := v.([]any); ok {
			return map[string]any{"items": list}
		}
	case site.SectionProjects:
		if obj, ok := v.(map[string]any); ok {
			if items, ok := obj["items"].([]any); ok {
				return items
			}
		}
	}
	return v
}

func defaultHero(req site.Requirements) *site.Hero {
	sub := req.Description
	if sub == "" && req.Industry != "" {
		sub = fmt.Sprintf("Your trusted partner in %s.", req.Industry)
	}
	return &site.Hero{
		Headline:    fmt.Sprintf("Welcome to %s", req.SiteName),
		Subheadline: sub,
		CTAText:     "Get in touch",
		CTALink:     "#contact",
	}
}

func defaultContact() *site.Contact {
	return &site.Contact{
		Title:       "Get in Touch",
		Email:       "hello@example.com",
		FormEnabled: true,
	}
}

// Fallback returns minimal content built only from req: hero, about and
// contact.
func Fallback(req site.Requirements) site.Content {
	about := req.Description
	if about == "" {
		about = fmt.Sprintf("%s is here to help. Reach out to learn more about what we do.", req.SiteName)
	}
	return site.Content{
		Hero: defaultHero(req),
		About: &site.About{
			Title:       "About " + req.SiteName,
			Description: about,
		},
		Contact: defaultContact(),
	}
}
