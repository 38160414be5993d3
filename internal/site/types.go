package site

import (
	"strings"
	"unicode"
)

// SiteType classifies the kind of website being generated.
type SiteType string

const (
	SiteTypePortfolio  SiteType = "portfolio"
	SiteTypeBusiness   SiteType = "business"
	SiteTypeResume     SiteType = "resume"
	SiteTypeLanding    SiteType = "landing"
	SiteTypeRestaurant SiteType = "restaurant"
	SiteTypeEcommerce  SiteType = "ecommerce"
	SiteTypeSaaS       SiteType = "saas"
)

// IsValidSiteType reports whether t is one of the seven defined site types.
func IsValidSiteType(t SiteType) bool {
	switch t {
	case SiteTypePortfolio,
		SiteTypeBusiness,
		SiteTypeResume,
		SiteTypeLanding,
		SiteTypeRestaurant,
		SiteTypeEcommerce,
		SiteTypeSaaS:
		return true
	}
	return false
}

// ParseSiteType lowercases s and returns the matching SiteType, or
// SiteTypeBusiness when s is not recognised.
func ParseSiteType(s string) SiteType {
	t := SiteType(strings.ToLower(strings.TrimSpace(s)))
	if IsValidSiteType(t) {
		return t
	}
	return SiteTypeBusiness
}

// DefaultTone is used when neither the caller nor the model supplies a tone.
const DefaultTone = "professional"

// Requirements is the typed record extracted from a free-text description.
type Requirements struct {
	Industry     string   `json:"industry"`
	SiteType     SiteType `json:"siteType"`
	Tone         string   `json:"tone"`
	Features     []string `json:"features"`
	SiteName     string   `json:"siteName"`
	Description  string   `json:"description"`
	PrimaryColor string   `json:"primaryColor,omitempty"`
}

// Normalize enforces the record invariants: site type is valid, tone is set,
// features is non-nil and site name is never empty.
func (r *Requirements) Normalize() {
	r.Industry = strings.TrimSpace(r.Industry)
	r.SiteType = ParseSiteType(string(r.SiteType))
	r.Tone = strings.ToLower(strings.TrimSpace(r.Tone))
	if r.Tone == "" {
		r.Tone = DefaultTone
	}
	if r.Features == nil {
		r.Features = []string{}
	}
	r.SiteName = strings.TrimSpace(r.SiteName)
	if r.SiteName == "" {
		r.SiteName = NameFromIndustry(r.Industry)
	}
	r.PrimaryColor = strings.TrimSpace(r.PrimaryColor)
}

// NameFromIndustry synthesizes a display name for a site whose name was not
// given, e.g. "coffee roasting" -> "Coffee Roasting Co.".
func NameFromIndustry(industry string) string {
	words := strings.Fields(industry)
	if len(words) == 0 {
		return "My Website"
	}
	for i, w := range words {
		r := []rune(strings.ToLower(w))
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ") + " Co."
}

// Options are the caller-supplied hints that accompany a generation prompt.
type Options struct {
	Industry string   `json:"industry,omitempty"`
	Tone     string   `json:"tone,omitempty"`
	Colors   string   `json:"colors,omitempty"`
	Features []string `json:"features,omitempty"`
}

// Pairs flattens the options into the key/value map used for fingerprints.
// Empty fields are omitted so that {} and {tone:""} fingerprint identically.
func (o Options) Pairs() map[string]string {
	m := make(map[string]string, 4)
	if o.Industry != "" {
		m["industry"] = o.Industry
	}
	if o.Tone != "" {
		m["tone"] = o.Tone
	}
	if o.Colors != "" {
		m["colors"] = o.Colors
	}
	if len(o.Features) > 0 {
		m["features"] = strings.Join(o.Features, ",")
	}
	return m
}

// ColorScheme holds the seven named colors of a site's design system.
type ColorScheme struct {
	Primary       string `json:"primary"`
	Secondary     string `json:"secondary"`
	Accent        string `json:"accent"`
	Background    string `json:"background"`
	BackgroundAlt string `json:"backgroundAlt"`
	Text          string `json:"text"`
	TextSecondary string `json:"textSecondary"`
}

// HeadingSizes are the size tokens for the three heading levels.
type HeadingSizes struct {
	H1 string `json:"h1"`
	H2 string `json:"h2"`
	H3 string `json:"h3"`
}

// FontScheme is a heading/body font pairing with heading sizes.
type FontScheme struct {
	Heading string       `json:"heading"`
	Body    string       `json:"body"`
	Sizes   HeadingSizes `json:"sizes"`
}

// Design groups the color and font schemes.
type Design struct {
	Colors ColorScheme `json:"colors"`
	Fonts  FontScheme  `json:"fonts"`
}

// Style holds document-level layout hints set by mutations.
type Style struct {
	Spacing   string `json:"spacing,omitempty"`
	Alignment string `json:"alignment,omitempty"`
}

// Document is the render-ready site produced by generation and updated by
// mutation. The caller owns persistence.
type Document struct {
	SchemaVersion int            `json:"schemaVersion"`
	TemplateID    string         `json:"templateId"`
	Title         string         `json:"title"`
	Content       Content        `json:"content"`
	Design        Design         `json:"design"`
	SectionOrder  []string       `json:"sectionOrder"`
	Style         *Style         `json:"style,omitempty"`
	Animations    map[string]any `json:"animations,omitempty"`
}

// Clone returns a deep copy of d.
func (d Document) Clone() Document {
	out := d
	out.Content = d.Content.Clone()
	out.SectionOrder = append([]string(nil), d.SectionOrder...)
	if d.Style != nil {
		s := *d.Style
		out.Style = &s
	}
	if d.Animations != nil {
		out.Animations = make(map[string]any, len(d.Animations))
		for k, v := range d.Animations {
			out.Animations[k] = v
		}
	}
	return out
}
