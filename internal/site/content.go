package site

import (
	"encoding/json"
	"fmt"
)

// ContentSchemaVersion is stamped on documents whose content passed the
// repair step. Bump it whenever the repair rules change shape.
const ContentSchemaVersion = 1

// Section names recognised in a Content document.
const (
	SectionHero         = "hero"
	SectionAbout        = "about"
	SectionServices     = "services"
	SectionTestimonials = "testimonials"
	SectionProjects     = "projects"
	SectionContact      = "contact"
	SectionSocial       = "social"
)

// Sections lists every recognised section name.
var Sections = []string{
	SectionHero,
	SectionAbout,
	SectionServices,
	SectionTestimonials,
	SectionProjects,
	SectionContact,
	SectionSocial,
}

// IsSection reports whether name is a recognised section.
func IsSection(name string) bool {
	for _, s := range Sections {
		if s == name {
			return true
		}
	}
	return false
}

// Content is the typed copy of a site. All JSON keys are lowercase because
// the model is unreliable about casing and keys are lowercased before decode.
type Content struct {
	Hero         *Hero         `json:"hero,omitempty"`
	About        *About        `json:"about,omitempty"`
	Services     *Services     `json:"services,omitempty"`
	Testimonials *Testimonials `json:"testimonials,omitempty"`
	Projects     []Project     `json:"projects,omitempty"`
	Contact      *Contact      `json:"contact,omitempty"`
	Social       *Social       `json:"social,omitempty"`
}

type Hero struct {
	Headline        string `json:"headline"`
	Subheadline     string `json:"subheadline,omitempty"`
	CTAText         string `json:"ctatext,omitempty"`
	CTALink         string `json:"ctalink,omitempty"`
	BackgroundImage string `json:"backgroundimage,omitempty"`
}

type About struct {
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description"`
	Mission     string   `json:"mission,omitempty"`
	Values      []string `json:"values,omitempty"`
	Image       string   `json:"image,omitempty"`
}

type Services struct {
	Title string        `json:"title,omitempty"`
	Items []ServiceItem `json:"items"`
}

type ServiceItem struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
	Price       string `json:"price,omitempty"`
}

type Testimonials struct {
	Title string        `json:"title,omitempty"`
	Items []Testimonial `json:"items"`
}

type Testimonial struct {
	Name   string `json:"name"`
	Role   string `json:"role,omitempty"`
	Quote  string `json:"quote"`
	Rating int    `json:"rating,omitempty"`
}

type Project struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Image       string   `json:"image,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Link        string   `json:"link,omitempty"`
}

type Contact struct {
	Title       string `json:"title,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Address     string `json:"address,omitempty"`
	Hours       string `json:"hours,omitempty"`
	FormEnabled bool   `json:"formenabled,omitempty"`
}

type Social struct {
	Twitter   string `json:"twitter,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	GitHub    string `json:"github,omitempty"`
	YouTube   string `json:"youtube,omitempty"`
}

// Present returns which sections hold data. A section is present when it is
// non-nil (or, for projects, non-empty).
func (c Content) Present() map[string]bool {
	return map[string]bool{
		SectionHero:         c.Hero != nil,
		SectionAbout:        c.About != nil,
		SectionServices:     c.Services != nil && len(c.Services.Items) > 0,
		SectionTestimonials: c.Testimonials != nil && len(c.Testimonials.Items) > 0,
		SectionProjects:     len(c.Projects) > 0,
		SectionContact:      c.Contact != nil,
		SectionSocial:       c.Social != nil && !c.Social.empty(),
	}
}

func (s *Social) empty() bool {
	return *s == Social{}
}

// Clone returns a deep copy of c via a JSON round trip.
func (c Content) Clone() Content {
	var out Content
	m, err := c.ToMap()
	if err != nil {
		return c
	}
	if err := out.FromMap(m); err != nil {
		return c
	}
	return out
}

// ToMap converts the content into its generic section map form.
func (c Content) ToMap() (map[string]any, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshaling content: %w", err)
	}
	m := map[string]any{}
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("unmarshaling content map: %w", err)
	}
	return m, nil
}

// FromMap replaces c with the typed decoding of m. Unknown keys are dropped.
func (c *Content) FromMap(m map[string]any) error {
	b, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshaling content map: %w", err)
	}
	var out Content
	if err := json.Unmarshal(b, &out); err != nil {
		return fmt.Errorf("decoding content: %w", err)
	}
	*c = out
	return nil
}
