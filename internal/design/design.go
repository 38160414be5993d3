// Package design maps requirements to a color palette and font pairing. It is
// deterministic and never calls the model.
package design

import (
	"strings"

	"github.com/dshills/sitegen/internal/site"
)

type palette struct {
	name     string
	keywords []string
	colors   site.ColorScheme
}

// palettes are matched in order by case-insensitive substring on industry.
var palettes = []palette{
	{
		name:     "warm",
		keywords: []string{"restaurant", "food", "cafe", "café", "bakery", "catering"},
		colors: site.ColorScheme{
			Primary: "#C0392B", Secondary: "#E67E22", Accent: "#F1C40F",
			Background: "#FFFDF9", BackgroundAlt: "#FBEEE6",
			Text: "#2C1810", TextSecondary: "#6B4F43",
		},
	},
	{
		name:     "cool",
		keywords: []string{"tech", "software", "startup", "saas"},
		colors: site.ColorScheme{
			Primary: "#4F46E5", Secondary: "#7C3AED", Accent: "#06B6D4",
			Background: "#FFFFFF", BackgroundAlt: "#F5F7FF",
			Text: "#111827", TextSecondary: "#4B5563",
		},
	},
	{
		name:     "vibrant",
		keywords: []string{"creative", "design", "art", "photograph"},
		colors: site.ColorScheme{
			Primary: "#E11D48", Secondary: "#8B5CF6", Accent: "#F59E0B",
			Background: "#FFFFFF", BackgroundAlt: "#FFF7ED",
			Text: "#1F2937", TextSecondary: "#6B7280",
		},
	},
	{
		name:     "green",
		keywords: []string{"health", "fitness", "medical", "wellness", "yoga"},
		colors: site.ColorScheme{
			Primary: "#16A34A", Secondary: "#0D9488", Accent: "#84CC16",
			Background: "#FFFFFF", BackgroundAlt: "#F0FDF4",
			Text: "#14532D", TextSecondary: "#4B5563",
		},
	},
}

var defaultPalette = site.ColorScheme{
	Primary: "#1E3A5F", Secondary: "#334155", Accent: "#3B82F6",
	Background: "#FFFFFF", BackgroundAlt: "#F8FAFC",
	Text: "#0F172A", TextSecondary: "#475569",
}

// Colors returns the palette for req. A valid PrimaryColor wins over the
// industry table.
func Colors(req site.Requirements) site.ColorScheme {
	if req.PrimaryColor != "" {
		if c, err := ParseHex(req.PrimaryColor); err == nil {
			return derive(c)
		}
	}
	industry := strings.ToLower(req.Industry)
	for _, p := range palettes {
		for _, kw := range p.keywords {
			if strings.Contains(industry, kw) {
				return p.colors
			}
		}
	}
	return defaultPalette
}

// derive builds a palette around a brand color with fixed neutrals.
func derive(primary RGB) site.ColorScheme {
	return site.ColorScheme{
		Primary:       primary.Hex(),
		Secondary:     primary.Darken(0.20).Hex(),
		Accent:        primary.Lighten(0.35).Hex(),
		Background:    "#FFFFFF",
		BackgroundAlt: "#F8F9FA",
		Text:          "#1A1A1A",
		TextSecondary: "#6C757D",
	}
}

var fonts = map[string]site.FontScheme{
	"professional": {Heading: "Montserrat", Body: "Open Sans", Sizes: site.HeadingSizes{H1: "3rem", H2: "2.25rem", H3: "1.5rem"}},
	"creative":     {Heading: "Playfair Display", Body: "Lato", Sizes: site.HeadingSizes{H1: "3.5rem", H2: "2.5rem", H3: "1.75rem"}},
	"casual":       {Heading: "Nunito", Body: "Nunito Sans", Sizes: site.HeadingSizes{H1: "2.75rem", H2: "2rem", H3: "1.5rem"}},
	"modern":       {Heading: "Poppins", Body: "Inter", Sizes: site.HeadingSizes{H1: "3.25rem", H2: "2.25rem", H3: "1.5rem"}},
}

// Fonts returns the pairing for tone; unknown tones get the professional pair.
func Fonts(tone string) site.FontScheme {
	if f, ok := fonts[strings.ToLower(strings.TrimSpace(tone))]; ok {
		return f
	}
	return fonts[site.DefaultTone]
}

// Generate returns the full design system for req.
func Generate(req site.Requirements) site.Design {
	return site.Design{Colors: Colors(req), Fonts: Fonts(req.Tone)}
}
