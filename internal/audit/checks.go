// Package audit runs deterministic design checks on a site document and asks
// the model for improvement suggestions based on the results.
package audit

import (
	"fmt"
	"math"
	"strings"

	"github.com/dshills/sitegen/internal/design"
	"github.com/dshills/sitegen/internal/site"
)

// MinContrast is the WCAG AA threshold for body text.
const MinContrast = 4.5

// decorativeFonts have poor legibility for body or heading text.
var decorativeFonts = []string{
	"Comic Sans MS",
	"Papyrus",
	"Brush Script MT",
	"Curlz MT",
	"Jokerman",
	"Chiller",
	"Bradley Hand",
	"Lucida Handwriting",
}

// ContrastRatio returns the WCAG contrast ratio between two hex colors.
func ContrastRatio(fg, bg string) (float64, error) {
	a, err := design.ParseHex(fg)
	if err != nil {
		return 0, err
	}
	b, err := design.ParseHex(bg)
	if err != nil {
		return 0, err
	}
	l1, l2 := a.Luminance(), b.Luminance()
	return (math.Max(l1, l2) + 0.05) / (math.Min(l1, l2) + 0.05), nil
}

// IsLowContrast reports whether text on bg falls below MinContrast.
// Unparseable colors are not flagged.
func IsLowContrast(text, bg string) bool {
	r, err := ContrastRatio(text, bg)
	return err == nil && r < MinContrast
}

// FontIssue returns a reason when the pairing lacks hierarchy or uses a
// decorative font, or "" when the fonts are fine.
func FontIssue(f site.FontScheme) string {
	heading, body := strings.TrimSpace(f.Heading), strings.TrimSpace(f.Body)
	if heading != "" && strings.EqualFold(heading, body) {
		return fmt.Sprintf("heading and body both use %s, so there is no typographic hierarchy", heading)
	}
	for _, name := range []string{heading, body} {
		for _, d := range decorativeFonts {
			if strings.EqualFold(name, d) {
				return fmt.Sprintf("%s is a decorative font with low legibility", d)
			}
		}
	}
	return ""
}

// HasFontIssue reports whether FontIssue finds a problem.
func HasFontIssue(f site.FontScheme) bool { return FontIssue(f) != "" }

// OrderIssue returns a reason when the page does not open with the hero or
// when contact sits more than two positions before the end.
func OrderIssue(order []string) string {
	if len(order) == 0 || order[0] != site.SectionHero {
		return "the page does not open with the hero section"
	}
	if i := site.IndexOf(order, site.SectionContact); i >= 0 && len(order)-1-i > 2 {
		return fmt.Sprintf("contact is %d sections before the end of the page", len(order)-1-i)
	}
	return ""
}

// HasOrderIssue reports whether OrderIssue finds a problem.
func HasOrderIssue(order []string) bool { return OrderIssue(order) != "" }
