package audit

import (
	"github.com/dshills/sitegen/internal/site"
)

// Findings are the results of the deterministic checks.
type Findings struct {
	LowContrast   bool    `json:"lowContrast"`
	ContrastRatio float64 `json:"contrastRatio"`
	FontIssue     bool    `json:"fontIssue"`
	FontReason    string  `json:"fontReason,omitempty"`
	OrderIssue    bool    `json:"orderIssue"`
	OrderReason   string  `json:"orderReason,omitempty"`
}

// Count returns the number of flagged checks.
func (f Findings) Count() int {
	n := 0
	for _, b := range []bool{f.LowContrast, f.FontIssue, f.OrderIssue} {
		if b {
			n++
		}
	}
	return n
}

// Run checks doc. It is pure and never calls the model.
func Run(doc site.Document) Findings {
	colors := doc.Design.Colors
	ratio, _ := ContrastRatio(colors.Text, colors.Background)
	fontReason := FontIssue(doc.Design.Fonts)
	orderReason := OrderIssue(doc.SectionOrder)
	return Findings{
		LowContrast:   IsLowContrast(colors.Text, colors.Background),
		ContrastRatio: round2(ratio),
		FontIssue:     fontReason != "",
		FontReason:    fontReason,
		OrderIssue:    orderReason != "",
		OrderReason:   orderReason,
	}
}

// Score computes the deterministic score from the findings.
// Start: 100, -30 per flagged check, clamped at 0.
func Score(f Findings) int {
	score := 100 - 30*f.Count()
	if score < 0 {
		score = 0
	}
	return score
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
