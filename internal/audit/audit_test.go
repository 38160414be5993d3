package audit

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/dshills/sitegen/internal/llm/llmtest"
	"github.com/dshills/sitegen/internal/site"
)

func TestContrastRatio_BlackOnWhite(t *testing.T) {
	r, err := ContrastRatio("#000000", "#FFFFFF")
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(r-21) > 1e-9 {
		t.Errorf("ratio = %v, want 21", r)
	}
	if IsLowContrast("#000000", "#FFFFFF") {
		t.Error("black on white flagged as low contrast")
	}
}

func TestContrastRatio_GreyOnGrey(t *testing.T) {
	r, err := ContrastRatio("#777777", "#888888")
	if err != nil {
		t.Fatal(err)
	}
	if r >= MinContrast {
		t.Errorf("ratio = %v, want < %v", r, MinContrast)
	}
	if !IsLowContrast("#777777", "#888888") {
		t.Error("grey on grey not flagged")
	}
}

func TestContrastRatio_Symmetric(t *testing.T) {
	a, _ := ContrastRatio("#336699", "#FFFFFF")
	b, _ := ContrastRatio("#FFFFFF", "#336699")
	if a != b {
		t.Errorf("ratio not symmetric: %v vs %v", a, b)
	}
}

func TestIsLowContrast_UnparseableNotFlagged(t *testing.T) {
	if IsLowContrast("navy", "#FFFFFF") {
		t.Error("unparseable color should not be flagged")
	}
}

func TestHasFontIssue(t *testing.T) {
	cases := []struct {
		fonts site.FontScheme
		want  bool
	}{
		{site.FontScheme{Heading: "Montserrat", Body: "Open Sans"}, false},
		{site.FontScheme{Heading: "Inter", Body: "inter"}, true},
		{site.FontScheme{Heading: "Papyrus", Body: "Lato"}, true},
		{site.FontScheme{Heading: "Lato", Body: "comic sans ms"}, true},
	}
	for _, tc := range cases {
		if got := HasFontIssue(tc.fonts); got != tc.want {
			t.Errorf("HasFontIssue(%+v) = %v, want %v", tc.fonts, got, tc.want)
		}
	}
}

func TestHasOrderIssue(t *testing.T) {
	cases := []struct {
		order []string
		want  bool
	}{
		{[]string{"hero", "about", "contact"}, false},
		{[]string{"about", "hero", "contact"}, true},
		{nil, true},
		{[]string{"hero", "contact", "about", "services"}, false},
		{[]string{"hero", "contact", "about", "services", "projects"}, true},
		{[]string{"hero", "about", "services"}, false},
	}
	for _, tc := range cases {
		if got := HasOrderIssue(tc.order); got != tc.want {
			t.Errorf("HasOrderIssue(%v) = %v, want %v", tc.order, got, tc.want)
		}
	}
}

func sampleDoc() site.Document {
	return site.Document{
		TemplateID: "professional-business",
		Design: site.Design{
			Colors: site.ColorScheme{Text: "#777777", Background: "#888888"},
			Fonts:  site.FontScheme{Heading: "Papyrus", Body: "Lato"},
		},
		SectionOrder: []string{"hero", "about", "contact"},
	}
}

func TestRunAndScore(t *testing.T) {
	f := Run(sampleDoc())
	if !f.LowContrast || !f.FontIssue || f.OrderIssue {
		t.Errorf("findings = %+v", f)
	}
	if f.FontReason == "" {
		t.Error("missing font reason")
	}
	if got := Score(f); got != 40 {
		t.Errorf("Score = %d, want 40", got)
	}
	if got := Score(Findings{}); got != 100 {
		t.Errorf("clean score = %d", got)
	}
}

const suggestionsJSON = `{"Suggestions": [
  {"title": "Swap decorative font", "category": "Typography", "priority": 2, "changes": {"fonts": {"heading": "Lora"}}},
  {"title": "", "priority": 1},
  {"title": "Darken text", "category": "accessibility", "priority": 1, "changes": {"colors": {"Text": "#1A1A1A", "backgroundAlt": "#EEEEEE"}}},
  {"title": "Add testimonials", "category": "content"}
]}`

func TestSuggest_RankedAndParameterized(t *testing.T) {
	fake := llmtest.New(suggestionsJSON)
	s := NewSuggester(fake, nil)
	doc := sampleDoc()

	got, err := s.Suggest(context.Background(), doc, Run(doc))
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 suggestions, got %d: %+v", len(got), got)
	}
	if got[0].Title != "Darken text" || got[1].Title != "Swap decorative font" || got[2].Priority != 5 {
		t.Errorf("ordering = %+v", got)
	}
	if got[0].Changes.Colors == nil || got[0].Changes.Colors.Text != "#1A1A1A" || got[0].Changes.Colors.BackgroundAlt != "#EEEEEE" {
		t.Errorf("changes not decoded: %+v", got[0].Changes)
	}
	if got[1].Category != "typography" {
		t.Errorf("category = %q", got[1].Category)
	}

	prompt := fake.LastRequest().UserPrompt
	if !strings.Contains(prompt, "low contrast: true") || !strings.Contains(prompt, "Papyrus") {
		t.Errorf("findings not injected into prompt: %q", prompt)
	}
}

func TestSuggest_Malformed(t *testing.T) {
	s := NewSuggester(llmtest.New("no idea"), nil)
	if _, err := s.Suggest(context.Background(), sampleDoc(), Findings{}); err == nil {
		t.Fatal("expected error")
	}
}
