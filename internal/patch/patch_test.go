package patch

import (
	"reflect"
	"strings"
	"testing"

	"github.com/dshills/sitegen/internal/site"
	"github.com/sergi/go-diff/diffmatchpatch"
)

func baseDoc() site.Document {
	return site.Document{
		TemplateID: "professional-business",
		Title:      "Luigi's",
		Content: site.Content{
			Hero:  &site.Hero{Headline: "Real Italian"},
			About: &site.About{Description: "Since 1982"},
		},
		Design: site.Design{
			Colors: site.ColorScheme{Primary: "#C0392B", Background: "#FFFFFF"},
		},
		SectionOrder: []string{"hero", "about"},
	}
}

func TestDiff_IdenticalIsEmpty(t *testing.T) {
	out, err := Diff(baseDoc(), baseDoc())
	if err != nil {
		t.Fatal(err)
	}
	if out != "" {
		t.Errorf("expected empty diff, got %q", out)
	}
}

func TestDiff_AppliesCleanly(t *testing.T) {
	before := baseDoc()
	after := before.Clone()
	after.Design.Colors.Primary = "#1E3A5F"
	after.SectionOrder = []string{"hero"}

	out, err := Diff(before, after)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "1E3A5F") {
		t.Errorf("diff missing new color: %q", out)
	}

	dmp := diffmatchpatch.New()
	patches, err := dmp.PatchFromText(out)
	if err != nil {
		t.Fatalf("PatchFromText: %v", err)
	}
	a, _ := render(before)
	b, _ := render(after)
	got, applied := dmp.PatchApply(patches, a)
	for i, ok := range applied {
		if !ok {
			t.Errorf("hunk %d failed to apply", i)
		}
	}
	if got != b {
		t.Errorf("patched text differs from target:\n%s\nwant:\n%s", got, b)
	}
}

func TestChangedPaths(t *testing.T) {
	before := baseDoc()
	after := before.Clone()
	after.Design.Colors.Primary = "#000000"
	after.Content.Hero.Subheadline = "Fresh pasta"
	after.SectionOrder = []string{"about", "hero"}

	got, err := ChangedPaths(before, after)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"content.hero.subheadline", "design.colors.primary", "sectionOrder"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ChangedPaths = %v, want %v", got, want)
	}
}
