package requirements

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dshills/sitegen/internal/cache"
	"github.com/dshills/sitegen/internal/llm/llmtest"
	"github.com/dshills/sitegen/internal/normalize"
	"github.com/dshills/sitegen/internal/site"
)

const restaurantJSON = "```json\n" + `{
  "Industry": "restaurant",
  "siteType": "Restaurant",
  "tone": "casual",
  "features": ["menu", "reservations"],
  "siteName": "",
  "description": "A neighbourhood trattoria.",
}` + "\n```"

func newCache() *cache.Cache[site.Requirements] {
	return cache.New[site.Requirements](cache.Config{Name: "analysis", MaxSize: 10, TTL: time.Hour})
}

func TestExtract_DecodesAndNormalizes(t *testing.T) {
	fake := llmtest.New(restaurantJSON)
	e := NewExtractor(fake, newCache(), nil)

	req, err := e.Extract(context.Background(), "Create a restaurant website with menu and reservations", site.Options{})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if req.SiteType != site.SiteTypeRestaurant {
		t.Errorf("SiteType = %q", req.SiteType)
	}
	if req.SiteName != "Restaurant Co." {
		t.Errorf("SiteName = %q, want synthesized name", req.SiteName)
	}
	if len(req.Features) != 2 {
		t.Errorf("Features = %v", req.Features)
	}
}

func TestExtract_CallerOptionsWin(t *testing.T) {
	fake := llmtest.New(restaurantJSON)
	e := NewExtractor(fake, nil, nil)

	req, err := e.Extract(context.Background(), "restaurant site", site.Options{Tone: "professional", Colors: "#112233"})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if req.Tone != "professional" {
		t.Errorf("Tone = %q, want caller value", req.Tone)
	}
	if req.PrimaryColor != "#112233" {
		t.Errorf("PrimaryColor = %q", req.PrimaryColor)
	}
	if !strings.Contains(fake.LastRequest().UserPrompt, "- tone: professional") {
		t.Errorf("hints missing from prompt: %q", fake.LastRequest().UserPrompt)
	}
}

func TestExtract_CachedByFingerprint(t *testing.T) {
	fake := llmtest.New(restaurantJSON)
	e := NewExtractor(fake, newCache(), nil)
	ctx := context.Background()

	if _, err := e.Extract(ctx, "Restaurant site ", site.Options{Tone: "casual"}); err != nil {
		t.Fatal(err)
	}
	if _, err := e.Extract(ctx, "  restaurant SITE", site.Options{Tone: "casual"}); err != nil {
		t.Fatal(err)
	}
	if fake.Calls() != 1 {
		t.Errorf("expected 1 model call for normalized-identical prompts, got %d", fake.Calls())
	}
	if _, err := e.Extract(ctx, "restaurant site", site.Options{Tone: "professional"}); err != nil {
		t.Fatal(err)
	}
	if fake.Calls() != 2 {
		t.Errorf("different options should miss the cache, calls = %d", fake.Calls())
	}
}

func TestExtract_MalformedIsTyped(t *testing.T) {
	e := NewExtractor(llmtest.New("I cannot help with that."), newCache(), nil)
	_, err := e.Extract(context.Background(), "site", site.Options{})
	if !normalize.IsMalformed(err) {
		t.Fatalf("expected malformed error, got %v", err)
	}
}

func TestExtract_ProviderErrorNotCached(t *testing.T) {
	fake := llmtest.New().Fail(errors.New("boom")).Reply(restaurantJSON)
	c := newCache()
	e := NewExtractor(fake, c, nil)

	if _, err := e.Extract(context.Background(), "site", site.Options{}); err == nil {
		t.Fatal("expected error")
	}
	if c.Len() != 0 {
		t.Errorf("failed extraction was cached")
	}
	if _, err := e.Extract(context.Background(), "site", site.Options{}); err != nil {
		t.Fatalf("second attempt: %v", err)
	}
}

func TestFallback(t *testing.T) {
	req := Fallback("Create a restaurant website with menu and reservations", site.Options{Tone: "modern"})
	if req.SiteType != site.SiteTypeRestaurant {
		t.Errorf("SiteType = %q", req.SiteType)
	}
	if req.Industry != "restaurant" {
		t.Errorf("Industry = %q", req.Industry)
	}
	if req.Tone != "modern" {
		t.Errorf("Tone = %q", req.Tone)
	}
	if req.SiteName == "" {
		t.Error("SiteName must never be empty")
	}
	want := map[string]bool{"menu": true, "reservations": true}
	for _, f := range req.Features {
		delete(want, f)
	}
	if len(want) != 0 {
		t.Errorf("missing features %v in %v", want, req.Features)
	}
}

func TestFallback_Unknown(t *testing.T) {
	req := Fallback("something vague", site.Options{})
	if req.SiteType != site.SiteTypeBusiness {
		t.Errorf("SiteType = %q", req.SiteType)
	}
	if req.SiteName != "My Website" {
		t.Errorf("SiteName = %q", req.SiteName)
	}
	if req.Tone != site.DefaultTone {
		t.Errorf("Tone = %q", req.Tone)
	}
}

func TestContainsWord(t *testing.T) {
	cases := []struct {
		text, kw string
		want     bool
	}{
		{"my cv and more", "cv", true},
		{"cvs pharmacy", "cv", false},
		{"wedding photography", "photograph", true},
		{"a workshop space", "shop", false},
		{"apply now", "app", false},
	}
	for _, tc := range cases {
		if got := containsWord(tc.text, tc.kw); got != tc.want {
			t.Errorf("containsWord(%q, %q) = %v", tc.text, tc.kw, got)
		}
	}
}
