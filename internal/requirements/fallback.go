package requirements

import (
	"strings"

	"github.com/dshills/sitegen/internal/site"
)

type keywordRule struct {
	keywords []string
	value    string
}

// Order matters: the first matching rule wins.
var siteTypeRules = []keywordRule{
	{[]string{"portfolio", "photographer", "illustrator", "my work"}, string(site.SiteTypePortfolio)},
	{[]string{"resume", "cv", "curriculum vitae"}, string(site.SiteTypeResume)},
	{[]string{"restaurant", "cafe", "café", "bistro", "bakery", "diner", "pizzeria"}, string(site.SiteTypeRestaurant)},
	{[]string{"online store", "shop", "e-commerce", "ecommerce", "sell products"}, string(site.SiteTypeEcommerce)},
	{[]string{"saas", "software as a service", "subscription software"}, string(site.SiteTypeSaaS)},
	{[]string{"landing page", "launch", "waitlist", "sign up page"}, string(site.SiteTypeLanding)},
}

var industryRules = []keywordRule{
	{[]string{"restaurant", "cafe", "café", "bistro", "bakery", "diner", "pizzeria", "food", "catering"}, "restaurant"},
	{[]string{"software", "saas", "startup", "app", "tech"}, "technology"},
	{[]string{"photograph", "design", "artist", "illustrat", "creative", "studio"}, "creative"},
	{[]string{"fitness", "gym", "yoga", "health", "clinic", "medical", "dental", "wellness"}, "health"},
	{[]string{"law", "legal", "attorney"}, "legal"},
	{[]string{"consult", "agency", "accounting", "finance"}, "consulting"},
}

var featureKeywords = []string{
	"menu", "reservations", "booking", "blog", "gallery", "newsletter",
	"testimonials", "contact form", "shop", "pricing", "faq", "events",
}

// Fallback builds a minimal record from caller options and keyword detection
// on the raw prompt. It never fails.
func Fallback(prompt string, opts site.Options) site.Requirements {
	lower := strings.ToLower(prompt)
	req := site.Requirements{
		Industry:    match(lower, industryRules),
		SiteType:    site.SiteType(match(lower, siteTypeRules)),
		Description: clip(strings.TrimSpace(prompt), 300),
	}
	for _, f := range featureKeywords {
		if containsWord(lower, f) {
			req.Features = append(req.Features, f)
		}
	}
	applyOptions(&req, opts)
	req.Normalize()
	return req
}

// applyOptions writes caller-supplied values over req; the caller wins.
func applyOptions(req *site.Requirements, opts site.Options) {
	if opts.Industry != "" {
		req.Industry = opts.Industry
	}
	if opts.Tone != "" {
		req.Tone = opts.Tone
	}
	if opts.Colors != "" {
		req.PrimaryColor = opts.Colors
	}
	if len(opts.Features) > 0 {
		req.Features = append([]string(nil), opts.Features...)
	}
}

func match(text string, rules []keywordRule) string {
	for _, r := range rules {
		for _, kw := range r.keywords {
			if containsWord(text, kw) {
				return r.value
			}
		}
	}
	return ""
}

// containsWord reports whether kw occurs in text starting at a word boundary,
// so "cv" does not match inside "cvs" but "photograph" matches "photography".
func containsWord(text, kw string) bool {
	for i := 0; ; {
		j := strings.Index(text[i:], kw)
		if j < 0 {
			return false
		}
		pos := i + j
		if pos == 0 || !isLetter(text[pos-1]) {
			end := pos + len(kw)
			if len(kw) > 3 || end == len(text) || !isLetter(text[end]) {
				return true
			}
		}
		i = pos + 1
	}
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
