package cache

import (
	"fmt"
	"time"
)

// Stats is a point-in-time snapshot of one cache.
type Stats struct {
	Name      string        `json:"name"`
	Size      int           `json:"size"`
	MaxSize   int           `json:"maxSize"`
	Hits      int64         `json:"hits"`
	Misses    int64         `json:"misses"`
	HitRate   float64       `json:"hitRate"`
	OldestAge time.Duration `json:"-"`
	NewestAge time.Duration `json:"-"`
}

// Thresholds used when producing recommendations.
const (
	lowHitRate        = 0.30
	minLookupsForRate = 20
	nearlyFullRatio   = 0.80
)

// CacheReport is one cache's entry in a Report.
type CacheReport struct {
	Name             string  `json:"name"`
	Size             string  `json:"size"` // "size/maxSize"
	Hits             int64   `json:"hits"`
	Misses           int64   `json:"misses"`
	HitRate          float64 `json:"hitRate"`
	OldestEntryAgeMs int64   `json:"oldestEntryAge"`
	NewestEntryAgeMs int64   `json:"newestEntryAge"`
	EstimatedSavings float64 `json:"estimatedSavings"`
}

// Report is the diagnostic summary returned by the cache statistics endpoint.
type Report struct {
	Caches           []CacheReport `json:"caches"`
	EstimatedSavings float64       `json:"estimatedSavings"`
	Recommendations  []string      `json:"recommendations"`
}

// BuildReport summarizes stats. costPerCall maps a cache name to the
// estimated price of the model call that a hit avoided.
func BuildReport(stats []Stats, costPerCall map[string]float64) Report {
	r := Report{Recommendations: []string{}}
	for _, s := range stats {
		saved := float64(s.Hits) * costPerCall[s.Name]
		r.EstimatedSavings += saved
		r.Caches = append(r.Caches, CacheReport{
			Name:             s.Name,
			Size:             fmt.Sprintf("%d/%d", s.Size, s.MaxSize),
			Hits:             s.Hits,
			Misses:           s.Misses,
			HitRate:          s.HitRate,
			OldestEntryAgeMs: s.OldestAge.Milliseconds(),
			NewestEntryAgeMs: s.NewestAge.Milliseconds(),
			EstimatedSavings: saved,
		})
		r.Recommendations = append(r.Recommendations, recommend(s)...)
	}
	if len(r.Recommendations) == 0 {
		r.Recommendations = append(r.Recommendations, "All caches are operating within expected bounds.")
	}
	return r
}

func recommend(s Stats) []string {
	var out []string
	lookups := s.Hits + s.Misses
	if lookups >= minLookupsForRate && s.HitRate < lowHitRate {
		out = append(out, fmt.Sprintf(
			"%s cache hit rate is %.0f%% over %d lookups; consider a longer TTL or coarser fingerprints.",
			s.Name, s.HitRate*100, lookups))
	}
	if s.MaxSize > 0 && float64(s.Size)/float64(s.MaxSize) > nearlyFullRatio {
		out = append(out, fmt.Sprintf(
			"%s cache is %d/%d full; consider increasing its max size to reduce evictions.",
			s.Name, s.Size, s.MaxSize))
	}
	if s.Size == 0 && lookups > 0 && s.Hits == 0 {
		out = append(out, fmt.Sprintf("%s cache is empty after %d lookups; check that results are being stored.", s.Name, lookups))
	}
	return out
}
