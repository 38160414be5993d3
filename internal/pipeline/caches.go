package pipeline

import (
	"github.com/dshills/sitegen/internal/cache"
	"github.com/dshills/sitegen/internal/site"
)

// Cache names, also used as metric labels and cost keys.
const (
	CacheAnalysis = "analysis"
	CacheContent  = "content"
	CacheResults  = "results"
)

// Caches are the three independently sized caches used by a Pipeline.
type Caches struct {
	Analysis *cache.Cache[site.Requirements]
	Content  *cache.Cache[site.Content]
	Results  *cache.Cache[Result]
}

// CacheSizes configures each cache; Name fields are filled in by NewCaches.
type CacheSizes struct {
	Analysis cache.Config
	Content  cache.Config
	Results  cache.Config
}

// NewCaches builds the three caches with shared options (clock, observer).
func NewCaches(sizes CacheSizes, opts ...cache.Option) *Caches {
	sizes.Analysis.Name = CacheAnalysis
	sizes.Content.Name = CacheContent
	sizes.Results.Name = CacheResults
	return &Caches{
		Analysis: cache.New[site.Requirements](sizes.Analysis, opts...),
		Content:  cache.New[site.Content](sizes.Content, opts...),
		Results:  cache.New[Result](sizes.Results, opts...),
	}
}

// Stats returns a snapshot of every cache.
func (c *Caches) Stats() []cache.Stats {
	return []cache.Stats{c.Analysis.Stats(), c.Content.Stats(), c.Results.Stats()}
}

// Clear empties every cache and resets counters.
func (c *Caches) Clear() {
	c.Analysis.Clear()
	c.Content.Clear()
	c.Results.Clear()
}
