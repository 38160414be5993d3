// Package cache provides the bounded, time-expiring fingerprint caches that
// sit in front of every model-backed pipeline stage.
package cache

import (
	"sync"
	"time"
)

// Observer receives cache events, typically to export metrics.
type Observer interface {
	Hit(cache string)
	Miss(cache string)
	Evict(cache string)
	Size(cache string, n int)
}

// Config parameterizes a Cache instance.
type Config struct {
	Name    string
	MaxSize int
	TTL     time.Duration
}

type entry[T any] struct {
	value      T
	insertedAt time.Time
	accesses   int
}

// Cache is a bounded key/value store with time-based expiry. When full it
// evicts the entry with the oldest insertion time. Reads never refresh the
// insertion time, so eviction order is insertion order (FIFO), not LRU.
type Cache[T any] struct {
	mu      sync.Mutex
	cfg     Config
	entries map[string]*entry[T]
	hits    int64
	misses  int64
	now     func() time.Time
	obs     Observer
}

// Option configures a Cache at construction.
type Option func(*cacheOptions)

type cacheOptions struct {
	now func() time.Time
	obs Observer
}

// WithClock overrides the time source; intended for tests.
func WithClock(now func() time.Time) Option {
	return func(o *cacheOptions) { o.now = now }
}

// WithObserver attaches an event observer.
func WithObserver(obs Observer) Option {
	return func(o *cacheOptions) { o.obs = obs }
}

// New creates a Cache. A MaxSize below 1 is treated as 1.
func New[T any](cfg Config, opts ...Option) *Cache[T] {
	o := cacheOptions{now: time.Now}
	for _, fn := range opts {
		fn(&o)
	}
	if cfg.MaxSize < 1 {
		cfg.MaxSize = 1
	}
	return &Cache[T]{
		cfg:     cfg,
		entries: make(map[string]*entry[T], cfg.MaxSize),
		now:     o.now,
		obs:     o.obs,
	}
}

// Name returns the cache's configured name.
func (c *Cache[T]) Name() string { return c.cfg.Name }

// Get returns the value stored under key. Expired entries are deleted and
// reported as misses.
func (c *Cache[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	e, ok := c.entries[key]
	if !ok {
		c.recordMiss()
		return zero, false
	}
	if c.now().Sub(e.insertedAt) > c.cfg.TTL {
		delete(c.entries, key)
		c.recordMiss()
		c.reportSize()
		return zero, false
	}
	e.accesses++
	c.hits++
	if c.obs != nil {
		c.obs.Hit(c.cfg.Name)
	}
	return e.value, true
}

// Set stores value under key, evicting the oldest entry first if the cache
// is full and key is new.
func (c *Cache[T]) Set(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.cfg.MaxSize {
		c.evictOldest()
	}
	c.entries[key] = &entry[T]{value: value, insertedAt: c.now()}
	c.reportSize()
}

// Clear drops every entry and resets the hit/miss counters.
func (c *Cache[T]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*entry[T], c.cfg.MaxSize)
	c.hits = 0
	c.misses = 0
	c.reportSize()
}

// Len returns the number of stored entries, including any that have expired
// but not yet been read.
func (c *Cache[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns a snapshot of the cache counters.
func (c *Cache[T]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Stats{
		Name:    c.cfg.Name,
		Size:    len(c.entries),
		MaxSize: c.cfg.MaxSize,
		Hits:    c.hits,
		Misses:  c.misses,
	}
	if total := c.hits + c.misses; total > 0 {
		s.HitRate = float64(c.hits) / float64(total)
	}
	now := c.now()
	first := true
	for _, e := range c.entries {
		age := now.Sub(e.insertedAt)
		if first || age > s.OldestAge {
			s.OldestAge = age
		}
		if first || age < s.NewestAge {
			s.NewestAge = age
		}
		first = false
	}
	return s
}

func (c *Cache[T]) evictOldest() {
	var (
		oldestKey string
		oldest    time.Time
		found     bool
	)
	for k, e := range c.entries {
		if !found || e.insertedAt.Before(oldest) {
			oldestKey, oldest, found = k, e.insertedAt, true
		}
	}
	if !found {
		return
	}
	delete(c.entries, oldestKey)
	if c.obs != nil {
		c.obs.Evict(c.cfg.Name)
	}
}

func (c *Cache[T]) recordMiss() {
	c.misses++
	if c.obs != nil {
		c.obs.Miss(c.cfg.Name)
	}
}

func (c *Cache[T]) reportSize() {
	if c.obs != nil {
		c.obs.Size(c.cfg.Name, len(c.entries))
	}
}
