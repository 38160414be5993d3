package cache

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newTestCache(clk *fakeClock, max int, ttl time.Duration) *Cache[string] {
	return New[string](Config{Name: "test", MaxSize: max, TTL: ttl}, WithClock(clk.Now))
}

func TestCache_SizeNeverExceedsMax(t *testing.T) {
	clk := newFakeClock()
	c := newTestCache(clk, 5, time.Hour)
	for i := 0; i < 50; i++ {
		c.Set(fmt.Sprintf("k%d", i), "v")
		clk.Advance(time.Millisecond)
		if n := c.Len(); n > 5 {
			t.Fatalf("after %d sets size = %d, exceeds max 5", i+1, n)
		}
	}
}

func TestCache_ExpiresAfterTTL(t *testing.T) {
	clk := newFakeClock()
	c := newTestCache(clk, 10, time.Minute)
	c.Set("a", "1")

	clk.Advance(time.Minute)
	if _, ok := c.Get("a"); !ok {
		t.Fatal("entry at exactly ttl should still be served")
	}

	clk.Advance(time.Millisecond)
	if _, ok := c.Get("a"); ok {
		t.Fatal("entry older than ttl was served")
	}
	if c.Len() != 0 {
		t.Errorf("expired entry should be deleted on read, size = %d", c.Len())
	}
	s := c.Stats()
	if s.Hits != 1 || s.Misses != 1 {
		t.Errorf("hits=%d misses=%d, want 1/1", s.Hits, s.Misses)
	}
}

// Eviction is by insertion time only; reads do not protect an entry. This
// is FIFO behaviour kept deliberately, not true LRU.
func TestCache_EvictionIsInsertionOrderNotLRU(t *testing.T) {
	clk := newFakeClock()
	c := newTestCache(clk, 2, time.Hour)
	c.Set("first", "1")
	clk.Advance(time.Second)
	c.Set("second", "2")
	clk.Advance(time.Second)

	// A true LRU would now protect "first".
	if _, ok := c.Get("first"); !ok {
		t.Fatal("first should be present")
	}
	c.Set("third", "3")

	if _, ok := c.Get("first"); ok {
		t.Error("first was read recently but must still be evicted (FIFO)")
	}
	if _, ok := c.Get("second"); !ok {
		t.Error("second should survive eviction")
	}
	if _, ok := c.Get("third"); !ok {
		t.Error("third should be present")
	}
}

func TestCache_OverwriteDoesNotEvict(t *testing.T) {
	clk := newFakeClock()
	c := newTestCache(clk, 2, time.Hour)
	c.Set("a", "1")
	c.Set("b", "2")
	c.Set("a", "3")
	if c.Len() != 2 {
		t.Fatalf("size = %d, want 2", c.Len())
	}
	if v, _ := c.Get("a"); v != "3" {
		t.Errorf("a = %q, want 3", v)
	}
	if _, ok := c.Get("b"); !ok {
		t.Error("b should not be evicted by overwrite of a")
	}
}

func TestCache_ClearResets(t *testing.T) {
	clk := newFakeClock()
	c := newTestCache(clk, 3, time.Hour)
	c.Set("a", "1")
	c.Get("a")
	c.Get("missing")
	c.Clear()
	s := c.Stats()
	if s.Size != 0 || s.Hits != 0 || s.Misses != 0 {
		t.Errorf("after Clear stats = %+v", s)
	}
}

func TestCache_StatsAges(t *testing.T) {
	clk := newFakeClock()
	c := newTestCache(clk, 3, time.Hour)
	c.Set("a", "1")
	clk.Advance(10 * time.Second)
	c.Set("b", "2")
	clk.Advance(5 * time.Second)

	s := c.Stats()
	if s.OldestAge != 15*time.Second {
		t.Errorf("OldestAge = %v, want 15s", s.OldestAge)
	}
	if s.NewestAge != 5*time.Second {
		t.Errorf("NewestAge = %v, want 5s", s.NewestAge)
	}
	c.Get("a")
	c.Get("zzz")
	if got := c.Stats().HitRate; got != 0.5 {
		t.Errorf("HitRate = %v, want 0.5", got)
	}
}

type countingObserver struct {
	mu                  sync.Mutex
	hits, misses, evict int
	size                int
}

func (o *countingObserver) Hit(string)   { o.mu.Lock(); o.hits++; o.mu.Unlock() }
func (o *countingObserver) Miss(string)  { o.mu.Lock(); o.misses++; o.mu.Unlock() }
func (o *countingObserver) Evict(string) { o.mu.Lock(); o.evict++; o.mu.Unlock() }
func (o *countingObserver) Size(_ string, n int) {
	o.mu.Lock()
	o.size = n
	o.mu.Unlock()
}

func TestCache_ObserverEvents(t *testing.T) {
	obs := &countingObserver{}
	c := New[int](Config{Name: "obs", MaxSize: 1, TTL: time.Hour}, WithObserver(obs))
	c.Set("a", 1)
	c.Set("b", 2)
	c.Get("b")
	c.Get("a")
	if obs.hits != 1 || obs.misses != 1 || obs.evict != 1 || obs.size != 1 {
		t.Errorf("observer = %+v", obs)
	}
}

func TestCache_ConcurrentAccess(t *testing.T) {
	c := New[int](Config{Name: "conc", MaxSize: 16, TTL: time.Hour})
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("k%d", (g*i)%40)
				c.Set(key, i)
				c.Get(key)
				_ = c.Stats()
			}
		}(g)
	}
	wg.Wait()
	if c.Len() > 16 {
		t.Errorf("size %d exceeds max after concurrent use", c.Len())
	}
}

func TestFingerprint_OptionOrderIndependent(t *testing.T) {
	a := Fingerprint("  Create a Bakery site ", map[string]string{"tone": "casual", "industry": "food"})
	b := Fingerprint("create a bakery site", map[string]string{"industry": "food", "tone": "casual"})
	if a != b {
		t.Errorf("fingerprints differ: %q vs %q", a, b)
	}
}

func TestFingerprint_DifferentOptionValues(t *testing.T) {
	a := Fingerprint("create a bakery site", map[string]string{"tone": "casual"})
	b := Fingerprint("create a bakery site", map[string]string{"tone": "professional"})
	if a == b {
		t.Error("different tone values produced identical fingerprints")
	}
}

func TestFingerprint_BoundedLength(t *testing.T) {
	fp := Fingerprint(strings.Repeat("long prompt ", 1000), nil)
	if len(fp) == 0 || len(fp) > 7 {
		t.Errorf("fingerprint length %d outside 1..7: %q", len(fp), fp)
	}
}

func TestBuildReport_Recommendations(t *testing.T) {
	stats := []Stats{
		{Name: "analysis", Size: 90, MaxSize: 100, Hits: 2, Misses: 30, HitRate: 2.0 / 32},
		{Name: "content", Size: 1, MaxSize: 100, Hits: 10, Misses: 0, HitRate: 1},
	}
	r := BuildReport(stats, map[string]float64{"analysis": 0.01, "content": 0.02})

	if len(r.Caches) != 2 {
		t.Fatalf("expected 2 cache reports, got %d", len(r.Caches))
	}
	if r.Caches[0].Size != "90/100" {
		t.Errorf("size = %q", r.Caches[0].Size)
	}
	if want := 2*0.01 + 10*0.02; r.EstimatedSavings < want-1e-9 || r.EstimatedSavings > want+1e-9 {
		t.Errorf("EstimatedSavings = %v, want %v", r.EstimatedSavings, want)
	}
	joined := strings.Join(r.Recommendations, "\n")
	if !strings.Contains(joined, "analysis cache hit rate") {
		t.Errorf("missing low hit rate recommendation: %q", joined)
	}
	if !strings.Contains(joined, "90/100 full") {
		t.Errorf("missing nearly-full recommendation: %q", joined)
	}
	if strings.Contains(joined, "content cache") {
		t.Errorf("healthy content cache should not be flagged: %q", joined)
	}
}

func TestBuildReport_HealthyHasDefaultMessage(t *testing.T) {
	r := BuildReport([]Stats{{Name: "results", Size: 1, MaxSize: 10, Hits: 3, Misses: 1, HitRate: 0.75}}, nil)
	if len(r.Recommendations) != 1 || !strings.Contains(r.Recommendations[0], "within expected bounds") {
		t.Errorf("Recommendations = %v", r.Recommendations)
	}
}
