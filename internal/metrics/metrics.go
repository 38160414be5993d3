// Package metrics exports Prometheus metrics for the generation pipeline.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "sitegen"

// Metrics holds every collector. Each instance owns a private registry so
// tests can construct as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	CacheHits      *prometheus.CounterVec
	CacheMisses    *prometheus.CounterVec
	CacheEvictions *prometheus.CounterVec
	CacheSize      *prometheus.GaugeVec

	GenerationDuration *prometheus.HistogramVec
	Completions        *prometheus.CounterVec
	Fallbacks          *prometheus.CounterVec
	Mutations          *prometheus.CounterVec
}

// New registers all collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		CacheHits: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Cache lookups that returned a live entry",
		}, []string{"cache"}),
		CacheMisses: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_misses_total",
			Help:      "Cache lookups that found nothing or an expired entry",
		}, []string{"cache"}),
		CacheEvictions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_evictions_total",
			Help:      "Entries evicted because the cache was at capacity",
		}, []string{"cache"}),
		CacheSize: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cache_entries",
			Help:      "Current number of cache entries",
		}, []string{"cache"}),
		GenerationDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_duration_seconds",
			Help:      "End-to-end generation time",
			Buckets:   []float64{0.005, 0.05, 0.5, 1, 2.5, 5, 10, 20, 40, 80},
		}, []string{"cached"}),
		Completions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "completions_total",
			Help:      "Completion service calls by outcome",
		}, []string{"outcome"}),
		Fallbacks: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stage_fallbacks_total",
			Help:      "Pipeline stages that fell back to a deterministic result",
		}, []string{"stage"}),
		Mutations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mutations_total",
			Help:      "Natural-language mutations by result",
		}, []string{"result"}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Hit implements cache.Observer.
func (m *Metrics) Hit(cache string) { m.CacheHits.WithLabelValues(cache).Inc() }

// Miss implements cache.Observer.
func (m *Metrics) Miss(cache string) { m.CacheMisses.WithLabelValues(cache).Inc() }

// Evict implements cache.Observer.
func (m *Metrics) Evict(cache string) { m.CacheEvictions.WithLabelValues(cache).Inc() }

// Size implements cache.Observer.
func (m *Metrics) Size(cache string, n int) { m.CacheSize.WithLabelValues(cache).Set(float64(n)) }

// ObserveGeneration records one Generate call.
func (m *Metrics) ObserveGeneration(d time.Duration, cached bool) {
	m.GenerationDuration.WithLabelValues(strconv.FormatBool(cached)).Observe(d.Seconds())
}

// Completion records one completion call outcome ("ok" or an error kind).
func (m *Metrics) Completion(outcome string) { m.Completions.WithLabelValues(outcome).Inc() }

// Fallback records a stage fallback.
func (m *Metrics) Fallback(stage string) { m.Fallbacks.WithLabelValues(stage).Inc() }

// Mutation records a mutation result ("ok" or "error").
func (m *Metrics) Mutation(result string) { m.Mutations.WithLabelValues(result).Inc() }
