// Package metrics exposes Prometheus instrumentation for data fetches and
// the provider response caches.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Fetch sources as used in metric labels.
const (
	SourceWeather      = "weather"
	SourceAirPollution = "air_pollution"
	SourceForecast     = "forecast"
	SourceGeolocation  = "geolocation"
)

// Fetch outcomes as used in metric labels.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

type collector struct {
	FetchTotal    *prometheus.CounterVec
	FetchDuration *prometheus.HistogramVec
	CacheHits     *prometheus.CounterVec
	CacheMisses   *prometheus.CounterVec
	CacheHitRatio *prometheus.GaugeVec
}

var globalCollector *collector

func getCollector() *collector {
	if globalCollector == nil {
		globalCollector = &collector{
			FetchTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "weatherdash_fetch_total",
					Help: "The total number of upstream data fetches by source and outcome",
				},
				[]string{"source", "outcome"},
			),
			FetchDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "weatherdash_fetch_duration_seconds",
					Help:    "Upstream fetch duration in seconds",
					Buckets: prometheus.DefBuckets,
				},
				[]string{"source"},
			),
			CacheHits: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "weatherdash_cache_hits_total",
					Help: "The total number of provider cache hits",
				},
				[]string{"cache_type"},
			),
			CacheMisses: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "weatherdash_cache_misses_total",
					Help: "The total number of provider cache misses",
				},
				[]string{"cache_type"},
			),
			CacheHitRatio: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Name: "weatherdash_cache_hit_ratio",
					Help: "Provider cache hit ratio (hits/total requests)",
				},
				[]string{"cache_type"},
			),
		}
	}
	return globalCollector
}

// FetchMetrics records upstream fetch counters and latencies.
type FetchMetrics struct {
	collector *collector
}

func NewFetchMetrics() *FetchMetrics {
	return &FetchMetrics{collector: getCollector()}
}

func (m *FetchMetrics) RecordFetch(source, outcome string, seconds float64) {
	m.collector.FetchTotal.WithLabelValues(source, outcome).Inc()
	m.collector.FetchDuration.WithLabelValues(source).Observe(seconds)
}

// CacheMetrics tracks hit/miss counts for one cache backend.
type CacheMetrics struct {
	cacheType string
	hits      int64
	misses    int64
	total     int64
	collector *collector
	mu        sync.RWMutex
}

func NewCacheMetrics(cacheType string) *CacheMetrics {
	return &CacheMetrics{
		cacheType: cacheType,
		collector: getCollector(),
	}
}

func (m *CacheMetrics) RecordHit() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.hits++
	m.total++
	m.collector.CacheHits.WithLabelValues(m.cacheType).Inc()
	m.updateHitRatio()
}

func (m *CacheMetrics) RecordMiss() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.misses++
	m.total++
	m.collector.CacheMisses.WithLabelValues(m.cacheType).Inc()
	m.updateHitRatio()
}

// updateHitRatio updates the Prometheus hit ratio gauge.
// Must be called while holding the mutex.
func (m *CacheMetrics) updateHitRatio() {
	if m.total > 0 {
		ratio := float64(m.hits) / float64(m.total)
		m.collector.CacheHitRatio.WithLabelValues(m.cacheType).Set(ratio)
	}
}

func (m *CacheMetrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var hitRatio float64
	if m.total > 0 {
		hitRatio = float64(m.hits) / float64(m.total)
	}

	return map[string]interface{}{
		"cache_type": m.cacheType,
		"hits":       m.hits,
		"misses":     m.misses,
		"total":      m.total,
		"hit_ratio":  hitRatio,
	}
}
