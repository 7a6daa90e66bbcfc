package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.MarketMetrics using Prometheus.
type Recorder struct {
	attempts  *prometheus.CounterVec
	latency   *prometheus.HistogramVec
	fallbacks *prometheus.CounterVec
	cache     *prometheus.CounterVec
}

// New creates a recorder registered on reg. Tests pass prometheus.NewRegistry().
func New(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		attempts: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "moneyroutine_market_source_attempts_total",
				Help: "Market source attempts by slot, source and outcome",
			},
			[]string{"slot", "source", "outcome"},
		),
		latency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "moneyroutine_market_source_duration_seconds",
				Help:    "Duration of market source attempts in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 4, 8},
			},
			[]string{"source"},
		),
		fallbacks: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "moneyroutine_market_fallbacks_total",
				Help: "Slots served from the static fallback",
			},
			[]string{"slot"},
		),
		cache: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "moneyroutine_market_cache_requests_total",
				Help: "Market snapshot cache lookups",
			},
			[]string{"result"},
		),
	}
}

// RecordAttempt records one source attempt. outcome is "ok" or a failure class.
func (r *Recorder) RecordAttempt(slot, source, outcome string, seconds float64) {
	r.attempts.WithLabelValues(slot, source, outcome).Inc()
	r.latency.WithLabelValues(source).Observe(seconds)
}

// RecordFallback records a slot that fell back to its static value.
func (r *Recorder) RecordFallback(slot string) {
	r.fallbacks.WithLabelValues(slot).Inc()
}

// RecordCache records a snapshot cache hit or miss.
func (r *Recorder) RecordCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	r.cache.WithLabelValues(result).Inc()
}
