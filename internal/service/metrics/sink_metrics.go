package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Write-side metrics for the optional sinks (event bus, snapshot history).
var (
	once sync.Once

	SinkLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "moneyroutine",
			Subsystem: "sink",
			Name:      "write_seconds",
			Help:      "Latency of writes to external sinks",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"sink"},
	)

	SinkErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "moneyroutine",
			Subsystem: "sink",
			Name:      "errors_total",
			Help:      "Failed writes by sink",
		},
		[]string{"sink"},
	)
)

func Register() {
	once.Do(func() {
		prometheus.MustRegister(SinkLatency, SinkErrors)
	})
}
