package backend

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the adapter's Prometheus collectors. A nil *Metrics records nothing.
type Metrics struct {
	apiCallsTotal *prometheus.CounterVec
	apiLatency    *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		apiCallsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "colonyctl",
				Subsystem: "backend",
				Name:      "api_calls_total",
				Help:      "Total number of backend API calls by operation and result",
			},
			[]string{"operation", "result"},
		),
		apiLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "colonyctl",
				Subsystem: "backend",
				Name:      "api_latency_seconds",
				Help:      "Latency of backend API calls in seconds, retries included",
				Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10), // 50ms to ~25s
			},
			[]string{"operation"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.apiCallsTotal, m.apiLatency)
	}
	return m
}

func (m *Metrics) recordCall(operation string, err error, latency time.Duration) {
	if m == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "error"
	}
	m.apiCallsTotal.WithLabelValues(operation, result).Inc()
	m.apiLatency.WithLabelValues(operation).Observe(latency.Seconds())
}
