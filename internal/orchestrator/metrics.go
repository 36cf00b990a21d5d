package orchestrator

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the orchestrator's Prometheus collectors. A nil *Metrics
// records nothing.
type Metrics struct {
	deployTotal      *prometheus.CounterVec
	nodeIssuesTotal  *prometheus.CounterVec
	nodeWaitDuration prometheus.Histogram
	scaleTotal       *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		deployTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "colonyctl",
				Subsystem: "orchestrator",
				Name:      "deploy_total",
				Help:      "Total number of cluster deployments by outcome",
			},
			[]string{"outcome"},
		),
		nodeIssuesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "colonyctl",
				Subsystem: "orchestrator",
				Name:      "node_issues_total",
				Help:      "Total number of per-node issues by operation",
			},
			[]string{"operation"},
		),
		nodeWaitDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "colonyctl",
				Subsystem: "orchestrator",
				Name:      "node_wait_duration_seconds",
				Help:      "Time spent waiting for DISCOVERING nodes",
				Buckets:   prometheus.ExponentialBuckets(0.5, 2, 8), // 500ms to ~64s
			},
		),
		scaleTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "colonyctl",
				Subsystem: "orchestrator",
				Name:      "scale_total",
				Help:      "Total number of scale operations by operation and outcome",
			},
			[]string{"operation", "outcome"},
		),
	}

	if reg != nil {
		reg.MustRegister(m.deployTotal, m.nodeIssuesTotal, m.nodeWaitDuration, m.scaleTotal)
	}
	return m
}

// Outcome labels shared by deploy and scale metrics.
const (
	outcomeSuccess = "success"
	outcomePartial = "partial"
	outcomeFailure = "failure"
	outcomeError   = "error"
)

func (m *Metrics) recordDeploy(outcome string, issues int) {
	if m == nil {
		return
	}
	m.deployTotal.WithLabelValues(outcome).Inc()
	m.nodeIssuesTotal.WithLabelValues("deploy").Add(float64(issues))
}

func (m *Metrics) recordScale(operation, outcome string, issues int) {
	if m == nil {
		return
	}
	m.scaleTotal.WithLabelValues(operation, outcome).Inc()
	m.nodeIssuesTotal.WithLabelValues(operation).Add(float64(issues))
}

func (m *Metrics) recordNodeWait(d time.Duration) {
	if m == nil {
		return
	}
	m.nodeWaitDuration.Observe(d.Seconds())
}

func outcomeOf(hasNodes bool, issues int) string {
	switch {
	case !hasNodes:
		return outcomeFailure
	case issues > 0:
		return outcomePartial
	default:
		return outcomeSuccess
	}
}
