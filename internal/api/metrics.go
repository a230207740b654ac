package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/WillCS/uqplanner/internal/planner"
)

// Optimise outcomes, used as the outcome label.
const (
	outcomeFound     = "found"
	outcomeNoFit     = "no_fit"
	outcomeTruncated = "truncated"
	outcomeError     = "error"
)

type metrics struct {
	optimiseRequests *prometheus.CounterVec
	optimiseNodes    prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)
	return &metrics{
		optimiseRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "uqplanner",
				Name:      "optimise_requests_total",
				Help:      "Optimise requests by outcome.",
			},
			[]string{"outcome"},
		),
		optimiseNodes: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "uqplanner",
				Name:      "optimise_nodes",
				Help:      "Search nodes visited per optimise request.",
				Buckets:   prometheus.ExponentialBuckets(1, 4, 12),
			},
		),
	}
}

// observe records one optimise request. schedule is nil on error.
func (m *metrics) observe(schedule *planner.Schedule) {
	switch {
	case schedule == nil:
		m.optimiseRequests.WithLabelValues(outcomeError).Inc()
		return
	case schedule.Truncated:
		m.optimiseRequests.WithLabelValues(outcomeTruncated).Inc()
	case schedule.Found:
		m.optimiseRequests.WithLabelValues(outcomeFound).Inc()
	default:
		m.optimiseRequests.WithLabelValues(outcomeNoFit).Inc()
	}
	m.optimiseNodes.Observe(float64(schedule.NodesVisited))
}
