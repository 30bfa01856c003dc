package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts and times remote calls by operation, transport and
// outcome ("ok" or the failure kind).
type Metrics struct {
	Calls    *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

// NewMetrics registers the collectors with reg, or with the default
// registry when reg is nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		Calls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "greenmoney_remote_calls_total",
				Help: "Total remote operations sent, by outcome",
			},
			[]string{"operation", "transport", "outcome"},
		),
		Duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "greenmoney_remote_call_duration_seconds",
				Help:    "Remote operation round trip duration in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"operation", "transport"},
		),
	}
}

func (m *Metrics) observe(operation, transport, outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.Calls.WithLabelValues(operation, transport, outcome).Inc()
	m.Duration.WithLabelValues(operation, transport).Observe(seconds)
}
