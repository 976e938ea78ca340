package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the workflow engine. A nil
// *Metrics is valid and records nothing, which keeps unit tests free of
// registry bookkeeping.
type Metrics struct {
	Transitions        *prometheus.CounterVec
	DuplicateCallbacks prometheus.Counter
	DispatchFailures   prometheus.Counter
	SweepDuration      prometheus.Histogram
	SweepExpired       prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		Transitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "polisflow_document_transitions_total",
			Help: "Total number of committed document status transitions",
		}, []string{"from", "to"}),
		DuplicateCallbacks: promauto.NewCounter(prometheus.CounterOpts{
			Name: "polisflow_duplicate_callbacks_total",
			Help: "Webhook callbacks that arrived for an already resolved record",
		}),
		DispatchFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "polisflow_delivery_dispatch_failures_total",
			Help: "Outbound delivery dispatches that failed and aborted a transition",
		}),
		SweepDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "polisflow_expiry_sweep_duration_seconds",
			Help:    "Duration of a full expiry sweep pass",
			Buckets: prometheus.DefBuckets,
		}),
		SweepExpired: promauto.NewCounter(prometheus.CounterOpts{
			Name: "polisflow_expiry_sweep_expired_total",
			Help: "Signature requests expired by the sweep",
		}),
	}
}

// RecordTransition increments the transition counter for a from/to pair.
func (m *Metrics) RecordTransition(from, to string) {
	if m == nil {
		return
	}
	m.Transitions.WithLabelValues(from, to).Inc()
}

// RecordDuplicateCallback counts a benign duplicate webhook delivery.
func (m *Metrics) RecordDuplicateCallback() {
	if m == nil {
		return
	}
	m.DuplicateCallbacks.Inc()
}

// RecordDispatchFailure counts an aborted outbound dispatch.
func (m *Metrics) RecordDispatchFailure() {
	if m == nil {
		return
	}
	m.DispatchFailures.Inc()
}

// ObserveSweep records one sweep pass and how many requests it expired.
func (m *Metrics) ObserveSweep(d time.Duration, expired int) {
	if m == nil {
		return
	}
	m.SweepDuration.Observe(d.Seconds())
	m.SweepExpired.Add(float64(expired))
}
