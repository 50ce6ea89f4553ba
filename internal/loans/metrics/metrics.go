package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the loan decision workflow.
type Metrics struct {
	// Collaborator call latencies by phase
	PhaseLatency *prometheus.HistogramVec

	// Decision outcomes by decision and reason
	DecisionOutcome *prometheus.CounterVec

	// Scoring failures converted into declines
	ScoringFailures prometheus.Counter

	// Identity infrastructure failures returned to the caller
	IdentityFailures prometheus.Counter

	// Overall Process latency
	ProcessLatency prometheus.Histogram
}

// New creates a Metrics instance registered on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		PhaseLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "loans_processor_phase_duration_seconds",
			Help:    "Duration of collaborator calls by phase",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"phase"}), // phase: "identity_initialize", "identity_validate", "score_calculate", "score_read"

		DecisionOutcome: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "loans_processor_decisions_total",
			Help: "Total loan decisions by outcome and reason",
		}, []string{"decision", "reason"}),

		ScoringFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "loans_processor_scoring_failures_total",
			Help: "Credit scoring failures that resulted in a decline",
		}),

		IdentityFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "loans_processor_identity_failures_total",
			Help: "Identity verification infrastructure failures returned to the caller",
		}),

		ProcessLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "loans_processor_process_duration_seconds",
			Help:    "Duration of a full Process call",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
	}
}

// ObservePhaseLatency records the duration of one collaborator call.
func (m *Metrics) ObservePhaseLatency(phase string, d time.Duration) {
	if m != nil {
		m.PhaseLatency.WithLabelValues(phase).Observe(d.Seconds())
	}
}

// IncrementOutcome records a decision.
func (m *Metrics) IncrementOutcome(decision, reason string) {
	if m != nil {
		m.DecisionOutcome.WithLabelValues(decision, reason).Inc()
	}
}

func (m *Metrics) IncrementScoringFailure() {
	if m != nil {
		m.ScoringFailures.Inc()
	}
}

func (m *Metrics) IncrementIdentityFailure() {
	if m != nil {
		m.IdentityFailures.Inc()
	}
}

// ObserveProcessLatency records the total Process duration.
func (m *Metrics) ObserveProcessLatency(d time.Duration) {
	if m != nil {
		m.ProcessLatency.Observe(d.Seconds())
	}
}
