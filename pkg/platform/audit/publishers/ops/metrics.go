package ops

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for operations audit events.
type Metrics struct {
	Tracked               prometheus.Counter
	Sampled               prometheus.Counter
	CircuitBreakerDropped prometheus.Counter
	PersistFailures       prometheus.Counter
	CircuitBreakerState   prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Tracked: factory.NewCounter(prometheus.CounterOpts{
			Name: "loans_audit_ops_tracked_total",
			Help: "Total number of operations audit events published",
		}),
		Sampled: factory.NewCounter(prometheus.CounterOpts{
			Name: "loans_audit_ops_sampled_total",
			Help: "Total number of operations audit events dropped by sampling",
		}),
		CircuitBreakerDropped: factory.NewCounter(prometheus.CounterOpts{
			Name: "loans_audit_ops_circuit_breaker_dropped_total",
			Help: "Total number of operations audit events dropped while the sink circuit was open",
		}),
		PersistFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "loans_audit_ops_persist_failures_total",
			Help: "Total number of operations audit events the sink rejected",
		}),
		CircuitBreakerState: factory.NewGauge(prometheus.GaugeOpts{
			Name: "loans_audit_ops_circuit_breaker_state",
			Help: "Current sink circuit breaker state (0=closed, 1=open)",
		}),
	}
}

func (m *Metrics) setBreakerState(open bool) {
	if m == nil {
		return
	}
	if open {
		m.CircuitBreakerState.Set(1)
		return
	}
	m.CircuitBreakerState.Set(0)
}
