package credit

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for the scoring adapter.
type Metrics struct {
	EngineFailures   prometheus.Counter
	BreakerRejected  prometheus.Counter
	BreakerState     prometheus.Gauge
	ThrottledWaiting prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		EngineFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "loans_credit_engine_failures_total",
			Help: "Total number of failed score computations",
		}),
		BreakerRejected: factory.NewCounter(prometheus.CounterOpts{
			Name: "loans_credit_breaker_rejected_total",
			Help: "Total number of score requests rejected by the open circuit breaker",
		}),
		BreakerState: factory.NewGauge(prometheus.GaugeOpts{
			Name: "loans_credit_breaker_state",
			Help: "Current circuit breaker state (0=closed, 1=open)",
		}),
		ThrottledWaiting: factory.NewCounter(prometheus.CounterOpts{
			Name: "loans_credit_throttled_total",
			Help: "Total number of scoring requests that had to wait for the rate limiter",
		}),
	}
}

func (m *Metrics) IncrementEngineFailure() {
	if m != nil {
		m.EngineFailures.Inc()
	}
}

func (m *Metrics) IncrementRejected() {
	if m != nil {
		m.BreakerRejected.Inc()
	}
}

func (m *Metrics) SetBreakerOpen(open bool) {
	if m == nil {
		return
	}
	if open {
		m.BreakerState.Set(1)
		return
	}
	m.BreakerState.Set(0)
}

func (m *Metrics) IncrementThrottled() {
	if m != nil {
		m.ThrottledWaiting.Inc()
	}
}
