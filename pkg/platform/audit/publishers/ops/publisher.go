// Package ops publishes operations audit events on a best-effort basis:
// events may be sampled, are dropped while the sink is failing, and never
// return an error to the caller.
package ops

import (
	"context"
	"log/slog"

	audit "loans/pkg/platform/audit"
	"loans/pkg/platform/circuit"
)

type Publisher struct {
	sink    audit.Emitter
	sampler *Sampler
	breaker *circuit.Breaker
	metrics *Metrics
	logger  *slog.Logger
}

type Option func(*Publisher)

func WithSampler(s *Sampler) Option {
	return func(p *Publisher) {
		p.sampler = s
	}
}

func WithBreaker(b *circuit.Breaker) Option {
	return func(p *Publisher) {
		p.breaker = b
	}
}

func WithMetrics(m *Metrics) Option {
	return func(p *Publisher) {
		p.metrics = m
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// New wraps sink. By default every event is kept and the sink breaker opens
// after 5 consecutive failures.
func New(sink audit.Emitter, opts ...Option) *Publisher {
	p := &Publisher{
		sink:    sink,
		sampler: NewSampler(1),
		breaker: circuit.New("audit-ops"),
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Emit always returns nil.
func (p *Publisher) Emit(ctx context.Context, event audit.Event) error {
	if !p.sampler.Keep(audit.AuditEvent(event.Action)) {
		if p.metrics != nil {
			p.metrics.Sampled.Inc()
		}
		return nil
	}
	if !p.breaker.Allow() {
		if p.metrics != nil {
			p.metrics.CircuitBreakerDropped.Inc()
		}
		return nil
	}

	if err := p.sink.Emit(ctx, event); err != nil {
		_, change := p.breaker.RecordFailure()
		if p.metrics != nil {
			p.metrics.PersistFailures.Inc()
		}
		p.metrics.setBreakerState(p.breaker.IsOpen())
		if change.Opened {
			p.logger.WarnContext(ctx, "ops audit sink failing, dropping events", "error", err)
		} else {
			p.logger.DebugContext(ctx, "ops audit event dropped",
				"action", event.Action,
				"error", err,
			)
		}
		return nil
	}

	p.breaker.RecordSuccess()
	p.metrics.setBreakerState(p.breaker.IsOpen())
	if p.metrics != nil {
		p.metrics.Tracked.Inc()
	}
	return nil
}
