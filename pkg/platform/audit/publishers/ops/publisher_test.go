package ops

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	audit "loans/pkg/platform/audit"
	"loans/pkg/platform/circuit"
)

type sink struct {
	calls int
	err   error
}

func (s *sink) Emit(context.Context, audit.Event) error {
	s.calls++
	return s.err
}

func scoringEvent() audit.Event {
	return audit.Event{Action: string(audit.EventScoringUnavailable), ApplicationID: 7}
}

func TestPublisher_Tracks(t *testing.T) {
	s := &sink{}
	metrics := NewMetrics(prometheus.NewRegistry())
	pub := New(s, WithMetrics(metrics))

	require.NoError(t, pub.Emit(context.Background(), scoringEvent()))
	assert.Equal(t, 1, s.calls)
	assert.Equal(t, 1.0, promtest.ToFloat64(metrics.Tracked))
}

func TestPublisher_Sampling(t *testing.T) {
	s := &sink{}
	metrics := NewMetrics(prometheus.NewRegistry())
	sampler := NewSampler(1)
	sampler.SetRate(audit.EventScoringUnavailable, 0)
	pub := New(s, WithSampler(sampler), WithMetrics(metrics))

	require.NoError(t, pub.Emit(context.Background(), scoringEvent()))
	require.NoError(t, pub.Emit(context.Background(), audit.Event{Action: string(audit.EventIdentityFailure)}))

	assert.Equal(t, 1, s.calls, "only the unsampled action reaches the sink")
	assert.Equal(t, 1.0, promtest.ToFloat64(metrics.Sampled))
}

func TestPublisher_SinkFailuresOpenBreaker(t *testing.T) {
	s := &sink{err: errors.New("broker unreachable")}
	metrics := NewMetrics(prometheus.NewRegistry())
	pub := New(s,
		WithBreaker(circuit.New("audit-ops", circuit.WithFailureThreshold(2))),
		WithMetrics(metrics),
	)
	ctx := context.Background()

	for range 4 {
		assert.NoError(t, pub.Emit(ctx, scoringEvent()), "ops events never fail the caller")
	}

	assert.Equal(t, 2, s.calls)
	assert.Equal(t, 2.0, promtest.ToFloat64(metrics.PersistFailures))
	assert.Equal(t, 2.0, promtest.ToFloat64(metrics.CircuitBreakerDropped))
	assert.Equal(t, 1.0, promtest.ToFloat64(metrics.CircuitBreakerState))
}

func TestSampler(t *testing.T) {
	s := NewSampler(0.5)
	s.draw = func() float64 { return 0.49 }
	assert.True(t, s.Keep(audit.EventIdentityFailure))
	s.draw = func() float64 { return 0.5 }
	assert.False(t, s.Keep(audit.EventIdentityFailure))

	s.SetRate(audit.EventScoringUnavailable, 7)
	assert.True(t, s.Keep(audit.EventScoringUnavailable), "rates above 1 clamp to keep-all")

	assert.False(t, NewSampler(-1).Keep(audit.EventScoringUnavailable))
}
