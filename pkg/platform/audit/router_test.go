package audit

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	events []Event
	err    error
}

func (r *recorder) Emit(_ context.Context, event Event) error {
	r.events = append(r.events, event)
	return r.err
}

func TestRouter_Emit(t *testing.T) {
	compliance := &recorder{err: errors.New("store down")}
	ops := &recorder{}
	router := NewRouter(nil, nil)
	router.Register(CategoryCompliance, compliance)
	router.Register(CategoryOperations, ops)
	ctx := context.Background()

	err := router.Emit(ctx, Event{Action: string(EventLoanDecisionMade), ApplicationID: 1})
	assert.Error(t, err, "compliance failures reach the caller")
	require.Len(t, compliance.events, 1)
	assert.Equal(t, CategoryCompliance, compliance.events[0].Category)

	require.NoError(t, router.Emit(ctx, Event{Action: string(EventScoringUnavailable), ApplicationID: 1}))
	assert.Len(t, ops.events, 1)
}

func TestRouter_Fallback(t *testing.T) {
	fallback := &recorder{}
	router := NewRouter(nil, fallback)

	require.NoError(t, router.Emit(context.Background(), Event{Category: "experimental", Action: "x"}))
	assert.Len(t, fallback.events, 1)

	// without a fallback unknown categories are dropped
	require.NoError(t, NewRouter(nil, nil).Emit(context.Background(), Event{Category: "experimental"}))
}
