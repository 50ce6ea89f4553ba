package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	audit "loans/pkg/platform/audit"
)

func TestInMemoryStore(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store := NewInMemoryStore()

	require.NoError(t, store.Append(ctx, audit.NewEvent(audit.EventLoanDecisionMade, 1, at)))
	require.NoError(t, store.Append(ctx, audit.NewEvent(audit.EventScoringUnavailable, 2, at)))
	require.NoError(t, store.Append(ctx, audit.NewEvent(audit.EventLoanDecisionMade, 2, at)))

	events, err := store.ListByApplication(ctx, 2)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, string(audit.EventScoringUnavailable), events[0].Action, "append order is kept")

	// returned slices are copies
	events[0].Action = "tampered"
	again, err := store.ListByApplication(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, string(audit.EventScoringUnavailable), again[0].Action)

	all, err := store.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	store.Clear()
	all, err = store.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
