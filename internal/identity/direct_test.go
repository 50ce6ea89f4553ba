package identity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loans/pkg/platform/sentinel"
)

func TestDirectVerifier(t *testing.T) {
	ctx := context.Background()
	v := NewDirectVerifier(
		Record{Name: "Sarah", Age: 25, Address: "133 Pluralsight Drive, Draper, Utah"},
		Record{Name: "Sarah", Age: 41, Address: "9 Elm Street"},
	)

	t.Run("validate before initialize is invalid state", func(t *testing.T) {
		_, err := v.Validate(ctx, "Sarah", 25, "133 Pluralsight Drive, Draper, Utah")
		assert.ErrorIs(t, err, sentinel.ErrInvalidState)
	})

	require.NoError(t, v.Initialize(ctx))
	require.NoError(t, v.Initialize(ctx), "initialize is repeatable across Process calls")

	t.Run("exact match verifies", func(t *testing.T) {
		ok, err := v.Validate(ctx, "Sarah", 41, "9 Elm Street")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("attributes are not normalized", func(t *testing.T) {
		ok, err := v.Validate(ctx, "sarah", 25, "133 Pluralsight Drive, Draper, Utah")
		require.NoError(t, err)
		assert.False(t, ok)

		ok, err = v.Validate(ctx, "Sarah", 25, "133 pluralsight drive, draper, utah ")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("age mismatch fails", func(t *testing.T) {
		ok, err := v.Validate(ctx, "Sarah", 26, "133 Pluralsight Drive, Draper, Utah")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("unknown applicant fails", func(t *testing.T) {
		ok, err := v.Validate(ctx, "Bob", 25, "133 Pluralsight Drive, Draper, Utah")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
