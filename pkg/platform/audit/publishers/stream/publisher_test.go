package stream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("requires brokers", func(t *testing.T) {
		_, err := New(nil, "loan-decisions")
		assert.ErrorContains(t, err, "brokers are required")
	})

	t.Run("requires topic", func(t *testing.T) {
		_, err := New([]string{"localhost:9092"}, "")
		assert.ErrorContains(t, err, "topic is required")
	})

	t.Run("owns the client it creates", func(t *testing.T) {
		pub, err := New([]string{"localhost:9092"}, "loan-decisions")
		require.NoError(t, err)
		assert.True(t, pub.owned)
		assert.NoError(t, pub.Close())
	})
}
