//go:build integration

package redis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loans/internal/platform/config"
	"loans/pkg/testutil/containers"
)

func TestNew_Connects(t *testing.T) {
	rc := containers.NewRedis(t)

	client, err := New(context.Background(), config.RedisConfig{URL: rc.URL, PoolSize: 2})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	assert.NoError(t, client.Health(context.Background()))
}
