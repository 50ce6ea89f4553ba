package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(nil, "")
	require.NoError(t, err)

	floor, err := cfg.Policy.IncomeFloorDecimal()
	require.NoError(t, err)
	assert.Equal(t, "65000", floor.String())
	assert.Equal(t, 300, cfg.Policy.MinimumScore)
	assert.Equal(t, IdentityDirect, cfg.Identity.Mode)
	assert.Equal(t, ScoringTable, cfg.Scoring.Mode)
	assert.Equal(t, 30*time.Second, cfg.Scoring.BreakerCooldown)
	assert.Empty(t, cfg.Redis.URL)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.Equal(t, 4, cfg.Concurrency)
}

func TestLoad_FileEnvAndFlags(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "loans.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
policy:
  income_floor: "70000.50"
  minimum_score: 320
scoring:
  mode: http
  url: http://bureau.local
  breaker_cooldown: 90s
log:
  level: warn
`), 0o600))

	t.Setenv("LOANS_POLICY_MINIMUM_SCORE", "350")
	t.Setenv("LOANS_KAFKA_BROKERS", "k1:9092, k2:9092,k1:9092")

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("log-level", "info", "")
	require.NoError(t, cmd.Flags().Set("log-level", "debug"))

	cfg, err := Load(cmd, file)
	require.NoError(t, err)

	floor, err := cfg.Policy.IncomeFloorDecimal()
	require.NoError(t, err)
	assert.Equal(t, "70000.5", floor.String())
	assert.Equal(t, 350, cfg.Policy.MinimumScore, "env overrides file")
	assert.Equal(t, ScoringHTTP, cfg.Scoring.Mode)
	assert.Equal(t, 90*time.Second, cfg.Scoring.BreakerCooldown)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "debug", cfg.Log.Level, "flag overrides file")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(nil, filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		cfg, err := Load(nil, "")
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"bad income floor", func(c *Config) { c.Policy.IncomeFloor = "lots" }, "policy.income_floor"},
		{"negative income floor", func(c *Config) { c.Policy.IncomeFloor = "-1" }, "must not be negative"},
		{"negative score", func(c *Config) { c.Policy.MinimumScore = -5 }, "policy.minimum_score"},
		{"unknown identity mode", func(c *Config) { c.Identity.Mode = "carrier-pigeon" }, "identity.mode"},
		{"http identity without url", func(c *Config) { c.Identity.Mode = IdentityHTTP }, "identity.url"},
		{"http scoring without url", func(c *Config) { c.Scoring.Mode = ScoringHTTP }, "scoring.url"},
		{"brokers without topic", func(c *Config) {
			c.Kafka.Brokers = []string{"k:9092"}
			c.Kafka.Topic = ""
		}, "kafka.topic"},
		{"zero concurrency", func(c *Config) { c.Concurrency = 0 }, "concurrency"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
