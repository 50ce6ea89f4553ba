// Package config loads loan-decider configuration from defaults, an optional
// YAML file, LOANS_* environment variables and command flags, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	strs "loans/pkg/platform/strings"
)

const envPrefix = "loans"

// Backend modes for the identity and scoring adapters.
const (
	IdentityDirect = "direct"
	IdentityHTTP   = "http"

	ScoringTable = "table"
	ScoringHTTP  = "http"
)

type Config struct {
	Policy      PolicyConfig   `mapstructure:"policy"`
	Identity    IdentityConfig `mapstructure:"identity"`
	Scoring     ScoringConfig  `mapstructure:"scoring"`
	Redis       RedisConfig    `mapstructure:"redis"`
	Kafka       KafkaConfig    `mapstructure:"kafka"`
	Log         LogConfig      `mapstructure:"log"`
	Concurrency int            `mapstructure:"concurrency"`
}

type PolicyConfig struct {
	// IncomeFloor is a decimal string so large or fractional floors survive
	// YAML and env parsing unchanged.
	IncomeFloor  string `mapstructure:"income_floor"`
	MinimumScore int    `mapstructure:"minimum_score"`
}

// IncomeFloorDecimal parses IncomeFloor.
func (p PolicyConfig) IncomeFloorDecimal() (decimal.Decimal, error) {
	d, err := decimal.NewFromString(p.IncomeFloor)
	if err != nil {
		return decimal.Zero, fmt.Errorf("policy.income_floor %q: %w", p.IncomeFloor, err)
	}
	return d, nil
}

type IdentityConfig struct {
	Mode    string        `mapstructure:"mode"`
	URL     string        `mapstructure:"url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type ScoringConfig struct {
	Mode             string        `mapstructure:"mode"`
	URL              string        `mapstructure:"url"`
	APIKey           string        `mapstructure:"api_key"`
	Timeout          time.Duration `mapstructure:"timeout"`
	RateLimit        float64       `mapstructure:"rate_limit"`
	Burst            int           `mapstructure:"burst"`
	BreakerThreshold int           `mapstructure:"breaker_threshold"`
	BreakerCooldown  time.Duration `mapstructure:"breaker_cooldown"`
	ResultTTL        time.Duration `mapstructure:"result_ttl"`
}

// RedisConfig is optional; an empty URL keeps scores in memory.
type RedisConfig struct {
	URL          string        `mapstructure:"url"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// KafkaConfig is optional; no brokers keeps the audit trail in memory.
type KafkaConfig struct {
	Brokers     []string `mapstructure:"brokers"`
	Topic       string   `mapstructure:"topic"`
	CreateTopic bool     `mapstructure:"create_topic"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Defaults returns the built-in configuration values keyed by viper path.
func Defaults() map[string]any {
	return map[string]any{
		"policy.income_floor":       "65000",
		"policy.minimum_score":      300,
		"identity.mode":             IdentityDirect,
		"identity.url":              "",
		"identity.api_key":          "",
		"identity.timeout":          5 * time.Second,
		"scoring.mode":              ScoringTable,
		"scoring.url":               "",
		"scoring.api_key":           "",
		"scoring.timeout":           5 * time.Second,
		"scoring.rate_limit":        10.0,
		"scoring.burst":             5,
		"scoring.breaker_threshold": 5,
		"scoring.breaker_cooldown":  30 * time.Second,
		"scoring.result_ttl":        15 * time.Minute,
		"redis.url":                 "",
		"redis.pool_size":           10,
		"redis.min_idle_conns":      2,
		"redis.dial_timeout":        5 * time.Second,
		"redis.read_timeout":        3 * time.Second,
		"redis.write_timeout":       3 * time.Second,
		"kafka.brokers":             []string{},
		"kafka.topic":               "loan-decisions",
		"kafka.create_topic":        false,
		"log.level":                 "info",
		"log.format":                "text",
		"concurrency":               4,
	}
}

// flagKeys maps command flag names to configuration keys.
var flagKeys = map[string]string{
	"concurrency":   "concurrency",
	"log-level":     "log.level",
	"log-format":    "log.format",
	"identity-mode": "identity.mode",
	"scoring-mode":  "scoring.mode",
	"redis-url":     "redis.url",
	"kafka-brokers": "kafka.brokers",
}

// Load builds a Config. file may be empty; cmd may be nil.
func Load(cmd *cobra.Command, file string) (Config, error) {
	var c Config
	v := viper.New()

	for key, value := range Defaults() {
		v.SetDefault(key, value)
	}

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return c, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cmd != nil {
		for name, key := range flagKeys {
			if f := cmd.Flags().Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return c, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("decode config: %w", err)
	}
	c.Kafka.Brokers = strs.DedupeAndTrim(c.Kafka.Brokers)
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

// Validate reports every problem found, joined.
func (c Config) Validate() error {
	var errs []error

	if floor, err := c.Policy.IncomeFloorDecimal(); err != nil {
		errs = append(errs, err)
	} else if floor.IsNegative() {
		errs = append(errs, errors.New("policy.income_floor must not be negative"))
	}
	if c.Policy.MinimumScore < 0 {
		errs = append(errs, errors.New("policy.minimum_score must not be negative"))
	}

	switch c.Identity.Mode {
	case IdentityDirect:
	case IdentityHTTP:
		if c.Identity.URL == "" {
			errs = append(errs, errors.New("identity.url is required in http mode"))
		}
	default:
		errs = append(errs, fmt.Errorf("identity.mode %q is not one of %s, %s", c.Identity.Mode, IdentityDirect, IdentityHTTP))
	}

	switch c.Scoring.Mode {
	case ScoringTable:
	case ScoringHTTP:
		if c.Scoring.URL == "" {
			errs = append(errs, errors.New("scoring.url is required in http mode"))
		}
	default:
		errs = append(errs, fmt.Errorf("scoring.mode %q is not one of %s, %s", c.Scoring.Mode, ScoringTable, ScoringHTTP))
	}

	if len(c.Kafka.Brokers) > 0 && c.Kafka.Topic == "" {
		errs = append(errs, errors.New("kafka.topic is required when brokers are set"))
	}
	if c.Concurrency < 1 {
		errs = append(errs, errors.New("concurrency must be at least 1"))
	}
	return errors.Join(errs...)
}
