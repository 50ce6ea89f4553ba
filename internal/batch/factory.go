package batch

import (
	"fmt"
	"log/slog"

	"loans/internal/credit"
	"loans/internal/identity"
	"loans/internal/loans/models"
	"loans/internal/loans/ports"
	"loans/internal/platform/config"
	"loans/pkg/platform/circuit"
)

// Backends holds the shared pieces per-application collaborators are built
// from. All of them are safe for concurrent use.
type Backends struct {
	Results credit.ResultStore
	Breaker *circuit.Breaker
	Metrics *credit.Metrics
	Logger  *slog.Logger
}

// NewFactory returns a Factory for the configured identity and scoring modes.
// Offline modes are seeded from registry.
func NewFactory(cfg config.Config, registry Registry, backends Backends) (Factory, error) {
	if backends.Logger == nil {
		backends.Logger = slog.New(slog.DiscardHandler)
	}

	newVerifier, err := verifierBuilder(cfg.Identity, registry, backends.Logger)
	if err != nil {
		return nil, err
	}
	engine, err := scoringEngine(cfg.Scoring, registry, backends.Metrics)
	if err != nil {
		return nil, err
	}

	scorerOpts := []credit.Option{
		credit.WithLogger(backends.Logger),
		credit.WithMetrics(backends.Metrics),
	}
	if backends.Results != nil {
		scorerOpts = append(scorerOpts, credit.WithResultStore(backends.Results))
	}
	if backends.Breaker != nil {
		scorerOpts = append(scorerOpts, credit.WithBreaker(backends.Breaker))
	}

	return func(*models.LoanApplication) (Collaborators, error) {
		scorer, err := credit.NewScorer(engine, scorerOpts...)
		if err != nil {
			return Collaborators{}, err
		}
		verifier, err := newVerifier()
		if err != nil {
			return Collaborators{}, err
		}
		return Collaborators{Verifier: verifier, Scorer: scorer}, nil
	}, nil
}

func verifierBuilder(cfg config.IdentityConfig, registry Registry, logger *slog.Logger) (func() (ports.IdentityVerifier, error), error) {
	switch cfg.Mode {
	case config.IdentityDirect:
		records := registry.Records()
		return func() (ports.IdentityVerifier, error) {
			return identity.NewDirectVerifier(records...), nil
		}, nil
	case config.IdentityHTTP:
		return func() (ports.IdentityVerifier, error) {
			transport := identity.NewHTTPTransport(cfg.URL, cfg.APIKey, cfg.Timeout)
			return identity.NewGateway(transport, identity.WithLogger(logger))
		}, nil
	default:
		return nil, fmt.Errorf("unknown identity mode %q", cfg.Mode)
	}
}

func scoringEngine(cfg config.ScoringConfig, registry Registry, metrics *credit.Metrics) (credit.Engine, error) {
	switch cfg.Mode {
	case config.ScoringTable:
		table := credit.NewTableEngine()
		for _, s := range registry.Scores {
			table.Set(s.Name, s.Address, s.Score)
		}
		return table, nil
	case config.ScoringHTTP:
		return credit.NewHTTPEngine(cfg.URL, cfg.APIKey, cfg.Timeout,
			credit.WithRateLimit(cfg.RateLimit, cfg.Burst),
			credit.WithEngineMetrics(metrics),
		), nil
	default:
		return nil, fmt.Errorf("unknown scoring mode %q", cfg.Mode)
	}
}
