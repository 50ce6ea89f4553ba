// Package credit provides the credit scoring capability: a Scorer that
// triggers computation on an Engine and keeps the last result in a
// ResultStore for the processor to read back.
package credit

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"loans/internal/loans/models"
	"loans/internal/loans/ports"
	"loans/pkg/platform/circuit"
	"loans/pkg/platform/sentinel"
)

var _ ports.CreditScorer = (*Scorer)(nil)

// Engine computes a credit score for an applicant.
type Engine interface {
	Compute(ctx context.Context, name, address string) (int, error)
}

// EngineFunc adapts a function to an Engine.
type EngineFunc func(ctx context.Context, name, address string) (int, error)

func (f EngineFunc) Compute(ctx context.Context, name, address string) (int, error) {
	return f(ctx, name, address)
}

// ResultStore holds computed results under a per-scorer key.
// Load returns sentinel.ErrNotFound when nothing was saved under key.
type ResultStore interface {
	Save(ctx context.Context, key string, result models.CreditScoreResult) error
	Load(ctx context.Context, key string) (models.CreditScoreResult, error)
}

// Scorer implements ports.CreditScorer. One Scorer belongs to one
// application at a time.
type Scorer struct {
	engine  Engine
	store   ResultStore
	key     string
	breaker *circuit.Breaker
	metrics *Metrics
	logger  *slog.Logger
	now     func() time.Time

	consultations atomic.Int64
}

type Option func(*Scorer)

func WithResultStore(store ResultStore) Option {
	return func(s *Scorer) {
		s.store = store
	}
}

// WithKey fixes the key results are stored under. By default every Scorer
// gets a random key.
func WithKey(key string) Option {
	return func(s *Scorer) {
		s.key = key
	}
}

// WithBreaker fails CalculateScore fast while b is open. A breaker may be
// shared by every Scorer that talks to the same engine.
func WithBreaker(b *circuit.Breaker) Option {
	return func(s *Scorer) {
		s.breaker = b
	}
}

func WithMetrics(m *Metrics) Option {
	return func(s *Scorer) {
		s.metrics = m
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Scorer) {
		s.logger = logger
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Scorer) {
		s.now = now
	}
}

func NewScorer(engine Engine, opts ...Option) (*Scorer, error) {
	if engine == nil {
		return nil, fmt.Errorf("scoring engine is required")
	}
	s := &Scorer{
		engine: engine,
		key:    uuid.NewString(),
		logger: slog.New(slog.DiscardHandler),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.store == nil {
		s.store = NewMemoryStore()
	}
	if s.key == "" {
		return nil, fmt.Errorf("result key must not be empty")
	}
	return s, nil
}

// Key returns the key this scorer stores its results under.
func (s *Scorer) Key() string { return s.key }

// CalculateScore computes a score and stores it for ScoreResult. While the
// breaker is open it fails with sentinel.ErrUnavailable without calling the
// engine.
func (s *Scorer) CalculateScore(ctx context.Context, name, address string) error {
	if s.breaker != nil && !s.breaker.Allow() {
		s.metrics.IncrementRejected()
		return fmt.Errorf("credit scoring circuit open: %w", sentinel.ErrUnavailable)
	}

	score, err := s.engine.Compute(ctx, name, address)
	if err != nil {
		s.recordFailure(ctx)
		s.logger.WarnContext(ctx, "credit score computation failed", "error", err)
		return fmt.Errorf("calculate score: %w", err)
	}
	s.recordSuccess(ctx)

	result := models.CreditScoreResult{Score: score, CalculatedAt: s.now()}
	if err := s.store.Save(ctx, s.key, result); err != nil {
		return fmt.Errorf("store score: %w", err)
	}
	return nil
}

// ScoreResult reads the last computed score. Every successful read counts
// as one consultation.
func (s *Scorer) ScoreResult(ctx context.Context) (models.CreditScoreResult, error) {
	result, err := s.store.Load(ctx, s.key)
	if err != nil {
		return models.CreditScoreResult{}, fmt.Errorf("read score: %w", err)
	}
	s.consultations.Add(1)
	return result, nil
}

func (s *Scorer) ConsultationCount() int {
	return int(s.consultations.Load())
}

func (s *Scorer) recordFailure(ctx context.Context) {
	s.metrics.IncrementEngineFailure()
	if s.breaker == nil {
		return
	}
	if _, change := s.breaker.RecordFailure(); change.Opened {
		s.logger.WarnContext(ctx, "credit scoring circuit opened", "breaker", s.breaker.Name())
	}
	s.metrics.SetBreakerOpen(s.breaker.IsOpen())
}

func (s *Scorer) recordSuccess(ctx context.Context) {
	if s.breaker == nil {
		return
	}
	if _, change := s.breaker.RecordSuccess(); change.Closed {
		s.logger.InfoContext(ctx, "credit scoring circuit closed", "breaker", s.breaker.Name())
	}
	s.metrics.SetBreakerOpen(s.breaker.IsOpen())
}
