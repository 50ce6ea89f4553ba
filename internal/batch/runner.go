package batch

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"loans/internal/loans/models"
	"loans/internal/loans/ports"
	"loans/internal/loans/processor"
)

// Collaborators are the per-application verifier and scorer.
type Collaborators struct {
	Verifier ports.IdentityVerifier
	Scorer   ports.CreditScorer
}

// Factory builds fresh collaborators for one application.
type Factory func(app *models.LoanApplication) (Collaborators, error)

// Result is the outcome for one application. Err is set when the application
// could not be decided; Decision then records where it stopped.
type Result struct {
	ApplicationID int
	Decision      models.Decision
	Consultations int
	Err           error
}

type Runner struct {
	factory     Factory
	concurrency int
	procOpts    []processor.Option
	logger      *slog.Logger
}

type Option func(*Runner)

// WithConcurrency bounds how many applications are processed at once.
func WithConcurrency(n int) Option {
	return func(r *Runner) {
		r.concurrency = n
	}
}

// WithProcessorOptions passes options to every processor the runner builds.
// Anything passed here is shared across goroutines.
func WithProcessorOptions(opts ...processor.Option) Option {
	return func(r *Runner) {
		r.procOpts = append(r.procOpts, opts...)
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

func NewRunner(factory Factory, opts ...Option) (*Runner, error) {
	if factory == nil {
		return nil, fmt.Errorf("collaborator factory is required")
	}
	r := &Runner{
		factory:     factory,
		concurrency: 1,
		logger:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.concurrency < 1 {
		return nil, fmt.Errorf("concurrency must be at least 1, got %d", r.concurrency)
	}
	return r, nil
}

// Run decides every application and returns results in input order. A
// failure on one application never stops the others; Run itself fails only
// when ctx is cancelled, and applications it never started then carry a
// "not processed" Err.
func (r *Runner) Run(ctx context.Context, apps []*models.LoanApplication) ([]Result, error) {
	results := make([]Result, len(apps))
	for i, app := range apps {
		results[i] = Result{ApplicationID: app.ID()}
	}

	var g errgroup.Group
	g.SetLimit(r.concurrency)
	scheduled := 0
	for i, app := range apps {
		if ctx.Err() != nil {
			break
		}
		scheduled++
		g.Go(func() error {
			results[i] = r.decide(ctx, app)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		for i := range results[scheduled:] {
			results[scheduled+i].Err = fmt.Errorf("not processed: %w", err)
		}
		return results, fmt.Errorf("batch interrupted: %w", err)
	}
	return results, nil
}

func (r *Runner) decide(ctx context.Context, app *models.LoanApplication) Result {
	res := Result{ApplicationID: app.ID()}

	collab, err := r.factory(app)
	if err != nil {
		res.Err = fmt.Errorf("build collaborators: %w", err)
		return res
	}
	proc, err := processor.New(collab.Verifier, collab.Scorer, r.procOpts...)
	if err != nil {
		res.Err = fmt.Errorf("build processor: %w", err)
		return res
	}

	if err := proc.Process(ctx, app); err != nil {
		r.logger.ErrorContext(ctx, "application could not be decided",
			"application_id", app.ID(),
			"error", err,
		)
		res.Err = err
	}
	res.Decision = app.Decision()
	res.Consultations = collab.Scorer.ConsultationCount()
	return res
}
