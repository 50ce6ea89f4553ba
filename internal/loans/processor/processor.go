// Package processor implements the loan application decision workflow.
//
// Process runs strictly in order: income floor, identity verification, credit
// scoring, score threshold. Each call re-evaluates from scratch and writes the
// outcome into the application it was given.
package processor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"loans/internal/loans/metrics"
	"loans/internal/loans/models"
	"loans/internal/loans/ports"
	"loans/pkg/platform/audit"
)

const tracerName = "loans/internal/loans/processor"

// Processor is the loan decision engine. It holds no per-application state,
// but the scorer it wraps does: do not share one Processor (or its
// collaborators) between goroutines processing different applications.
type Processor struct {
	verifier ports.IdentityVerifier
	scorer   ports.CreditScorer
	policy   Policy

	auditPublisher ports.AuditPublisher
	logger         *slog.Logger
	metrics        *metrics.Metrics
	tracer         trace.Tracer
	now            func() time.Time
}

type Option func(*Processor)

func WithPolicy(policy Policy) Option {
	return func(p *Processor) {
		p.policy = policy
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *Processor) {
		p.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Processor) {
		p.metrics = m
	}
}

func WithAuditPublisher(publisher ports.AuditPublisher) Option {
	return func(p *Processor) {
		p.auditPublisher = publisher
	}
}

func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(p *Processor) {
		p.tracer = tp.Tracer(tracerName)
	}
}

func WithClock(now func() time.Time) Option {
	return func(p *Processor) {
		p.now = now
	}
}

func New(verifier ports.IdentityVerifier, scorer ports.CreditScorer, opts ...Option) (*Processor, error) {
	if verifier == nil {
		return nil, fmt.Errorf("identity verifier is required")
	}
	if scorer == nil {
		return nil, fmt.Errorf("credit scorer is required")
	}

	p := &Processor{
		verifier: verifier,
		scorer:   scorer,
		policy:   DefaultPolicy(),
		logger:   slog.New(slog.DiscardHandler),
		tracer:   otel.Tracer(tracerName),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}

	if err := p.policy.Validate(); err != nil {
		return nil, fmt.Errorf("invalid policy: %w", err)
	}
	return p, nil
}

// evaluation carries the per-call context shared by the steps of one Process.
type evaluation struct {
	app           *models.LoanApplication
	correlationID string
	logger        *slog.Logger
	span          trace.Span
}

// Process decides app and records the outcome on it.
//
// A nil error means the application was decided; IsAccepted holds the result.
// Failures of the identity verifier are returned unmodified and leave the
// application not accepted. Credit scoring failures decline the application
// and are not returned.
func (p *Processor) Process(ctx context.Context, app *models.LoanApplication) error {
	if app == nil {
		return fmt.Errorf("loan application is required")
	}

	start := time.Now()
	defer func() { p.metrics.ObserveProcessLatency(time.Since(start)) }()

	correlationID := uuid.NewString()
	ctx, span := p.tracer.Start(ctx, "loans.Process", trace.WithAttributes(
		attribute.Int("loan.application_id", app.ID()),
		attribute.String("loan.correlation_id", correlationID),
	))
	defer span.End()

	ev := &evaluation{
		app:           app,
		correlationID: correlationID,
		logger: p.logger.With(
			"application_id", app.ID(),
			"correlation_id", correlationID,
		),
		span: span,
	}

	app.Reset()

	// Rule 1: income floor (decline fast, no collaborator calls)
	if !MeetsIncomeFloor(app.ApplicantIncome(), p.policy.IncomeFloor) {
		p.decline(ctx, ev, models.ReasonIncomeBelowFloor)
		return nil
	}
	p.advance(ev, models.StageIncomeChecked)

	// Rule 2: identity must verify
	valid, ph, err := p.verifyIdentity(ctx, app)
	if err != nil {
		return p.handleFailure(ctx, ev, ph, err)
	}
	if !valid {
		p.decline(ctx, ev, models.ReasonIdentityNotVerified)
		return nil
	}
	p.advance(ev, models.StageIdentityChecked)

	// Rule 3: a score must be obtainable
	result, ph, err := p.score(ctx, app)
	if err != nil {
		return p.handleFailure(ctx, ev, ph, err)
	}
	app.RecordScore(result.Score)
	span.SetAttributes(attribute.Int("loan.credit_score", result.Score))
	p.advance(ev, models.StageScored)

	// Rule 4: score threshold
	if !MeetsScoreThreshold(result.Score, p.policy.MinimumScore) {
		p.decline(ctx, ev, models.ReasonScoreBelowThreshold)
		return nil
	}
	p.accept(ctx, ev)
	return nil
}

func (p *Processor) verifyIdentity(ctx context.Context, app *models.LoanApplication) (bool, phase, error) {
	start := time.Now()
	err := p.verifier.Initialize(ctx)
	p.metrics.ObservePhaseLatency(string(phaseIdentityInitialize), time.Since(start))
	if err != nil {
		return false, phaseIdentityInitialize, err
	}

	start = time.Now()
	valid, err := p.verifier.Validate(ctx, app.ApplicantName(), app.ApplicantAge(), app.ApplicantAddress())
	p.metrics.ObservePhaseLatency(string(phaseIdentityValidate), time.Since(start))
	if err != nil {
		return false, phaseIdentityValidate, err
	}
	return valid, "", nil
}

func (p *Processor) score(ctx context.Context, app *models.LoanApplication) (models.CreditScoreResult, phase, error) {
	start := time.Now()
	err := p.scorer.CalculateScore(ctx, app.ApplicantName(), app.ApplicantAddress())
	p.metrics.ObservePhaseLatency(string(phaseScoreCalculate), time.Since(start))
	if err != nil {
		return models.CreditScoreResult{}, phaseScoreCalculate, err
	}

	start = time.Now()
	result, err := p.scorer.ScoreResult(ctx)
	p.metrics.ObservePhaseLatency(string(phaseScoreRead), time.Since(start))
	if err != nil {
		return models.CreditScoreResult{}, phaseScoreRead, err
	}
	return result, "", nil
}

// handleFailure applies failurePolicy to a collaborator error.
func (p *Processor) handleFailure(ctx context.Context, ev *evaluation, ph phase, err error) error {
	ev.span.RecordError(err, trace.WithAttributes(attribute.String("loan.phase", string(ph))))

	switch failurePolicy[ph] {
	case failureDecline:
		p.metrics.IncrementScoringFailure()
		ev.logger.WarnContext(ctx, "credit scoring failed, declining application",
			"phase", ph,
			"error", err,
		)
		p.emit(ctx, ev, audit.EventScoringUnavailable, "", models.ReasonScoringUnavailable)
		p.decline(ctx, ev, models.ReasonScoringUnavailable)
		return nil
	default:
		ev.app.Abort(models.ReasonIdentityFailure)
		p.metrics.IncrementIdentityFailure()
		ev.span.SetStatus(codes.Error, "identity verification failed")
		ev.logger.ErrorContext(ctx, "identity verification failed",
			"phase", ph,
			"error", err,
		)
		p.emit(ctx, ev, audit.EventIdentityFailure, "", models.ReasonIdentityFailure)
		return err
	}
}

func (p *Processor) advance(ev *evaluation, stage models.Stage) {
	ev.app.Advance(stage)
	ev.span.AddEvent("stage", trace.WithAttributes(attribute.String("loan.stage", string(stage))))
}

func (p *Processor) accept(ctx context.Context, ev *evaluation) {
	ev.app.Accept(p.now())
	p.finish(ctx, ev, "accepted", models.ReasonAllChecksPassed)
}

func (p *Processor) decline(ctx context.Context, ev *evaluation, reason models.Reason) {
	ev.app.Decline(reason, p.now())
	p.finish(ctx, ev, "declined", reason)
}

func (p *Processor) finish(ctx context.Context, ev *evaluation, decision string, reason models.Reason) {
	p.advance(ev, models.StageDecided)
	ev.span.SetAttributes(
		attribute.String("loan.decision", decision),
		attribute.String("loan.reason", string(reason)),
	)
	p.metrics.IncrementOutcome(decision, string(reason))
	ev.logger.InfoContext(ctx, "loan application decided",
		"decision", decision,
		"reason", reason,
	)
	p.emit(ctx, ev, audit.EventLoanDecisionMade, decision, reason)
}

// emit publishes an audit event. Audit failures are logged and never change
// the decision.
func (p *Processor) emit(ctx context.Context, ev *evaluation, action audit.AuditEvent, decision string, reason models.Reason) {
	if p.auditPublisher == nil {
		return
	}
	event := audit.NewEvent(action, ev.app.ID(), p.now())
	event.Decision = decision
	event.Reason = string(reason)
	event.Stage = string(ev.app.Decision().Stage)
	event.CorrelationID = ev.correlationID

	if err := p.auditPublisher.Emit(ctx, event); err != nil {
		ev.logger.ErrorContext(ctx, "failed to emit audit event",
			"action", action,
			"error", err,
		)
	}
}
