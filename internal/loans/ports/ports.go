// Package ports defines the capabilities the loan processor consumes.
// Adapters for real services and test doubles both implement these; the
// processor never depends on a concrete verifier or scorer.
package ports

//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"loans/internal/loans/models"
	"loans/pkg/platform/audit"
)

// IdentityVerifier confirms that an applicant's claimed identity is genuine.
type IdentityVerifier interface {
	// Initialize prepares the verifier for use, e.g. opening a session with
	// the backing registry. Errors are infrastructure failures.
	Initialize(ctx context.Context) error

	// Validate reports whether the identity attributes are authentic.
	// Attributes are passed exactly as declared by the applicant.
	Validate(ctx context.Context, name string, age int, address string) (bool, error)
}

// CreditScorer computes a credit score and keeps it for later reads.
type CreditScorer interface {
	// CalculateScore triggers scoring for the applicant and stores the result
	// inside the scorer. Errors mean the scoring service is unavailable.
	CalculateScore(ctx context.Context, name, address string) error

	// ScoreResult returns the most recently computed score. Every successful
	// read increments the consultation count by one.
	ScoreResult(ctx context.Context) (models.CreditScoreResult, error)

	// ConsultationCount reports how many times the score has been read.
	ConsultationCount() int
}

// AuditPublisher emits audit events for decisions.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}
