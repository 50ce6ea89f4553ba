package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var ErrInvalidApplication = errors.New("invalid loan application")

// Stage is how far a single Process call got. Stages only move forward within
// one call; a new call starts again at StagePending.
type Stage string

const (
	StagePending         Stage = "pending"
	StageIncomeChecked   Stage = "income_checked"
	StageIdentityChecked Stage = "identity_checked"
	StageScored          Stage = "scored"
	StageDecided         Stage = "decided"
)

// Reason explains the recorded decision.
type Reason string

const (
	ReasonNone                Reason = ""
	ReasonIncomeBelowFloor    Reason = "income_below_floor"
	ReasonIdentityNotVerified Reason = "identity_not_verified"
	ReasonIdentityFailure     Reason = "identity_service_failure"
	ReasonScoringUnavailable  Reason = "scoring_unavailable"
	ReasonScoreBelowThreshold Reason = "score_below_threshold"
	ReasonAllChecksPassed     Reason = "all_checks_passed"
)

// Decision is the outcome of the most recent Process call.
type Decision struct {
	Accepted    bool
	Reason      Reason
	Stage       Stage
	Score       *int // set only when the score was read
	EvaluatedAt time.Time
}

// LoanApplication is one applicant submission. The caller owns it; the
// processor writes its decision in place and never stores it.
type LoanApplication struct {
	id               int
	product          LoanProduct
	amount           LoanAmount
	applicantName    string
	applicantAge     int
	applicantAddress string
	applicantIncome  decimal.Decimal

	decision Decision
}

// Applicant carries the declared applicant attributes.
type Applicant struct {
	Name    string
	Age     int
	Address string
	Income  decimal.Decimal
}

// NewLoanApplication validates applicant data. The application starts
// undecided and not accepted.
func NewLoanApplication(id int, product LoanProduct, amount LoanAmount, applicant Applicant) (*LoanApplication, error) {
	if applicant.Name == "" {
		return nil, fmt.Errorf("%w: applicant name is required", ErrInvalidApplication)
	}
	if applicant.Age <= 0 {
		return nil, fmt.Errorf("%w: applicant age must be positive, got %d", ErrInvalidApplication, applicant.Age)
	}
	if applicant.Address == "" {
		return nil, fmt.Errorf("%w: applicant address is required", ErrInvalidApplication)
	}
	if applicant.Income.IsNegative() {
		return nil, fmt.Errorf("%w: applicant income must not be negative", ErrInvalidApplication)
	}
	if product.Name() == "" {
		return nil, fmt.Errorf("%w: product is required", ErrInvalidApplication)
	}
	if amount.CurrencyCode() == "" {
		return nil, fmt.Errorf("%w: amount is required", ErrInvalidApplication)
	}

	return &LoanApplication{
		id:               id,
		product:          product,
		amount:           amount,
		applicantName:    applicant.Name,
		applicantAge:     applicant.Age,
		applicantAddress: applicant.Address,
		applicantIncome:  applicant.Income,
		decision:         Decision{Stage: StagePending},
	}, nil
}

func (a *LoanApplication) ID() int                          { return a.id }
func (a *LoanApplication) Product() LoanProduct             { return a.product }
func (a *LoanApplication) Amount() LoanAmount               { return a.amount }
func (a *LoanApplication) ApplicantName() string            { return a.applicantName }
func (a *LoanApplication) ApplicantAge() int                { return a.applicantAge }
func (a *LoanApplication) ApplicantAddress() string         { return a.applicantAddress }
func (a *LoanApplication) ApplicantIncome() decimal.Decimal { return a.applicantIncome }

// IsAccepted reports the outcome of the last completed Process call.
func (a *LoanApplication) IsAccepted() bool { return a.decision.Accepted }

// Decision returns a copy of the last recorded decision.
func (a *LoanApplication) Decision() Decision {
	d := a.decision
	if d.Score != nil {
		score := *d.Score
		d.Score = &score
	}
	return d
}

// Reset clears any previous decision so a new evaluation starts from
// StagePending. Called at the start of every Process.
func (a *LoanApplication) Reset() {
	a.decision = Decision{Stage: StagePending}
}

// Advance records that evaluation reached stage. Moving backwards is ignored.
func (a *LoanApplication) Advance(stage Stage) {
	if stageOrder[stage] > stageOrder[a.decision.Stage] {
		a.decision.Stage = stage
	}
}

// RecordScore keeps the score that was read during evaluation.
func (a *LoanApplication) RecordScore(score int) {
	a.decision.Score = &score
}

// Accept marks the application accepted and decided.
func (a *LoanApplication) Accept(at time.Time) {
	a.decide(true, ReasonAllChecksPassed, at)
}

// Decline marks the application declined and decided.
func (a *LoanApplication) Decline(reason Reason, at time.Time) {
	a.decide(false, reason, at)
}

// Abort records that evaluation stopped on an infrastructure failure. The
// application stays declined and the stage is left where evaluation stopped.
func (a *LoanApplication) Abort(reason Reason) {
	a.decision.Accepted = false
	a.decision.Reason = reason
}

func (a *LoanApplication) decide(accepted bool, reason Reason, at time.Time) {
	a.decision.Accepted = accepted
	a.decision.Reason = reason
	a.decision.Stage = StageDecided
	a.decision.EvaluatedAt = at
}

var stageOrder = map[Stage]int{
	StagePending:         0,
	StageIncomeChecked:   1,
	StageIdentityChecked: 2,
	StageScored:          3,
	StageDecided:         4,
}
