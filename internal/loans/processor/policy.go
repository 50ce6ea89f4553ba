package processor

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Default product rules.
const (
	DefaultIncomeFloor  = 65_000
	DefaultMinimumScore = 300
)

// Policy holds the acceptance thresholds the processor applies.
type Policy struct {
	// IncomeFloor is compared against the declared income in the
	// application's own currency units; no conversion is performed.
	IncomeFloor decimal.Decimal
	// MinimumScore is the lowest accepted credit score (inclusive).
	MinimumScore int
}

func DefaultPolicy() Policy {
	return Policy{
		IncomeFloor:  decimal.NewFromInt(DefaultIncomeFloor),
		MinimumScore: DefaultMinimumScore,
	}
}

func (p Policy) Validate() error {
	if p.IncomeFloor.IsNegative() {
		return fmt.Errorf("income floor must not be negative")
	}
	if p.MinimumScore < 0 {
		return fmt.Errorf("minimum score must not be negative")
	}
	return nil
}

// MeetsIncomeFloor is the decline-fast eligibility rule. Pure domain logic.
func MeetsIncomeFloor(income, floor decimal.Decimal) bool {
	return income.GreaterThanOrEqual(floor)
}

// MeetsScoreThreshold applies the inclusive minimum score rule.
func MeetsScoreThreshold(score, minimum int) bool {
	return score >= minimum
}

// phase names a collaborator call made during Process.
type phase string

const (
	phaseIdentityInitialize phase = "identity_initialize"
	phaseIdentityValidate   phase = "identity_validate"
	phaseScoreCalculate     phase = "score_calculate"
	phaseScoreRead          phase = "score_read"
)

type failureAction int

const (
	// failurePropagate returns the collaborator error to the caller unmodified.
	failurePropagate failureAction = iota
	// failureDecline converts the error into a declined application.
	failureDecline
)

// failurePolicy decides what a collaborator error means for each phase.
// Identity infrastructure failures are fatal to the caller; scoring failures
// are an expected outage mode and decline the application. Phases missing
// from the table propagate.
var failurePolicy = map[phase]failureAction{
	phaseIdentityInitialize: failurePropagate,
	phaseIdentityValidate:   failurePropagate,
	phaseScoreCalculate:     failureDecline,
	phaseScoreRead:          failureDecline,
}
