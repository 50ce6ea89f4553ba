package models

import "time"

// IdentityVerificationStatus wraps the outcome of an identity check.
type IdentityVerificationStatus struct {
	Passed bool
}

// CreditScoreResult is the last score computed by a credit scorer.
// Scores follow the usual 300-850 bureau range but are not clamped here.
type CreditScoreResult struct {
	Score        int       `json:"score"`
	CalculatedAt time.Time `json:"calculated_at"`
}
