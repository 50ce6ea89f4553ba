package testutil

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"loans/internal/loans/models"
)

// Applicant fixture values shared across tests.
const (
	ApplicantName    = "Sarah"
	ApplicantAge     = 25
	ApplicantAddress = "133 Pluralsight Drive, Draper, Utah"
)

// NewApplication builds a USD 200,000 application for the standard applicant
// declaring the given income.
func NewApplication(t *testing.T, income int64) *models.LoanApplication {
	t.Helper()

	product := models.MustLoanProduct(99, "Loan", decimal.RequireFromString("5.25"))
	amount := models.MustLoanAmount("USD", decimal.NewFromInt(200_000))
	app, err := models.NewLoanApplication(42, product, amount, models.Applicant{
		Name:    ApplicantName,
		Age:     ApplicantAge,
		Address: ApplicantAddress,
		Income:  decimal.NewFromInt(income),
	})
	require.NoError(t, err)
	return app
}
