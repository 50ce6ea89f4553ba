package models

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

var (
	ErrInvalidCurrency = errors.New("invalid currency code")
	ErrNegativeAmount  = errors.New("amount must not be negative")
)

// LoanAmount is the requested principal in a given currency.
// Invariant: currency code is a known ISO-4217 code and amount >= 0.
//
// Usage: construct via NewLoanAmount; the zero value is not a valid amount.
type LoanAmount struct {
	currencyCode string
	amount       decimal.Decimal
}

// NewLoanAmount validates the currency code and amount.
func NewLoanAmount(currencyCode string, amount decimal.Decimal) (LoanAmount, error) {
	if currencyCode == "" {
		return LoanAmount{}, fmt.Errorf("%w: empty", ErrInvalidCurrency)
	}
	unit, err := currency.ParseISO(currencyCode)
	if err != nil {
		return LoanAmount{}, fmt.Errorf("%w: %q", ErrInvalidCurrency, currencyCode)
	}
	if amount.IsNegative() {
		return LoanAmount{}, fmt.Errorf("%w: %s", ErrNegativeAmount, amount)
	}
	return LoanAmount{currencyCode: unit.String(), amount: amount}, nil
}

// MustLoanAmount is NewLoanAmount for fixtures and constants; it panics on invalid input.
func MustLoanAmount(currencyCode string, amount decimal.Decimal) LoanAmount {
	a, err := NewLoanAmount(currencyCode, amount)
	if err != nil {
		panic(err)
	}
	return a
}

func (a LoanAmount) CurrencyCode() string    { return a.currencyCode }
func (a LoanAmount) Amount() decimal.Decimal { return a.amount }

func (a LoanAmount) String() string {
	return a.amount.StringFixed(2) + " " + a.currencyCode
}
