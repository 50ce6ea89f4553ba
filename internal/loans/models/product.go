package models

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var ErrInvalidProduct = errors.New("invalid loan product")

// LoanProduct describes the terms an application is made against.
// Invariant: id >= 0 and name is non-empty.
type LoanProduct struct {
	id           int
	name         string
	interestRate decimal.Decimal
}

func NewLoanProduct(id int, name string, interestRate decimal.Decimal) (LoanProduct, error) {
	if id < 0 {
		return LoanProduct{}, fmt.Errorf("%w: id %d is negative", ErrInvalidProduct, id)
	}
	if name == "" {
		return LoanProduct{}, fmt.Errorf("%w: name is required", ErrInvalidProduct)
	}
	return LoanProduct{id: id, name: name, interestRate: interestRate}, nil
}

// MustLoanProduct panics on invalid input.
func MustLoanProduct(id int, name string, interestRate decimal.Decimal) LoanProduct {
	p, err := NewLoanProduct(id, name, interestRate)
	if err != nil {
		panic(err)
	}
	return p
}

func (p LoanProduct) ID() int                       { return p.id }
func (p LoanProduct) Name() string                  { return p.name }
func (p LoanProduct) InterestRate() decimal.Decimal { return p.interestRate }
