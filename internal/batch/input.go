// Package batch decides a file of loan applications concurrently, giving
// every application its own identity verifier and credit scorer.
package batch

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"loans/internal/identity"
	"loans/internal/loans/models"
)

// Input is the contents of an applications file.
//
//	registry:
//	  identities: [{name, age, address}]
//	  scores: [{name, address, score}]
//	applications:
//	  - id: 1
//	    product: {id, name, interest_rate}
//	    amount: {currency, value}
//	    applicant: {name, age, address, income}
type Input struct {
	Registry     Registry          `yaml:"registry"`
	Applications []ApplicationSpec `yaml:"applications"`
}

// Registry seeds the offline identity and scoring backends.
type Registry struct {
	Identities []IdentitySpec `yaml:"identities"`
	Scores     []ScoreSpec    `yaml:"scores"`
}

type IdentitySpec struct {
	Name    string `yaml:"name"`
	Age     int    `yaml:"age"`
	Address string `yaml:"address"`
}

type ScoreSpec struct {
	Name    string `yaml:"name"`
	Address string `yaml:"address"`
	Score   int    `yaml:"score"`
}

type ApplicationSpec struct {
	ID      int `yaml:"id"`
	Product struct {
		ID           int    `yaml:"id"`
		Name         string `yaml:"name"`
		InterestRate string `yaml:"interest_rate"`
	} `yaml:"product"`
	Amount struct {
		Currency string `yaml:"currency"`
		Value    string `yaml:"value"`
	} `yaml:"amount"`
	Applicant struct {
		Name    string `yaml:"name"`
		Age     int    `yaml:"age"`
		Address string `yaml:"address"`
		Income  string `yaml:"income"`
	} `yaml:"applicant"`
}

// Records converts the identity registry for identity.NewDirectVerifier.
func (r Registry) Records() []identity.Record {
	records := make([]identity.Record, 0, len(r.Identities))
	for _, id := range r.Identities {
		records = append(records, identity.Record{Name: id.Name, Age: id.Age, Address: id.Address})
	}
	return records
}

// LoadFile reads one applications file.
func LoadFile(path string) (*Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	in, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return in, nil
}

// Decode parses an applications document, rejecting unknown fields.
func Decode(r io.Reader) (*Input, error) {
	var in Input
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&in); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode applications: %w", err)
	}
	return &in, nil
}

// Merge appends other into in.
func (in *Input) Merge(other *Input) {
	in.Registry.Identities = append(in.Registry.Identities, other.Registry.Identities...)
	in.Registry.Scores = append(in.Registry.Scores, other.Registry.Scores...)
	in.Applications = append(in.Applications, other.Applications...)
}

// Build validates the entry and constructs the application.
func (s ApplicationSpec) Build() (*models.LoanApplication, error) {
	rate, err := parseDecimal("product.interest_rate", s.Product.InterestRate)
	if err != nil {
		return nil, err
	}
	product, err := models.NewLoanProduct(s.Product.ID, s.Product.Name, rate)
	if err != nil {
		return nil, err
	}

	value, err := parseDecimal("amount.value", s.Amount.Value)
	if err != nil {
		return nil, err
	}
	amount, err := models.NewLoanAmount(s.Amount.Currency, value)
	if err != nil {
		return nil, err
	}

	income, err := parseDecimal("applicant.income", s.Applicant.Income)
	if err != nil {
		return nil, err
	}
	return models.NewLoanApplication(s.ID, product, amount, models.Applicant{
		Name:    s.Applicant.Name,
		Age:     s.Applicant.Age,
		Address: s.Applicant.Address,
		Income:  income,
	})
}

func parseDecimal(field, value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, fmt.Errorf("%s is required", field)
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s %q: %w", field, value, err)
	}
	return d, nil
}
