// Package upstream normalizes failures of remote services (identity registry,
// credit scoring) into one error taxonomy.
package upstream

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCategory defines the normalized failure taxonomy
type ErrorCategory string

const (
	// ErrorTimeout indicates the service took too long to respond
	ErrorTimeout ErrorCategory = "timeout"

	// ErrorBadData indicates the service returned invalid/malformed data
	ErrorBadData ErrorCategory = "bad_data"

	// ErrorAuthentication indicates credential or permission issues
	ErrorAuthentication ErrorCategory = "authentication"

	// ErrorOutage indicates the service is unavailable
	ErrorOutage ErrorCategory = "outage"

	// ErrorNotFound indicates the requested record doesn't exist
	ErrorNotFound ErrorCategory = "not_found"

	// ErrorRateLimited indicates too many requests
	ErrorRateLimited ErrorCategory = "rate_limited"

	// ErrorInternal indicates an unexpected internal error
	ErrorInternal ErrorCategory = "internal"
)

// Error wraps upstream failures with normalized categorization
type Error struct {
	Category   ErrorCategory
	Service    string
	Message    string
	Underlying error
	Retryable  bool
}

func (e *Error) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("%s [%s]: %s: %v", e.Service, e.Category, e.Message, e.Underlying)
	}
	return fmt.Sprintf("%s [%s]: %s", e.Service, e.Category, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Underlying
}

// NewError creates a normalized upstream error.
func NewError(category ErrorCategory, service, message string, underlying error) *Error {
	retryable := category == ErrorTimeout ||
		category == ErrorOutage ||
		category == ErrorRateLimited

	return &Error{
		Category:   category,
		Service:    service,
		Message:    message,
		Underlying: underlying,
		Retryable:  retryable,
	}
}

// FromStatus maps an unexpected HTTP status to a category.
func FromStatus(service string, status int) *Error {
	msg := fmt.Sprintf("unexpected status %d", status)
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return NewError(ErrorAuthentication, service, msg, nil)
	case status == http.StatusNotFound:
		return NewError(ErrorNotFound, service, msg, nil)
	case status == http.StatusTooManyRequests:
		return NewError(ErrorRateLimited, service, msg, nil)
	case status == http.StatusGatewayTimeout || status == http.StatusRequestTimeout:
		return NewError(ErrorTimeout, service, msg, nil)
	case status >= 500:
		return NewError(ErrorOutage, service, msg, nil)
	default:
		return NewError(ErrorBadData, service, msg, nil)
	}
}

// IsRetryable checks if an error is worth retrying
func IsRetryable(err error) bool {
	var ue *Error
	if errors.As(err, &ue) {
		return ue.Retryable
	}
	return false
}

// GetCategory extracts the error category from an error
func GetCategory(err error) ErrorCategory {
	var ue *Error
	if errors.As(err, &ue) {
		return ue.Category
	}
	return ErrorInternal
}
