package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Adapters and stores return these
// (optionally wrapped) so callers can branch with errors.Is.
//
// - ErrNotFound: record does not exist (e.g. no score computed yet)
// - ErrInvalidState: component used in the wrong state (e.g. verifier not initialized)
// - ErrUnavailable: upstream service temporarily unavailable (e.g. breaker open)
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidState = errors.New("invalid state")
	ErrUnavailable  = errors.New("unavailable")
)
