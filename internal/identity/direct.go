package identity

import (
	"context"
	"fmt"
	"sync"

	"loans/internal/loans/ports"
	"loans/pkg/platform/sentinel"
)

var _ ports.IdentityVerifier = (*DirectVerifier)(nil)

// Record is a known identity held by an in-process registry.
type Record struct {
	Name    string
	Age     int
	Address string
}

// DirectVerifier checks identities against records held in memory. It is the
// in-process variant used by hosts that preload a registry snapshot.
type DirectVerifier struct {
	mu          sync.RWMutex
	records     map[string][]Record
	initialized bool
}

func NewDirectVerifier(records ...Record) *DirectVerifier {
	v := &DirectVerifier{records: make(map[string][]Record)}
	for _, r := range records {
		v.records[r.Name] = append(v.records[r.Name], r)
	}
	return v
}

// Initialize marks the verifier ready. Calling it again is harmless.
func (v *DirectVerifier) Initialize(_ context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.initialized = true
	return nil
}

// Validate reports whether a record matches all three attributes exactly.
func (v *DirectVerifier) Validate(_ context.Context, name string, age int, address string) (bool, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	if !v.initialized {
		return false, fmt.Errorf("direct verifier not initialized: %w", sentinel.ErrInvalidState)
	}
	for _, r := range v.records[name] {
		if r.Age == age && r.Address == address {
			return true, nil
		}
	}
	return false, nil
}
