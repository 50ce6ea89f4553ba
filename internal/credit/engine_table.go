package credit

import (
	"context"
	"fmt"
	"sync"

	"loans/pkg/platform/sentinel"
)

var _ Engine = (*TableEngine)(nil)

// TableEngine serves scores from a fixed table keyed by applicant name and
// address. It backs offline runs where no scoring service is reachable.
type TableEngine struct {
	mu     sync.RWMutex
	scores map[tableKey]int
}

type tableKey struct {
	name    string
	address string
}

func NewTableEngine() *TableEngine {
	return &TableEngine{scores: make(map[tableKey]int)}
}

// Set records the score returned for name and address.
func (e *TableEngine) Set(name, address string, score int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.scores[tableKey{name: name, address: address}] = score
}

// Compute fails with sentinel.ErrUnavailable for applicants missing from the
// table, the same way an unreachable bureau would.
func (e *TableEngine) Compute(_ context.Context, name, address string) (int, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	score, ok := e.scores[tableKey{name: name, address: address}]
	if !ok {
		return 0, fmt.Errorf("no score on file for %q: %w", name, sentinel.ErrUnavailable)
	}
	return score, nil
}
