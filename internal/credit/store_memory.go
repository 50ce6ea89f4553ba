package credit

import (
	"context"
	"sync"

	"loans/internal/loans/models"
	"loans/pkg/platform/sentinel"
)

// MemoryStore keeps results in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	results map[string]models.CreditScoreResult
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{results: make(map[string]models.CreditScoreResult)}
}

func (s *MemoryStore) Save(_ context.Context, key string, result models.CreditScoreResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[key] = result
	return nil
}

func (s *MemoryStore) Load(_ context.Context, key string) (models.CreditScoreResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result, ok := s.results[key]
	if !ok {
		return models.CreditScoreResult{}, sentinel.ErrNotFound
	}
	return result, nil
}
