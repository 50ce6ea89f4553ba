package ops

import (
	"math/rand/v2"
	"sync"

	audit "loans/pkg/platform/audit"
)

// Sampler keeps a configurable fraction of operations events per action.
// Rates are clamped to [0, 1].
type Sampler struct {
	mu          sync.RWMutex
	defaultRate float64
	rates       map[audit.AuditEvent]float64
	draw        func() float64
}

func NewSampler(defaultRate float64) *Sampler {
	return &Sampler{
		defaultRate: clamp(defaultRate),
		rates:       make(map[audit.AuditEvent]float64),
		draw:        rand.Float64, //nolint:gosec // sampling doesn't need crypto rand
	}
}

// Keep reports whether an event for action should be published.
func (s *Sampler) Keep(action audit.AuditEvent) bool {
	s.mu.RLock()
	rate, ok := s.rates[action]
	if !ok {
		rate = s.defaultRate
	}
	s.mu.RUnlock()

	switch rate {
	case 0:
		return false
	case 1:
		return true
	}
	return s.draw() < rate
}

// SetRate overrides the rate for one action.
func (s *Sampler) SetRate(action audit.AuditEvent, rate float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rates[action] = clamp(rate)
}

func clamp(rate float64) float64 {
	return min(max(rate, 0), 1)
}
