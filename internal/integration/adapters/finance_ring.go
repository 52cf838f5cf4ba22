// Package adapters implements service adapters for external integrations.
package adapters

import (
	"context"
	"sync"

	"github.com/life-planner/backend/internal/application/adapter"
)

// PassthroughFinanceRing holds the finance gauge as computed by the finance
// subsystem. The planner core never derives this value itself; the finance
// side pushes it with SetRing and the dashboard reads it back unchanged.
type PassthroughFinanceRing struct {
	mu   sync.RWMutex
	ring float64
}

// NewPassthroughFinanceRing creates a provider with the gauge at zero.
func NewPassthroughFinanceRing() *PassthroughFinanceRing {
	return &PassthroughFinanceRing{}
}

var _ adapter.FinanceRingProvider = (*PassthroughFinanceRing)(nil)

// SetRing stores the gauge value, clamped to [0, 1].
func (p *PassthroughFinanceRing) SetRing(value float64) {
	if value < 0 {
		value = 0
	}
	if value > 1 {
		value = 1
	}
	p.mu.Lock()
	p.ring = value
	p.mu.Unlock()
}

// FinanceRing returns the latest pushed gauge value.
func (p *PassthroughFinanceRing) FinanceRing(_ context.Context) float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.ring
}
