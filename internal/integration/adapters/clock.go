// Package adapters implements service adapters for external integrations.
package adapters

import (
	"time"

	"github.com/life-planner/backend/internal/application/adapter"
)

// systemClock reads the wall clock.
type systemClock struct{}

// NewSystemClock creates a Clock backed by time.Now.
func NewSystemClock() adapter.Clock {
	return systemClock{}
}

// Now returns the current UTC time.
func (systemClock) Now() time.Time {
	return time.Now().UTC()
}
