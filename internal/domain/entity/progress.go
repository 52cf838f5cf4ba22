// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GoalStatus classifies how a goal is tracking against its deadline.
type GoalStatus string

const (
	GoalStatusOnTrack GoalStatus = "on_track"
	GoalStatusAtRisk  GoalStatus = "at_risk"
	GoalStatusBehind  GoalStatus = "behind"
)

// GoalProgressRecord is the derived progress state for one goal. Records are
// replaced wholesale on every recompute, never patched field by field, and
// are owned exclusively by the progress engine.
type GoalProgressRecord struct {
	GoalID      uuid.UUID
	Current     decimal.Decimal // normalized to the definition's unit/currency
	Percent     float64         // clamped to [0, 100]
	Remaining   decimal.Decimal
	PaceActual  decimal.Decimal // change per day over the pacing window
	PaceCadence Cadence
	Status      GoalStatus
	ETADate     *time.Time
	ComputedAt  time.Time
}

// AtTarget reports whether the goal has reached or passed its target.
func (r *GoalProgressRecord) AtTarget() bool {
	return r.Percent >= 100
}
