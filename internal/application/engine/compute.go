// Package engine implements the goal progress engine: event-driven
// incremental recomputation of per-goal derived progress state.
package engine

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/life-planner/backend/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// computePercent is percent = clamp(100 * (current - baseline) / (target - baseline), 0, 100).
// The same formula covers inverse goals: numerator and denominator are both
// negative once progress runs toward a smaller target.
func computePercent(def *entity.GoalDefinition, current decimal.Decimal) float64 {
	denom := def.Target.Sub(def.Baseline)
	percent, _ := current.Sub(def.Baseline).Mul(hundred).Div(denom).Float64()

	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}

// computeRemaining is the distance still to cover toward the target, floored
// at zero once the target is passed.
func computeRemaining(def *entity.GoalDefinition, current decimal.Decimal) decimal.Decimal {
	remaining := def.Target.Sub(current)
	if def.Inverse() {
		remaining = current.Sub(def.Target)
	}
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// computeETA projects the completion date from the current pace. A goal that
// is already at target, whose pace does not point toward the target, or whose
// projection lands past the horizon has no projection.
func computeETA(def *entity.GoalDefinition, current, pace decimal.Decimal, percent float64, now time.Time) *time.Time {
	if percent >= 100 || pace.IsZero() {
		return nil
	}

	// days = (target - current) / pace; a negative quotient means the pace
	// runs away from the target.
	days := def.Target.Sub(current).Div(pace)
	if !days.IsPositive() {
		return nil
	}

	d, _ := days.Float64()
	if d > etaHorizonDays {
		return nil
	}
	eta := now.Add(time.Duration(d * 24 * float64(time.Hour)))
	return &eta
}

// computeStatus classifies the record against its goal's deadline. A goal at
// target is always on_track; without a deadline pace never matters; with one,
// a projection within the deadline is on_track, a projection overshooting by
// at most the slack fraction of the remaining window is at_risk, and
// anything else (including no projection at all) is behind.
func computeStatus(def *entity.GoalDefinition, rec *entity.GoalProgressRecord, now time.Time) entity.GoalStatus {
	if rec.AtTarget() {
		return entity.GoalStatusOnTrack
	}
	if def.Deadline == nil {
		return entity.GoalStatusOnTrack
	}
	if rec.ETADate == nil {
		return entity.GoalStatusBehind
	}
	if !rec.ETADate.After(*def.Deadline) {
		return entity.GoalStatusOnTrack
	}

	window := def.Deadline.Sub(now)
	if window > 0 {
		slack := time.Duration(etaSlackFraction * float64(window))
		if rec.ETADate.Sub(*def.Deadline) <= slack {
			return entity.GoalStatusAtRisk
		}
	}
	return entity.GoalStatusBehind
}
