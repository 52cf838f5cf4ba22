// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GoalType represents the kind of quantity a goal measures.
type GoalType string

const (
	GoalTypeFinancial    GoalType = "financial"
	GoalTypeQuantitative GoalType = "quantitative"
	GoalTypeSkill        GoalType = "skill"
)

// Cadence represents the rhythm a goal is paced against.
type Cadence string

const (
	CadenceDaily   Cadence = "daily"
	CadenceWeekly  Cadence = "weekly"
	CadenceMonthly Cadence = "monthly"
	CadenceNone    Cadence = "none"
)

// TrackKind represents the source a track draws its contribution from.
type TrackKind string

const (
	TrackKindMoney       TrackKind = "money"
	TrackKindTaskCount   TrackKind = "task_count"
	TrackKindHabitStreak TrackKind = "habit_streak"
)

// TaskScope selects which tasks a task_count track counts.
type TaskScope string

const (
	TaskScopeAll       TaskScope = "all"
	TaskScopeCompleted TaskScope = "completed"
)

// Habit units a habit_streak track understands.
const (
	HabitUnitStreakDays     = "streak_days"
	HabitUnitCompletionRate = "completion_rate"
)

// Track is a single measurable contribution feeding a goal's current value.
// Kind determines which of the optional fields are meaningful: Currency for
// money tracks, Scope for task_count tracks, Unit selects streak vs. 30-day
// completion rate for habit_streak tracks.
type Track struct {
	ID       string
	Kind     TrackKind
	Target   decimal.Decimal
	Unit     string
	Currency string
	Scope    TaskScope
}

// SourceFlags records which subsystems are allowed to feed a goal.
type SourceFlags struct {
	Finance bool
	Tasks   bool
	Manual  bool
}

// GoalDefinition describes what a goal measures and how progress against it
// is paced. Definitions are immutable once registered; changing one means
// re-registering under the same ID.
//
// Target < Baseline declares an inverse goal (e.g. paying a debt down to
// zero): progress grows as the current value falls toward the target.
type GoalDefinition struct {
	ID               uuid.UUID
	Name             string
	Type             GoalType
	Category         string
	Baseline         decimal.Decimal
	Target           decimal.Decimal
	Unit             string
	Currency         string
	Cadence          Cadence
	Deadline         *time.Time
	Tracks           []Track
	PacingWindowDays int
	Sources          SourceFlags
	LinkedBudgetID   *uuid.UUID
	LinkedHabitID    *uuid.UUID
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewGoalDefinition creates a goal definition with generated ID and timestamps.
func NewGoalDefinition(name string, goalType GoalType, baseline, target decimal.Decimal, unit string, tracks []Track) *GoalDefinition {
	now := time.Now().UTC()

	return &GoalDefinition{
		ID:               uuid.New(),
		Name:             name,
		Type:             goalType,
		Baseline:         baseline,
		Target:           target,
		Unit:             unit,
		Cadence:          CadenceNone,
		Tracks:           tracks,
		PacingWindowDays: 7,
		Sources:          SourceFlags{Finance: true, Tasks: true, Manual: true},
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// Inverse reports whether progress runs downward, from baseline toward a
// smaller target.
func (d *GoalDefinition) Inverse() bool {
	return d.Target.LessThan(d.Baseline)
}

// HasMoneyTrack reports whether any track draws from finance transactions.
func (d *GoalDefinition) HasMoneyTrack() bool {
	for _, t := range d.Tracks {
		if t.Kind == TrackKindMoney {
			return true
		}
	}
	return false
}
