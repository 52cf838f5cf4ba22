// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Habit is a raw habit fact as stored by the habit subsystem. StreakCurrent
// and CompletionRate30 are maintained by the habit subsystem's daily
// evaluation; the engine only reads them.
type Habit struct {
	ID               uuid.UUID
	Name             string
	GoalID           *uuid.UUID // optional link to the goal this habit advances
	StreakCurrent    int
	CompletionRate30 float64 // fraction of the last 30 days completed, [0, 1]
	CompletedToday   bool
	EvaluatedToday   bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        *time.Time // Soft-delete support
}

// NewHabit creates a new Habit entity.
func NewHabit(name string, goalID *uuid.UUID) *Habit {
	now := time.Now().UTC()

	return &Habit{
		ID:        uuid.New(),
		Name:      name,
		GoalID:    goalID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
