// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/life-planner/backend/internal/domain/entity"
)

// HabitReader is the read-only view of the habit store.
type HabitReader interface {
	// GetHabit retrieves a habit by its ID, or nil when it does not exist.
	GetHabit(ctx context.Context, id uuid.UUID) (*entity.Habit, error)

	// ListHabits retrieves all non-deleted habits.
	ListHabits(ctx context.Context) ([]*entity.Habit, error)
}
