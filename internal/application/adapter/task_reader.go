// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/life-planner/backend/internal/domain/entity"
)

// TaskReader is the read-only view of the task store.
type TaskReader interface {
	// FindByID retrieves a task by its ID, or nil when it does not exist.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Task, error)

	// ListTasksForGoal retrieves all non-deleted tasks linked to the given goal.
	ListTasksForGoal(ctx context.Context, goalID uuid.UUID) ([]*entity.Task, error)

	// ListActiveTasks retrieves all non-deleted, non-canceled tasks.
	ListActiveTasks(ctx context.Context) ([]*entity.Task, error)
}
