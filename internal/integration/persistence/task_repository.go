// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/life-planner/backend/internal/application/adapter"
	"github.com/life-planner/backend/internal/domain/entity"
	"github.com/life-planner/backend/internal/integration/persistence/model"
)

// TaskRepository stores tasks and serves the engine's read-only accessor.
type TaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new task repository instance.
func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{
		db: db,
	}
}

var _ adapter.TaskReader = (*TaskRepository)(nil)

// Create records a new task.
func (r *TaskRepository) Create(ctx context.Context, task *entity.Task) error {
	taskModel := model.TaskFromEntity(task)
	result := r.db.WithContext(ctx).Create(taskModel)
	return result.Error
}

// Update saves changes to an existing task.
func (r *TaskRepository) Update(ctx context.Context, task *entity.Task) error {
	taskModel := model.TaskFromEntity(task)
	result := r.db.WithContext(ctx).Save(taskModel)
	return result.Error
}

// FindByID retrieves a task by its ID, or nil when it does not exist.
func (r *TaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Task, error) {
	var taskModel model.TaskModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&taskModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return taskModel.ToEntity(), nil
}

// ListTasksForGoal retrieves all non-deleted tasks linked to the given goal.
func (r *TaskRepository) ListTasksForGoal(ctx context.Context, goalID uuid.UUID) ([]*entity.Task, error) {
	var taskModels []model.TaskModel
	result := r.db.WithContext(ctx).
		Where("goal_id = ?", goalID).
		Order("created_at ASC").
		Find(&taskModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toTaskEntities(taskModels), nil
}

// ListActiveTasks retrieves all non-deleted, non-canceled tasks.
func (r *TaskRepository) ListActiveTasks(ctx context.Context) ([]*entity.Task, error) {
	var taskModels []model.TaskModel
	result := r.db.WithContext(ctx).
		Where("status <> ?", string(entity.TaskStatusCanceled)).
		Order("created_at ASC").
		Find(&taskModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toTaskEntities(taskModels), nil
}

func toTaskEntities(taskModels []model.TaskModel) []*entity.Task {
	tasks := make([]*entity.Task, len(taskModels))
	for i, m := range taskModels {
		tasks[i] = m.ToEntity()
	}
	return tasks
}
