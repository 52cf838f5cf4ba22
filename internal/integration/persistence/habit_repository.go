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

// HabitRepository stores habits and serves the engine's read-only accessor.
type HabitRepository struct {
	db *gorm.DB
}

// NewHabitRepository creates a new habit repository instance.
func NewHabitRepository(db *gorm.DB) *HabitRepository {
	return &HabitRepository{
		db: db,
	}
}

var _ adapter.HabitReader = (*HabitRepository)(nil)

// Create records a new habit.
func (r *HabitRepository) Create(ctx context.Context, habit *entity.Habit) error {
	habitModel := model.HabitFromEntity(habit)
	result := r.db.WithContext(ctx).Create(habitModel)
	return result.Error
}

// Update saves changes to an existing habit (streaks, daily evaluation flags).
func (r *HabitRepository) Update(ctx context.Context, habit *entity.Habit) error {
	habitModel := model.HabitFromEntity(habit)
	result := r.db.WithContext(ctx).Save(habitModel)
	return result.Error
}

// GetHabit retrieves a habit by its ID, or nil when it does not exist.
func (r *HabitRepository) GetHabit(ctx context.Context, id uuid.UUID) (*entity.Habit, error) {
	var habitModel model.HabitModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&habitModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return habitModel.ToEntity(), nil
}

// ListHabits retrieves all non-deleted habits.
func (r *HabitRepository) ListHabits(ctx context.Context) ([]*entity.Habit, error) {
	var habitModels []model.HabitModel
	result := r.db.WithContext(ctx).Order("created_at ASC").Find(&habitModels)
	if result.Error != nil {
		return nil, result.Error
	}

	habits := make([]*entity.Habit, len(habitModels))
	for i, m := range habitModels {
		habits[i] = m.ToEntity()
	}
	return habits, nil
}
