// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/life-planner/backend/internal/domain/entity"
)

// HabitModel represents the habits table in the database.
type HabitModel struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name             string         `gorm:"type:varchar(255);not null"`
	GoalID           *uuid.UUID     `gorm:"type:uuid;index"`
	StreakCurrent    int            `gorm:"not null;default:0"`
	CompletionRate30 float64        `gorm:"not null;default:0"`
	CompletedToday   bool           `gorm:"not null;default:false"`
	EvaluatedToday   bool           `gorm:"not null;default:false"`
	CreatedAt        time.Time      `gorm:"not null"`
	UpdatedAt        time.Time      `gorm:"not null"`
	DeletedAt        gorm.DeletedAt `gorm:"index"` // Soft-delete support
}

// TableName returns the table name for the HabitModel.
func (HabitModel) TableName() string {
	return "habits"
}

// ToEntity converts a HabitModel to a domain Habit entity.
func (m *HabitModel) ToEntity() *entity.Habit {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	return &entity.Habit{
		ID:               m.ID,
		Name:             m.Name,
		GoalID:           m.GoalID,
		StreakCurrent:    m.StreakCurrent,
		CompletionRate30: m.CompletionRate30,
		CompletedToday:   m.CompletedToday,
		EvaluatedToday:   m.EvaluatedToday,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
		DeletedAt:        deletedAt,
	}
}

// HabitFromEntity creates a HabitModel from a domain Habit entity.
func HabitFromEntity(habit *entity.Habit) *HabitModel {
	var deletedAt gorm.DeletedAt
	if habit.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *habit.DeletedAt, Valid: true}
	}

	return &HabitModel{
		ID:               habit.ID,
		Name:             habit.Name,
		GoalID:           habit.GoalID,
		StreakCurrent:    habit.StreakCurrent,
		CompletionRate30: habit.CompletionRate30,
		CompletedToday:   habit.CompletedToday,
		EvaluatedToday:   habit.EvaluatedToday,
		CreatedAt:        habit.CreatedAt,
		UpdatedAt:        habit.UpdatedAt,
		DeletedAt:        deletedAt,
	}
}
