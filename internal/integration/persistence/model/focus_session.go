// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/life-planner/backend/internal/domain/entity"
)

// FocusSessionModel represents the focus_sessions table in the database.
type FocusSessionModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TaskID      *uuid.UUID `gorm:"type:uuid;index"`
	Minutes     int        `gorm:"not null;default:0"`
	StartedAt   time.Time  `gorm:"not null;index"`
	CompletedAt *time.Time `gorm:"type:timestamp;index"`
	CreatedAt   time.Time  `gorm:"not null"`
}

// TableName returns the table name for the FocusSessionModel.
func (FocusSessionModel) TableName() string {
	return "focus_sessions"
}

// ToEntity converts a FocusSessionModel to a domain FocusSession entity.
func (m *FocusSessionModel) ToEntity() *entity.FocusSession {
	return &entity.FocusSession{
		ID:          m.ID,
		TaskID:      m.TaskID,
		Minutes:     m.Minutes,
		StartedAt:   m.StartedAt,
		CompletedAt: m.CompletedAt,
		CreatedAt:   m.CreatedAt,
	}
}

// FocusSessionFromEntity creates a FocusSessionModel from a domain FocusSession entity.
func FocusSessionFromEntity(s *entity.FocusSession) *FocusSessionModel {
	return &FocusSessionModel{
		ID:          s.ID,
		TaskID:      s.TaskID,
		Minutes:     s.Minutes,
		StartedAt:   s.StartedAt,
		CompletedAt: s.CompletedAt,
		CreatedAt:   s.CreatedAt,
	}
}
