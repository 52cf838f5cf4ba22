// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// FocusSession is a logged block of focused work. Completed sessions feed the
// productivity ring on the dashboard.
type FocusSession struct {
	ID          uuid.UUID
	TaskID      *uuid.UUID
	Minutes     int
	StartedAt   time.Time
	CompletedAt *time.Time
	CreatedAt   time.Time
}

// NewFocusSession creates a focus session that started now.
func NewFocusSession(taskID *uuid.UUID) *FocusSession {
	now := time.Now().UTC()

	return &FocusSession{
		ID:        uuid.New(),
		TaskID:    taskID,
		StartedAt: now,
		CreatedAt: now,
	}
}

// Complete marks the session finished with the given duration.
func (s *FocusSession) Complete(minutes int, at time.Time) {
	s.Minutes = minutes
	s.CompletedAt = &at
}
