// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// TaskStatus represents the lifecycle state of a task.
type TaskStatus string

const (
	TaskStatusOpen      TaskStatus = "open"
	TaskStatusCompleted TaskStatus = "completed"
	TaskStatusCanceled  TaskStatus = "canceled"
)

// Task is a raw task fact as stored by the task subsystem. The engine only
// reads tasks; it never mutates them.
type Task struct {
	ID          uuid.UUID
	Title       string
	GoalID      *uuid.UUID // optional link to the goal this task advances
	Status      TaskStatus
	DueDate     *time.Time
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time // Soft-delete support
}

// NewTask creates a new Task entity.
func NewTask(title string, goalID *uuid.UUID, dueDate *time.Time) *Task {
	now := time.Now().UTC()

	return &Task{
		ID:        uuid.New(),
		Title:     title,
		GoalID:    goalID,
		Status:    TaskStatusOpen,
		DueDate:   dueDate,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Completed reports whether the task counts as done.
func (t *Task) Completed() bool {
	return t.Status == TaskStatusCompleted
}
