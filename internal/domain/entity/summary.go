// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// TaskSummary is the dashboard projection of a single task.
type TaskSummary struct {
	TaskID    uuid.UUID
	Title     string
	GoalID    *uuid.UUID
	Done      bool
	DueToday  bool
	Overdue   bool
	UpdatedAt time.Time
}

// GoalSummary is the dashboard projection of a goal and its latest progress.
// Percent and Status echo the goal's progress record exactly.
type GoalSummary struct {
	GoalID   uuid.UUID
	Name     string
	Category string
	Percent  float64
	Status   GoalStatus
	ETADate  *time.Time
	Deadline *time.Time
}

// HabitSummary is the dashboard projection of a habit.
type HabitSummary struct {
	HabitID          uuid.UUID
	Name             string
	StreakCurrent    int
	CompletedToday   bool
	EvaluatedToday   bool
	CompletionRate30 float64
}

// Rings holds the four independent dashboard gauges, each in [0.0, 1.0].
type Rings struct {
	Goals        float64
	Habits       float64
	Productivity float64
	Finance      float64
}

// Alerts holds attention-worthy derived facts surfaced on the dashboard.
type Alerts struct {
	AtRiskGoals []uuid.UUID
}

// HomeSnapshot is the singleton dashboard aggregate. A snapshot is immutable
// once published; a recompute builds a fresh value and swaps it in whole, so
// readers never observe a half-updated dashboard.
type HomeSnapshot struct {
	GeneratedAt time.Time
	Rings       Rings
	Alerts      Alerts
	OpenTasks   int
	DueToday    int
	ActiveGoals int
}
