// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EventKind identifies the variant of a domain event.
type EventKind string

// The closed set of event kinds this core reacts to. Emitters may produce
// kinds outside this set; consumers must treat those as no-ops.
const (
	// Goal lifecycle
	EventGoalCreated         EventKind = "goal.created"
	EventGoalUpdated         EventKind = "goal.updated"
	EventGoalCompleted       EventKind = "goal.completed"
	EventGoalArchived        EventKind = "goal.archived"
	EventGoalProgressUpdated EventKind = "goal.progress_updated"

	// Task lifecycle
	EventTaskCreated   EventKind = "task.created"
	EventTaskUpdated   EventKind = "task.updated"
	EventTaskCompleted EventKind = "task.completed"
	EventTaskCanceled  EventKind = "task.canceled"

	// Habit lifecycle
	EventHabitCreated      EventKind = "habit.created"
	EventHabitUpdated      EventKind = "habit.updated"
	EventHabitDayEvaluated EventKind = "habit.day_evaluated"

	// Focus sessions
	EventFocusStarted   EventKind = "focus.started"
	EventFocusCompleted EventKind = "focus.completed"

	// Finance lifecycle
	EventTransactionCreated    EventKind = "finance.transaction_created"
	EventTransactionUpdated    EventKind = "finance.transaction_updated"
	EventBudgetSpendingChanged EventKind = "finance.budget_spending_changed"
	EventDebtCreated           EventKind = "debt.created"
	EventDebtPaymentAdded      EventKind = "debt.payment_added"
	EventDebtStatusChanged     EventKind = "debt.status_changed"

	// Manual user adjustment of a goal's current value
	EventManualAdjustment EventKind = "manual.adjustment"
)

// KnownEventKinds returns every event kind this core reacts to, in a stable
// order. Used by hosts to wire bus subscriptions.
func KnownEventKinds() []EventKind {
	return []EventKind{
		EventGoalCreated, EventGoalUpdated, EventGoalCompleted, EventGoalArchived, EventGoalProgressUpdated,
		EventTaskCreated, EventTaskUpdated, EventTaskCompleted, EventTaskCanceled,
		EventHabitCreated, EventHabitUpdated, EventHabitDayEvaluated,
		EventFocusStarted, EventFocusCompleted,
		EventTransactionCreated, EventTransactionUpdated, EventBudgetSpendingChanged,
		EventDebtCreated, EventDebtPaymentAdded, EventDebtStatusChanged,
		EventManualAdjustment,
	}
}

// DomainEvent is a fact notification emitted when user action changes
// finance, task, habit or goal state. It carries only the ids and new values
// needed to locate the affected entities, never a full snapshot.
type DomainEvent struct {
	Kind          EventKind
	GoalID        *uuid.UUID
	TaskID        *uuid.UUID
	HabitID       *uuid.UUID
	BudgetID      *uuid.UUID
	TransactionID *uuid.UUID
	DebtID        *uuid.UUID
	Amount        *decimal.Decimal
	Currency      string
	Value         *decimal.Decimal
	OccurredAt    time.Time
}

// NewGoalEvent creates a goal lifecycle event for the given goal.
func NewGoalEvent(kind EventKind, goalID uuid.UUID) DomainEvent {
	return DomainEvent{
		Kind:       kind,
		GoalID:     &goalID,
		OccurredAt: time.Now().UTC(),
	}
}

// NewTaskEvent creates a task lifecycle event. goalID may be nil for tasks
// not linked to any goal.
func NewTaskEvent(kind EventKind, taskID uuid.UUID, goalID *uuid.UUID) DomainEvent {
	return DomainEvent{
		Kind:       kind,
		TaskID:     &taskID,
		GoalID:     goalID,
		OccurredAt: time.Now().UTC(),
	}
}

// NewHabitEvent creates a habit lifecycle event.
func NewHabitEvent(kind EventKind, habitID uuid.UUID, goalID *uuid.UUID) DomainEvent {
	return DomainEvent{
		Kind:       kind,
		HabitID:    &habitID,
		GoalID:     goalID,
		OccurredAt: time.Now().UTC(),
	}
}

// NewTransactionEvent creates a finance transaction event tagged to a budget.
func NewTransactionEvent(kind EventKind, transactionID uuid.UUID, budgetID *uuid.UUID, amount decimal.Decimal, currency string) DomainEvent {
	return DomainEvent{
		Kind:          kind,
		TransactionID: &transactionID,
		BudgetID:      budgetID,
		Amount:        &amount,
		Currency:      currency,
		OccurredAt:    time.Now().UTC(),
	}
}

// NewManualAdjustmentEvent creates a manual nudge of a goal's current value.
func NewManualAdjustmentEvent(goalID uuid.UUID, value decimal.Decimal) DomainEvent {
	return DomainEvent{
		Kind:       EventManualAdjustment,
		GoalID:     &goalID,
		Value:      &value,
		OccurredAt: time.Now().UTC(),
	}
}
