// Package aggregator implements the planner aggregation layer: dashboard
// summaries for tasks, goals and habits, and the singleton home snapshot
// (progress rings plus alerts).
//
// Summary entries are regenerated wholesale, never partially mutated, and
// the home snapshot is rebuilt last on every event it reacts to, so it is
// never stale relative to the summaries it reads. Readers always receive
// copies of one internally consistent state.
package aggregator

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/life-planner/backend/internal/application/adapter"
	"github.com/life-planner/backend/internal/application/engine"
	"github.com/life-planner/backend/internal/application/registry"
	"github.com/life-planner/backend/internal/domain/entity"
)

// Config holds the aggregator's tunables.
type Config struct {
	// AtRiskPercentThreshold is the percent below which a goal close to its
	// deadline is surfaced in the at-risk alert list.
	AtRiskPercentThreshold float64

	// DeadlineHorizonDays is how close a deadline must be for the goal to
	// qualify for the at-risk alert list.
	DeadlineHorizonDays int

	// DailyFocusTargetMinutes is the denominator of the productivity ring.
	DailyFocusTargetMinutes int
}

// SnapshotListener is notified with the freshly published snapshot.
type SnapshotListener func(snapshot entity.HomeSnapshot)

// PlannerAggregator maintains the dashboard projections.
type PlannerAggregator struct {
	engine   *engine.GoalProgressEngine
	registry *registry.GoalDefinitionRegistry
	tasks    adapter.TaskReader
	habits   adapter.HabitReader
	focus    adapter.FocusSessionReader
	finance  adapter.FinanceRingProvider
	clock    adapter.Clock
	cfg      Config

	mu             sync.RWMutex
	taskSummaries  map[uuid.UUID]entity.TaskSummary
	goalSummaries  map[uuid.UUID]entity.GoalSummary
	habitSummaries map[uuid.UUID]entity.HabitSummary
	snapshot       entity.HomeSnapshot

	listenerID int
	listeners  map[int]SnapshotListener
}

// New creates an aggregator over the engine's output and the fact readers.
func New(
	eng *engine.GoalProgressEngine,
	reg *registry.GoalDefinitionRegistry,
	tasks adapter.TaskReader,
	habits adapter.HabitReader,
	focus adapter.FocusSessionReader,
	finance adapter.FinanceRingProvider,
	clock adapter.Clock,
	cfg Config,
) *PlannerAggregator {
	if cfg.AtRiskPercentThreshold <= 0 {
		cfg.AtRiskPercentThreshold = 0.30
	}
	if cfg.DeadlineHorizonDays <= 0 {
		cfg.DeadlineHorizonDays = 7
	}
	if cfg.DailyFocusTargetMinutes <= 0 {
		cfg.DailyFocusTargetMinutes = 120
	}

	return &PlannerAggregator{
		engine:         eng,
		registry:       reg,
		tasks:          tasks,
		habits:         habits,
		focus:          focus,
		finance:        finance,
		clock:          clock,
		cfg:            cfg,
		taskSummaries:  make(map[uuid.UUID]entity.TaskSummary),
		goalSummaries:  make(map[uuid.UUID]entity.GoalSummary),
		habitSummaries: make(map[uuid.UUID]entity.HabitSummary),
		listeners:      make(map[int]SnapshotListener),
	}
}

// Subscribe registers a listener invoked after each snapshot swap. The
// returned id cancels the subscription via Unsubscribe.
func (a *PlannerAggregator) Subscribe(listener SnapshotListener) int {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.listenerID++
	a.listeners[a.listenerID] = listener
	return a.listenerID
}

// Unsubscribe removes a snapshot listener. Unknown ids are a no-op.
func (a *PlannerAggregator) Unsubscribe(id int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.listeners, id)
}

// RecomputeAll rebuilds all four summary collections from the current domain
// stores and the engine's latest records. Called on startup and as a
// periodic safety net.
func (a *PlannerAggregator) RecomputeAll(ctx context.Context) {
	now := a.clock.Now().UTC()

	taskSummaries := make(map[uuid.UUID]entity.TaskSummary)
	if tasks, err := a.tasks.ListActiveTasks(ctx); err != nil {
		slog.Warn("task summary rebuild failed", "error", err)
	} else {
		for _, t := range tasks {
			taskSummaries[t.ID] = buildTaskSummary(t, now)
		}
	}

	habitSummaries := make(map[uuid.UUID]entity.HabitSummary)
	if habits, err := a.habits.ListHabits(ctx); err != nil {
		slog.Warn("habit summary rebuild failed", "error", err)
	} else {
		for _, h := range habits {
			habitSummaries[h.ID] = buildHabitSummary(h)
		}
	}

	goalSummaries := make(map[uuid.UUID]entity.GoalSummary)
	for _, def := range a.registry.List() {
		if s, ok := a.buildGoalSummary(def.ID); ok {
			goalSummaries[def.ID] = s
		}
	}

	a.mu.Lock()
	a.taskSummaries = taskSummaries
	a.habitSummaries = habitSummaries
	a.goalSummaries = goalSummaries
	a.mu.Unlock()

	a.rebuildSnapshot(ctx)
}

// OnEvent incrementally refreshes only the summary entries whose owning
// entity the event names, then always rebuilds the home snapshot last.
// Unknown event kinds are ignored.
func (a *PlannerAggregator) OnEvent(ctx context.Context, event entity.DomainEvent) {
	switch event.Kind {
	case entity.EventTaskCreated, entity.EventTaskUpdated, entity.EventTaskCompleted, entity.EventTaskCanceled:
		if event.TaskID != nil {
			a.refreshTask(ctx, *event.TaskID)
		}
		a.refreshGoal(event.GoalID)

	case entity.EventGoalCreated, entity.EventGoalUpdated, entity.EventGoalCompleted, entity.EventGoalProgressUpdated:
		a.refreshGoal(event.GoalID)

	case entity.EventGoalArchived:
		if event.GoalID != nil {
			a.mu.Lock()
			delete(a.goalSummaries, *event.GoalID)
			a.mu.Unlock()
		}

	case entity.EventHabitCreated, entity.EventHabitUpdated, entity.EventHabitDayEvaluated:
		if event.HabitID != nil {
			a.refreshHabit(ctx, *event.HabitID)
			for _, def := range a.registry.FindByHabit(*event.HabitID) {
				id := def.ID
				a.refreshGoal(&id)
			}
		}
		a.refreshGoal(event.GoalID)

	case entity.EventTransactionCreated, entity.EventTransactionUpdated, entity.EventBudgetSpendingChanged:
		if event.BudgetID != nil {
			for _, def := range a.registry.FindByBudget(*event.BudgetID) {
				id := def.ID
				a.refreshGoal(&id)
			}
		}

	case entity.EventDebtCreated, entity.EventDebtPaymentAdded, entity.EventDebtStatusChanged,
		entity.EventManualAdjustment:
		a.refreshGoal(event.GoalID)

	case entity.EventFocusStarted, entity.EventFocusCompleted:
		// Only the productivity ring moves; the snapshot rebuild below covers it.

	default:
		// Forward compatibility: kinds this core does not know are no-ops.
		return
	}

	a.rebuildSnapshot(ctx)
}

func (a *PlannerAggregator) refreshTask(ctx context.Context, taskID uuid.UUID) {
	task, err := a.tasks.FindByID(ctx, taskID)
	if err != nil {
		slog.Warn("task summary refresh failed", "task_id", taskID, "error", err)
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if task == nil || task.DeletedAt != nil || task.Status == entity.TaskStatusCanceled {
		delete(a.taskSummaries, taskID)
		return
	}
	a.taskSummaries[taskID] = buildTaskSummary(task, a.clock.Now().UTC())
}

func (a *PlannerAggregator) refreshHabit(ctx context.Context, habitID uuid.UUID) {
	habit, err := a.habits.GetHabit(ctx, habitID)
	if err != nil {
		slog.Warn("habit summary refresh failed", "habit_id", habitID, "error", err)
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if habit == nil || habit.DeletedAt != nil {
		delete(a.habitSummaries, habitID)
		return
	}
	a.habitSummaries[habitID] = buildHabitSummary(habit)
}

func (a *PlannerAggregator) refreshGoal(goalID *uuid.UUID) {
	if goalID == nil {
		return
	}

	summary, ok := a.buildGoalSummary(*goalID)

	a.mu.Lock()
	defer a.mu.Unlock()
	if !ok {
		delete(a.goalSummaries, *goalID)
		return
	}
	a.goalSummaries[*goalID] = summary
}

// buildGoalSummary projects a goal's definition plus its latest progress
// record. Goals without a computed record yet have no summary.
func (a *PlannerAggregator) buildGoalSummary(goalID uuid.UUID) (entity.GoalSummary, bool) {
	def := a.registry.Get(goalID)
	if def == nil {
		return entity.GoalSummary{}, false
	}
	rec, ok := a.engine.GetGoalProgress(goalID)
	if !ok {
		return entity.GoalSummary{}, false
	}

	return entity.GoalSummary{
		GoalID:   def.ID,
		Name:     def.Name,
		Category: def.Category,
		Percent:  rec.Percent,
		Status:   rec.Status,
		ETADate:  rec.ETADate,
		Deadline: def.Deadline,
	}, true
}

func buildTaskSummary(task *entity.Task, now time.Time) entity.TaskSummary {
	dueToday := false
	overdue := false
	if task.DueDate != nil && !task.Completed() {
		y1, m1, d1 := task.DueDate.UTC().Date()
		y2, m2, d2 := now.Date()
		dueToday = y1 == y2 && m1 == m2 && d1 == d2
		overdue = !dueToday && task.DueDate.Before(now)
	}

	return entity.TaskSummary{
		TaskID:    task.ID,
		Title:     task.Title,
		GoalID:    task.GoalID,
		Done:      task.Completed(),
		DueToday:  dueToday,
		Overdue:   overdue,
		UpdatedAt: task.UpdatedAt,
	}
}

func buildHabitSummary(habit *entity.Habit) entity.HabitSummary {
	return entity.HabitSummary{
		HabitID:          habit.ID,
		Name:             habit.Name,
		StreakCurrent:    habit.StreakCurrent,
		CompletedToday:   habit.CompletedToday,
		EvaluatedToday:   habit.EvaluatedToday,
		CompletionRate30: habit.CompletionRate30,
	}
}

// rebuildSnapshot recomputes the singleton home snapshot from the summary
// collections and swaps it in whole, then notifies listeners.
func (a *PlannerAggregator) rebuildSnapshot(ctx context.Context) {
	now := a.clock.Now().UTC()

	focusMinutes, err := a.focus.TotalFocusMinutes(ctx, now)
	if err != nil {
		slog.Warn("focus minutes read failed", "error", err)
		focusMinutes = 0
	}
	financeRing := clamp01(a.finance.FinanceRing(ctx))

	a.mu.Lock()

	snapshot := entity.HomeSnapshot{
		GeneratedAt: now,
		Rings: entity.Rings{
			Goals:        a.goalsRingLocked(),
			Habits:       a.habitsRingLocked(),
			Productivity: clamp01(float64(focusMinutes) / float64(a.cfg.DailyFocusTargetMinutes)),
			Finance:      financeRing,
		},
		Alerts:      entity.Alerts{AtRiskGoals: a.atRiskGoalsLocked(now)},
		ActiveGoals: len(a.goalSummaries),
	}
	for _, t := range a.taskSummaries {
		if !t.Done {
			snapshot.OpenTasks++
			if t.DueToday {
				snapshot.DueToday++
			}
		}
	}
	a.snapshot = snapshot

	listeners := make([]SnapshotListener, 0, len(a.listeners))
	for _, l := range a.listeners {
		listeners = append(listeners, l)
	}
	a.mu.Unlock()

	for _, l := range listeners {
		l(snapshot)
	}
}

func (a *PlannerAggregator) goalsRingLocked() float64 {
	if len(a.goalSummaries) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range a.goalSummaries {
		sum += s.Percent / 100
	}
	return sum / float64(len(a.goalSummaries))
}

func (a *PlannerAggregator) habitsRingLocked() float64 {
	evaluated := 0
	completed := 0
	for _, s := range a.habitSummaries {
		if s.EvaluatedToday {
			evaluated++
			if s.CompletedToday {
				completed++
			}
		}
	}
	if evaluated == 0 {
		return 0
	}
	return float64(completed) / float64(evaluated)
}

func (a *PlannerAggregator) atRiskGoalsLocked(now time.Time) []uuid.UUID {
	var ids []uuid.UUID
	horizon := time.Duration(a.cfg.DeadlineHorizonDays) * 24 * time.Hour
	for _, s := range a.goalSummaries {
		if s.Deadline == nil || s.Percent >= a.cfg.AtRiskPercentThreshold*100 {
			continue
		}
		left := s.Deadline.Sub(now)
		if left > 0 && left <= horizon {
			ids = append(ids, s.GoalID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids
}

// GetTaskSummaries returns a copy of all task summaries, ordered by title.
func (a *PlannerAggregator) GetTaskSummaries() []entity.TaskSummary {
	a.mu.RLock()
	defer a.mu.RUnlock()

	out := make([]entity.TaskSummary, 0, len(a.taskSummaries))
	for _, s := range a.taskSummaries {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Title != out[j].Title {
			return out[i].Title < out[j].Title
		}
		return out[i].TaskID.String() < out[j].TaskID.String()
	})
	return out
}

// GetGoalSummaries returns a copy of all goal summaries, ordered by name.
func (a *PlannerAggregator) GetGoalSummaries() []entity.GoalSummary {
	a.mu.RLock()
	defer a.mu.RUnlock()

	out := make([]entity.GoalSummary, 0, len(a.goalSummaries))
	for _, s := range a.goalSummaries {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].GoalID.String() < out[j].GoalID.String()
	})
	return out
}

// GetHabitSummaries returns a copy of all habit summaries, ordered by name.
func (a *PlannerAggregator) GetHabitSummaries() []entity.HabitSummary {
	a.mu.RLock()
	defer a.mu.RUnlock()

	out := make([]entity.HabitSummary, 0, len(a.habitSummaries))
	for _, s := range a.habitSummaries {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].HabitID.String() < out[j].HabitID.String()
	})
	return out
}

// GetHomeSnapshot returns the latest published snapshot.
func (a *PlannerAggregator) GetHomeSnapshot() entity.HomeSnapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()

	snapshot := a.snapshot
	snapshot.Alerts.AtRiskGoals = append([]uuid.UUID(nil), a.snapshot.Alerts.AtRiskGoals...)
	return snapshot
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
