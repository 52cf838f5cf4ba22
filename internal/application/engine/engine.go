// Package engine implements the goal progress engine: event-driven
// incremental recomputation of per-goal derived progress state.
package engine

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/life-planner/backend/internal/application/adapter"
	"github.com/life-planner/backend/internal/application/registry"
	"github.com/life-planner/backend/internal/domain/entity"
	domainerror "github.com/life-planner/backend/internal/domain/error"
)

// etaSlackFraction is how far past the deadline a projected completion may
// land, as a fraction of the remaining window, before a goal drops from
// at_risk to behind.
const etaSlackFraction = 0.2

// etaHorizonDays bounds how far out a projection may land. A completion date
// further out carries no planning value, and a float day count that large
// overflows time.Duration into the past.
const etaHorizonDays = 365 * 100

// Config holds the engine's tunables.
type Config struct {
	// HistoryCapacity bounds the per-goal rolling sample buffer.
	HistoryCapacity int
}

// GoalProgressEngine derives GoalProgressRecords from goal definitions and
// raw domain facts. All derived state is owned exclusively by the engine;
// callers only ever receive copies.
type GoalProgressEngine struct {
	registry     *registry.GoalDefinitionRegistry
	transactions adapter.TransactionReader
	tasks        adapter.TaskReader
	habits       adapter.HabitReader
	converter    adapter.CurrencyConverter
	clock        adapter.Clock
	cfg          Config

	mu          sync.RWMutex
	records     map[uuid.UUID]entity.GoalProgressRecord
	histories   map[uuid.UUID]*history
	adjustments map[uuid.UUID]decimal.Decimal // accumulated manual nudges per goal
}

// New creates a progress engine over the given registry and fact readers.
func New(
	reg *registry.GoalDefinitionRegistry,
	transactions adapter.TransactionReader,
	tasks adapter.TaskReader,
	habits adapter.HabitReader,
	converter adapter.CurrencyConverter,
	clock adapter.Clock,
	cfg Config,
) *GoalProgressEngine {
	if cfg.HistoryCapacity <= 0 {
		cfg.HistoryCapacity = 256
	}

	return &GoalProgressEngine{
		registry:     reg,
		transactions: transactions,
		tasks:        tasks,
		habits:       habits,
		converter:    converter,
		clock:        clock,
		cfg:          cfg,
		records:      make(map[uuid.UUID]entity.GoalProgressRecord),
		histories:    make(map[uuid.UUID]*history),
		adjustments:  make(map[uuid.UUID]decimal.Decimal),
	}
}

// GetGoalProgress returns a copy of the latest progress record for the goal.
func (e *GoalProgressEngine) GetGoalProgress(goalID uuid.UUID) (*entity.GoalProgressRecord, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	rec, ok := e.records[goalID]
	if !ok {
		return nil, false
	}
	out := rec
	return &out, true
}

// OnEvent is the engine's only event-driven entry point. It maps the event
// to the set of affected goals and recomputes each one, deduplicated within
// a single dispatch. Unknown event kinds and goals with no registered
// definition are no-ops.
func (e *GoalProgressEngine) OnEvent(ctx context.Context, event entity.DomainEvent) {
	affected := e.affectedGoals(event)

	for goalID := range affected {
		if e.registry.Get(goalID) == nil {
			// The goal may have been removed since the event was emitted.
			continue
		}
		if err := e.Recompute(ctx, goalID); err != nil {
			slog.Warn("goal recompute failed", "goal_id", goalID, "kind", event.Kind, "error", err)
		}
	}
}

// affectedGoals resolves the event's explicit links to goal ids. It also
// applies event side effects that live inside the engine (manual adjustment
// accumulation, archived-goal cleanup).
func (e *GoalProgressEngine) affectedGoals(event entity.DomainEvent) map[uuid.UUID]struct{} {
	affected := make(map[uuid.UUID]struct{})
	add := func(id *uuid.UUID) {
		if id != nil {
			affected[*id] = struct{}{}
		}
	}

	switch event.Kind {
	case entity.EventGoalCreated, entity.EventGoalUpdated, entity.EventGoalCompleted, entity.EventGoalProgressUpdated:
		add(event.GoalID)

	case entity.EventGoalArchived:
		if event.GoalID != nil {
			e.dropGoal(*event.GoalID)
		}

	case entity.EventTaskCreated, entity.EventTaskUpdated, entity.EventTaskCompleted, entity.EventTaskCanceled:
		add(event.GoalID)

	case entity.EventHabitCreated, entity.EventHabitUpdated, entity.EventHabitDayEvaluated:
		add(event.GoalID)
		if event.HabitID != nil {
			for _, def := range e.registry.FindByHabit(*event.HabitID) {
				affected[def.ID] = struct{}{}
			}
		}

	case entity.EventTransactionCreated, entity.EventTransactionUpdated, entity.EventBudgetSpendingChanged:
		if event.BudgetID != nil {
			for _, def := range e.registry.FindByBudget(*event.BudgetID) {
				affected[def.ID] = struct{}{}
			}
		}

	case entity.EventDebtCreated, entity.EventDebtPaymentAdded, entity.EventDebtStatusChanged:
		add(event.GoalID)

	case entity.EventManualAdjustment:
		if event.GoalID != nil && event.Value != nil {
			e.recordAdjustment(*event.GoalID, *event.Value)
			affected[*event.GoalID] = struct{}{}
		}

	case entity.EventFocusStarted, entity.EventFocusCompleted:
		// Focus sessions feed the productivity ring, not goal progress.

	default:
		// Unknown kinds come from emitters this core does not control.
	}

	return affected
}

func (e *GoalProgressEngine) recordAdjustment(goalID uuid.UUID, delta decimal.Decimal) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.adjustments[goalID] = e.adjustments[goalID].Add(delta)
}

func (e *GoalProgressEngine) dropGoal(goalID uuid.UUID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.records, goalID)
	delete(e.histories, goalID)
	delete(e.adjustments, goalID)
}

// RecomputeAll recomputes every registered goal. Used on startup and by the
// periodic safety net.
func (e *GoalProgressEngine) RecomputeAll(ctx context.Context) {
	for _, def := range e.registry.List() {
		if err := e.Recompute(ctx, def.ID); err != nil {
			slog.Warn("goal recompute failed", "goal_id", def.ID, "error", err)
		}
	}
}

// Recompute rebuilds the goal's progress record from its definition and the
// current domain facts. The record is always replaced wholesale. Recomputing
// twice with unchanged facts yields identical records and leaves the sample
// history untouched.
func (e *GoalProgressEngine) Recompute(ctx context.Context, goalID uuid.UUID) error {
	def := e.registry.Get(goalID)
	if def == nil {
		return domainerror.NewDefinitionError(
			domainerror.ErrCodeDefinitionNotFound,
			"no definition registered for goal",
			domainerror.ErrDefinitionNotFound,
		)
	}

	now := e.clock.Now().UTC()

	current, convErr := e.currentValue(ctx, def)
	if convErr != nil {
		e.degradeRecord(def, now)
		slog.Warn("currency conversion unavailable, degrading goal to at_risk",
			"goal_id", def.ID, "error", convErr)
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	h, ok := e.histories[def.ID]
	if !ok {
		h = newHistory(e.cfg.HistoryCapacity)
		e.histories[def.ID] = h
	}
	h.observe(now, current)

	windowStart := now.AddDate(0, 0, -def.PacingWindowDays)
	h.prune(windowStart)

	windowValue, _ := h.valueAt(windowStart)
	pace := current.Sub(windowValue).Div(decimal.NewFromInt(int64(def.PacingWindowDays)))

	percent := computePercent(def, current)
	remaining := computeRemaining(def, current)
	eta := computeETA(def, current, pace, percent, now)

	rec := entity.GoalProgressRecord{
		GoalID:      def.ID,
		Current:     current,
		Percent:     percent,
		Remaining:   remaining,
		PaceActual:  pace,
		PaceCadence: def.Cadence,
		ETADate:     eta,
		ComputedAt:  now,
	}
	rec.Status = computeStatus(def, &rec, now)
	e.records[def.ID] = rec
	return nil
}

// degradeRecord handles an unresolvable currency conversion: the previous
// current/percent values are kept rather than fabricating a number, the
// status drops to at_risk and the projection is cleared.
func (e *GoalProgressEngine) degradeRecord(def *entity.GoalDefinition, now time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()

	rec, ok := e.records[def.ID]
	if !ok {
		rec = entity.GoalProgressRecord{
			GoalID:    def.ID,
			Current:   decimal.Zero,
			Remaining: computeRemaining(def, decimal.Zero),
		}
	}
	rec.Status = entity.GoalStatusAtRisk
	rec.ETADate = nil
	rec.PaceCadence = def.Cadence
	rec.ComputedAt = now
	e.records[def.ID] = rec
}

// currentValue sums the normalized contributions of the definition's tracks
// plus any accumulated manual adjustment. The only returned error is a
// missing conversion rate; fact-store read failures are logged and treated
// as empty contributions.
func (e *GoalProgressEngine) currentValue(ctx context.Context, def *entity.GoalDefinition) (decimal.Decimal, error) {
	current := decimal.Zero

	for _, track := range def.Tracks {
		switch track.Kind {
		case entity.TrackKindMoney:
			if !def.Sources.Finance || def.LinkedBudgetID == nil {
				continue
			}
			value, err := e.moneyContribution(ctx, def, *def.LinkedBudgetID)
			if err != nil {
				return decimal.Zero, err
			}
			current = current.Add(value)

		case entity.TrackKindTaskCount:
			if !def.Sources.Tasks {
				continue
			}
			current = current.Add(e.taskContribution(ctx, def.ID, track.Scope))

		case entity.TrackKindHabitStreak:
			if def.LinkedHabitID == nil {
				continue
			}
			current = current.Add(e.habitContribution(ctx, *def.LinkedHabitID, track.Unit))
		}
	}

	if def.Sources.Manual {
		e.mu.RLock()
		adj, ok := e.adjustments[def.ID]
		e.mu.RUnlock()
		if ok {
			current = current.Add(adj)
		}
	}

	return current, nil
}

func (e *GoalProgressEngine) moneyContribution(ctx context.Context, def *entity.GoalDefinition, budgetID uuid.UUID) (decimal.Decimal, error) {
	txs, err := e.transactions.ListTransactionsForBudget(ctx, budgetID)
	if err != nil {
		slog.Warn("transaction read failed", "goal_id", def.ID, "budget_id", budgetID, "error", err)
		return decimal.Zero, nil
	}

	total := decimal.Zero
	for _, tx := range txs {
		if tx.DeletedAt != nil {
			continue
		}
		amount := tx.Amount
		if tx.Currency != "" && tx.Currency != def.Currency {
			converted, err := e.converter.Convert(amount, tx.Currency, def.Currency)
			if err != nil {
				if errors.Is(err, domainerror.ErrMissingConversionRate) {
					return decimal.Zero, err
				}
				slog.Warn("currency conversion failed", "goal_id", def.ID, "error", err)
				continue
			}
			amount = converted
		}
		total = total.Add(amount)
	}
	return total, nil
}

func (e *GoalProgressEngine) taskContribution(ctx context.Context, goalID uuid.UUID, scope entity.TaskScope) decimal.Decimal {
	tasks, err := e.tasks.ListTasksForGoal(ctx, goalID)
	if err != nil {
		slog.Warn("task read failed", "goal_id", goalID, "error", err)
		return decimal.Zero
	}

	count := 0
	for _, t := range tasks {
		if t.DeletedAt != nil || t.Status == entity.TaskStatusCanceled {
			continue
		}
		if scope == entity.TaskScopeCompleted && !t.Completed() {
			continue
		}
		count++
	}
	return decimal.NewFromInt(int64(count))
}

func (e *GoalProgressEngine) habitContribution(ctx context.Context, habitID uuid.UUID, unit string) decimal.Decimal {
	habit, err := e.habits.GetHabit(ctx, habitID)
	if err != nil {
		slog.Warn("habit read failed", "habit_id", habitID, "error", err)
		return decimal.Zero
	}
	if habit == nil {
		return decimal.Zero
	}

	if unit == entity.HabitUnitCompletionRate {
		// Completion rate is exposed as a percentage so targets read naturally.
		return decimal.NewFromFloat(habit.CompletionRate30 * 100)
	}
	return decimal.NewFromInt(int64(habit.StreakCurrent))
}
