// Package engine implements the goal progress engine.
package engine

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/life-planner/backend/internal/application/registry"
	"github.com/life-planner/backend/internal/domain/entity"
	domainerror "github.com/life-planner/backend/internal/domain/error"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type fakeTransactionReader struct {
	txs map[uuid.UUID][]*entity.Transaction
}

func (r *fakeTransactionReader) ListTransactionsForBudget(_ context.Context, budgetID uuid.UUID) ([]*entity.Transaction, error) {
	return r.txs[budgetID], nil
}

func (r *fakeTransactionReader) add(budgetID uuid.UUID, amount decimal.Decimal, currency string) {
	bid := budgetID
	r.txs[budgetID] = append(r.txs[budgetID], &entity.Transaction{
		ID:       uuid.New(),
		BudgetID: &bid,
		Amount:   amount,
		Currency: currency,
	})
}

type fakeTaskReader struct {
	tasks []*entity.Task
}

func (r *fakeTaskReader) FindByID(_ context.Context, id uuid.UUID) (*entity.Task, error) {
	for _, t := range r.tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, nil
}

func (r *fakeTaskReader) ListTasksForGoal(_ context.Context, goalID uuid.UUID) ([]*entity.Task, error) {
	var out []*entity.Task
	for _, t := range r.tasks {
		if t.GoalID != nil && *t.GoalID == goalID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTaskReader) ListActiveTasks(_ context.Context) ([]*entity.Task, error) {
	var out []*entity.Task
	for _, t := range r.tasks {
		if t.Status != entity.TaskStatusCanceled {
			out = append(out, t)
		}
	}
	return out, nil
}

type fakeHabitReader struct {
	habits map[uuid.UUID]*entity.Habit
}

func (r *fakeHabitReader) GetHabit(_ context.Context, id uuid.UUID) (*entity.Habit, error) {
	return r.habits[id], nil
}

func (r *fakeHabitReader) ListHabits(_ context.Context) ([]*entity.Habit, error) {
	var out []*entity.Habit
	for _, h := range r.habits {
		out = append(out, h)
	}
	return out, nil
}

type fakeConverter struct {
	rates map[string]decimal.Decimal // keyed "FROM/TO"
}

func (c *fakeConverter) Convert(amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	if from == to {
		return amount, nil
	}
	rate, ok := c.rates[from+"/"+to]
	if !ok {
		return decimal.Zero, domainerror.NewProgressError(
			domainerror.ErrCodeMissingConversionRate,
			"no rate for "+from+"/"+to,
			domainerror.ErrMissingConversionRate,
		)
	}
	return amount.Mul(rate), nil
}

type engineFixture struct {
	engine   *GoalProgressEngine
	registry *registry.GoalDefinitionRegistry
	txs      *fakeTransactionReader
	tasks    *fakeTaskReader
	habits   *fakeHabitReader
	rates    *fakeConverter
	clock    *fakeClock
}

func newFixture() *engineFixture {
	reg := registry.New()
	txs := &fakeTransactionReader{txs: make(map[uuid.UUID][]*entity.Transaction)}
	tasks := &fakeTaskReader{}
	habits := &fakeHabitReader{habits: make(map[uuid.UUID]*entity.Habit)}
	rates := &fakeConverter{rates: make(map[string]decimal.Decimal)}
	clock := &fakeClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}

	return &engineFixture{
		engine:   New(reg, txs, tasks, habits, rates, clock, Config{}),
		registry: reg,
		txs:      txs,
		tasks:    tasks,
		habits:   habits,
		rates:    rates,
		clock:    clock,
	}
}

// moneyGoal registers a 0→1000 USD savings goal over a 5-day pacing window
// and returns it together with its linked budget id.
func (f *engineFixture) moneyGoal(t *testing.T, deadline *time.Time) (*entity.GoalDefinition, uuid.UUID) {
	t.Helper()

	budgetID := uuid.New()
	def := entity.NewGoalDefinition(
		"Emergency fund",
		entity.GoalTypeFinancial,
		decimal.Zero,
		decimal.NewFromInt(1000),
		"USD",
		[]entity.Track{{ID: "savings", Kind: entity.TrackKindMoney, Target: decimal.NewFromInt(1000), Unit: "USD", Currency: "USD"}},
	)
	def.Currency = "USD"
	def.PacingWindowDays = 5
	def.Deadline = deadline
	def.LinkedBudgetID = &budgetID

	if err := f.registry.Register(def); err != nil {
		t.Fatalf("definition registration failed: %v", err)
	}
	return def, budgetID
}

func TestEngine_MoneyGoalProgress(t *testing.T) {
	f := newFixture()
	def, budgetID := f.moneyGoal(t, nil)

	f.txs.add(budgetID, decimal.NewFromInt(500), "USD")
	if err := f.engine.Recompute(context.Background(), def.ID); err != nil {
		t.Fatalf("recompute failed: %v", err)
	}

	rec, ok := f.engine.GetGoalProgress(def.ID)
	if !ok {
		t.Fatal("expected a progress record")
	}
	if !rec.Current.Equal(decimal.NewFromInt(500)) {
		t.Errorf("expected current 500, got %v", rec.Current)
	}
	if rec.Percent != 50 {
		t.Errorf("expected percent 50, got %v", rec.Percent)
	}
	if !rec.Remaining.Equal(decimal.NewFromInt(500)) {
		t.Errorf("expected remaining 500, got %v", rec.Remaining)
	}
	if rec.Status != entity.GoalStatusOnTrack {
		t.Errorf("expected on_track without a deadline, got %v", rec.Status)
	}
	if rec.ETADate != nil {
		t.Error("expected no projection on the first sample")
	}
}

func TestEngine_PaceProjectionAndStatus(t *testing.T) {
	f := newFixture()

	t.Run("too slow for the deadline is behind", func(t *testing.T) {
		// +10/day over a 5-day window, 500 still to go: fifty days out
		// against a deadline ten days away.
		deadline := f.clock.now.AddDate(0, 0, 15)
		def, budgetID := f.moneyGoal(t, &deadline)

		f.txs.add(budgetID, decimal.NewFromInt(450), "USD")
		if err := f.engine.Recompute(context.Background(), def.ID); err != nil {
			t.Fatalf("recompute failed: %v", err)
		}

		f.clock.Advance(5 * 24 * time.Hour)
		f.txs.add(budgetID, decimal.NewFromInt(50), "USD")
		if err := f.engine.Recompute(context.Background(), def.ID); err != nil {
			t.Fatalf("recompute failed: %v", err)
		}

		rec, _ := f.engine.GetGoalProgress(def.ID)
		if !rec.PaceActual.Equal(decimal.NewFromInt(10)) {
			t.Errorf("expected pace 10/day, got %v", rec.PaceActual)
		}
		if rec.ETADate == nil {
			t.Fatal("expected a projected completion date")
		}
		wantETA := f.clock.now.AddDate(0, 0, 50)
		if !rec.ETADate.Equal(wantETA) {
			t.Errorf("expected ETA %v, got %v", wantETA, rec.ETADate)
		}
		if rec.Status != entity.GoalStatusBehind {
			t.Errorf("expected behind, got %v", rec.Status)
		}
	})

	t.Run("slight overshoot within slack is at_risk", func(t *testing.T) {
		// +46/day leaves ~10.9 days to finish against a 10-day deadline;
		// the overshoot is under 20% of the remaining window.
		deadline := f.clock.now.AddDate(0, 0, 15)
		def, budgetID := f.moneyGoal(t, &deadline)

		f.txs.add(budgetID, decimal.NewFromInt(270), "USD")
		if err := f.engine.Recompute(context.Background(), def.ID); err != nil {
			t.Fatalf("recompute failed: %v", err)
		}

		f.clock.Advance(5 * 24 * time.Hour)
		f.txs.add(budgetID, decimal.NewFromInt(230), "USD")
		if err := f.engine.Recompute(context.Background(), def.ID); err != nil {
			t.Fatalf("recompute failed: %v", err)
		}

		rec, _ := f.engine.GetGoalProgress(def.ID)
		if rec.Status != entity.GoalStatusAtRisk {
			t.Errorf("expected at_risk, got %v", rec.Status)
		}
	})

	t.Run("projection within the deadline is on_track", func(t *testing.T) {
		deadline := f.clock.now.AddDate(0, 0, 15)
		def, budgetID := f.moneyGoal(t, &deadline)

		f.txs.add(budgetID, decimal.NewFromInt(200), "USD")
		if err := f.engine.Recompute(context.Background(), def.ID); err != nil {
			t.Fatalf("recompute failed: %v", err)
		}

		f.clock.Advance(5 * 24 * time.Hour)
		f.txs.add(budgetID, decimal.NewFromInt(400), "USD")
		if err := f.engine.Recompute(context.Background(), def.ID); err != nil {
			t.Fatalf("recompute failed: %v", err)
		}

		// +80/day with 400 to go: five days out against ten remaining.
		rec, _ := f.engine.GetGoalProgress(def.ID)
		if rec.Status != entity.GoalStatusOnTrack {
			t.Errorf("expected on_track, got %v", rec.Status)
		}
	})
}

func TestEngine_PercentBounds(t *testing.T) {
	f := newFixture()

	t.Run("overshoot clamps to 100 and clears projection", func(t *testing.T) {
		deadline := f.clock.now.AddDate(0, 0, 2)
		def, budgetID := f.moneyGoal(t, &deadline)

		f.txs.add(budgetID, decimal.NewFromInt(1500), "USD")
		if err := f.engine.Recompute(context.Background(), def.ID); err != nil {
			t.Fatalf("recompute failed: %v", err)
		}

		rec, _ := f.engine.GetGoalProgress(def.ID)
		if rec.Percent != 100 {
			t.Errorf("expected percent clamped to 100, got %v", rec.Percent)
		}
		if rec.Status != entity.GoalStatusOnTrack {
			t.Errorf("expected a completed goal to be on_track, got %v", rec.Status)
		}
		if rec.ETADate != nil {
			t.Error("expected no ETA at or past target")
		}
		if !rec.Remaining.Equal(decimal.Zero) {
			t.Errorf("expected remaining floored at zero, got %v", rec.Remaining)
		}
	})

	t.Run("regression below baseline clamps to 0", func(t *testing.T) {
		def, budgetID := f.moneyGoal(t, nil)

		f.txs.add(budgetID, decimal.NewFromInt(-200), "USD")
		if err := f.engine.Recompute(context.Background(), def.ID); err != nil {
			t.Fatalf("recompute failed: %v", err)
		}

		rec, _ := f.engine.GetGoalProgress(def.ID)
		if rec.Percent != 0 {
			t.Errorf("expected percent clamped to 0, got %v", rec.Percent)
		}
	})
}

func TestEngine_InverseGoal(t *testing.T) {
	f := newFixture()

	budgetID := uuid.New()
	def := entity.NewGoalDefinition(
		"Pay off card",
		entity.GoalTypeFinancial,
		decimal.NewFromInt(1000),
		decimal.Zero,
		"USD",
		[]entity.Track{{ID: "balance", Kind: entity.TrackKindMoney, Target: decimal.Zero, Unit: "USD", Currency: "USD"}},
	)
	def.Currency = "USD"
	def.LinkedBudgetID = &budgetID
	if err := f.registry.Register(def); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	f.txs.add(budgetID, decimal.NewFromInt(400), "USD")
	if err := f.engine.Recompute(context.Background(), def.ID); err != nil {
		t.Fatalf("recompute failed: %v", err)
	}

	rec, _ := f.engine.GetGoalProgress(def.ID)
	if rec.Percent != 60 {
		t.Errorf("expected 60 percent paid down, got %v", rec.Percent)
	}
	if !rec.Remaining.Equal(decimal.NewFromInt(400)) {
		t.Errorf("expected remaining 400, got %v", rec.Remaining)
	}
}

func TestEngine_CurrencyNormalization(t *testing.T) {
	f := newFixture()
	def, budgetID := f.moneyGoal(t, nil)

	f.rates.rates["EUR/USD"] = decimal.NewFromFloat(1.25)
	f.txs.add(budgetID, decimal.NewFromInt(400), "EUR")
	if err := f.engine.Recompute(context.Background(), def.ID); err != nil {
		t.Fatalf("recompute failed: %v", err)
	}

	rec, _ := f.engine.GetGoalProgress(def.ID)
	if !rec.Current.Equal(decimal.NewFromInt(500)) {
		t.Errorf("expected 400 EUR to normalize to 500 USD, got %v", rec.Current)
	}
}

func TestEngine_MissingRateDegrades(t *testing.T) {
	f := newFixture()
	def, budgetID := f.moneyGoal(t, nil)

	f.txs.add(budgetID, decimal.NewFromInt(500), "USD")
	if err := f.engine.Recompute(context.Background(), def.ID); err != nil {
		t.Fatalf("recompute failed: %v", err)
	}

	// A new transaction in a currency with no rate: the previous numbers
	// must be kept rather than fabricated, with the status degraded.
	f.txs.add(budgetID, decimal.NewFromInt(100), "CHF")
	if err := f.engine.Recompute(context.Background(), def.ID); err != nil {
		t.Fatalf("recompute failed: %v", err)
	}

	rec, _ := f.engine.GetGoalProgress(def.ID)
	if !rec.Current.Equal(decimal.NewFromInt(500)) {
		t.Errorf("expected previous current 500 to be kept, got %v", rec.Current)
	}
	if rec.Percent != 50 {
		t.Errorf("expected previous percent 50 to be kept, got %v", rec.Percent)
	}
	if rec.Status != entity.GoalStatusAtRisk {
		t.Errorf("expected at_risk degradation, got %v", rec.Status)
	}
	if rec.ETADate != nil {
		t.Error("expected projection cleared on degradation")
	}
}

func TestEngine_RecomputeIdempotent(t *testing.T) {
	f := newFixture()
	def, budgetID := f.moneyGoal(t, nil)

	f.txs.add(budgetID, decimal.NewFromInt(500), "USD")
	if err := f.engine.Recompute(context.Background(), def.ID); err != nil {
		t.Fatalf("recompute failed: %v", err)
	}
	first, _ := f.engine.GetGoalProgress(def.ID)

	if err := f.engine.Recompute(context.Background(), def.ID); err != nil {
		t.Fatalf("second recompute failed: %v", err)
	}
	second, _ := f.engine.GetGoalProgress(def.ID)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("expected identical records, got %+v vs %+v", first, second)
	}
	if n := len(f.engine.histories[def.ID].samples); n != 1 {
		t.Errorf("expected one history sample after repeated recompute, got %d", n)
	}
}

func TestEngine_ReRegistrationRoundTrip(t *testing.T) {
	f := newFixture()
	def, budgetID := f.moneyGoal(t, nil)

	f.txs.add(budgetID, decimal.NewFromInt(500), "USD")
	if err := f.engine.Recompute(context.Background(), def.ID); err != nil {
		t.Fatalf("recompute failed: %v", err)
	}
	before, _ := f.engine.GetGoalProgress(def.ID)

	t.Run("re-registering the same definition is a derived-state no-op", func(t *testing.T) {
		if err := f.registry.Register(def); err != nil {
			t.Fatalf("re-registration failed: %v", err)
		}
		if err := f.engine.Recompute(context.Background(), def.ID); err != nil {
			t.Fatalf("recompute failed: %v", err)
		}
		after, _ := f.engine.GetGoalProgress(def.ID)
		if !reflect.DeepEqual(before, after) {
			t.Errorf("expected unchanged record, got %+v vs %+v", before, after)
		}
		if n := len(f.engine.histories[def.ID].samples); n != 1 {
			t.Errorf("expected no duplicate history samples, got %d", n)
		}
	})

	t.Run("unregister then re-register restores the same record", func(t *testing.T) {
		f.registry.Remove(def.ID)
		if err := f.registry.Register(def); err != nil {
			t.Fatalf("re-registration failed: %v", err)
		}
		if err := f.engine.Recompute(context.Background(), def.ID); err != nil {
			t.Fatalf("recompute failed: %v", err)
		}
		after, _ := f.engine.GetGoalProgress(def.ID)
		if !reflect.DeepEqual(before, after) {
			t.Errorf("expected restored record, got %+v vs %+v", before, after)
		}
	})
}

func TestEngine_TaskCountTrack(t *testing.T) {
	f := newFixture()

	def := entity.NewGoalDefinition(
		"Ship side project",
		entity.GoalTypeQuantitative,
		decimal.Zero,
		decimal.NewFromInt(10),
		"tasks",
		[]entity.Track{{ID: "milestones", Kind: entity.TrackKindTaskCount, Target: decimal.NewFromInt(10), Unit: "tasks", Scope: entity.TaskScopeCompleted}},
	)
	if err := f.registry.Register(def); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	goalID := def.ID
	done := time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC)
	f.tasks.tasks = []*entity.Task{
		{ID: uuid.New(), GoalID: &goalID, Status: entity.TaskStatusCompleted, CompletedAt: &done},
		{ID: uuid.New(), GoalID: &goalID, Status: entity.TaskStatusCompleted, CompletedAt: &done},
		{ID: uuid.New(), GoalID: &goalID, Status: entity.TaskStatusOpen},
		{ID: uuid.New(), GoalID: &goalID, Status: entity.TaskStatusCanceled},
		{ID: uuid.New(), Status: entity.TaskStatusCompleted, CompletedAt: &done}, // unlinked
	}

	if err := f.engine.Recompute(context.Background(), def.ID); err != nil {
		t.Fatalf("recompute failed: %v", err)
	}

	rec, _ := f.engine.GetGoalProgress(def.ID)
	if !rec.Current.Equal(decimal.NewFromInt(2)) {
		t.Errorf("expected 2 completed tasks counted, got %v", rec.Current)
	}
	if rec.Percent != 20 {
		t.Errorf("expected percent 20, got %v", rec.Percent)
	}
}

func TestEngine_HabitStreakTrack(t *testing.T) {
	f := newFixture()

	habitID := uuid.New()
	f.habits.habits[habitID] = &entity.Habit{ID: habitID, Name: "Meditate", StreakCurrent: 12, CompletionRate30: 0.8}

	t.Run("streak unit reads the current streak", func(t *testing.T) {
		def := entity.NewGoalDefinition(
			"30-day streak",
			entity.GoalTypeSkill,
			decimal.Zero,
			decimal.NewFromInt(30),
			"days",
			[]entity.Track{{ID: "streak", Kind: entity.TrackKindHabitStreak, Target: decimal.NewFromInt(30), Unit: entity.HabitUnitStreakDays}},
		)
		def.LinkedHabitID = &habitID
		if err := f.registry.Register(def); err != nil {
			t.Fatalf("registration failed: %v", err)
		}
		if err := f.engine.Recompute(context.Background(), def.ID); err != nil {
			t.Fatalf("recompute failed: %v", err)
		}

		rec, _ := f.engine.GetGoalProgress(def.ID)
		if !rec.Current.Equal(decimal.NewFromInt(12)) {
			t.Errorf("expected streak 12, got %v", rec.Current)
		}
	})

	t.Run("completion rate unit reads the 30-day rate", func(t *testing.T) {
		def := entity.NewGoalDefinition(
			"Consistency",
			entity.GoalTypeSkill,
			decimal.Zero,
			decimal.NewFromInt(90),
			"percent",
			[]entity.Track{{ID: "rate", Kind: entity.TrackKindHabitStreak, Target: decimal.NewFromInt(90), Unit: entity.HabitUnitCompletionRate}},
		)
		def.LinkedHabitID = &habitID
		if err := f.registry.Register(def); err != nil {
			t.Fatalf("registration failed: %v", err)
		}
		if err := f.engine.Recompute(context.Background(), def.ID); err != nil {
			t.Fatalf("recompute failed: %v", err)
		}

		rec, _ := f.engine.GetGoalProgress(def.ID)
		if !rec.Current.Equal(decimal.NewFromInt(80)) {
			t.Errorf("expected completion rate 80, got %v", rec.Current)
		}
	})
}

func TestEngine_ManualAdjustment(t *testing.T) {
	f := newFixture()
	def, budgetID := f.moneyGoal(t, nil)

	f.txs.add(budgetID, decimal.NewFromInt(500), "USD")
	f.engine.OnEvent(context.Background(), entity.NewManualAdjustmentEvent(def.ID, decimal.NewFromInt(30)))
	f.engine.OnEvent(context.Background(), entity.NewManualAdjustmentEvent(def.ID, decimal.NewFromInt(20)))

	rec, _ := f.engine.GetGoalProgress(def.ID)
	if !rec.Current.Equal(decimal.NewFromInt(550)) {
		t.Errorf("expected adjustments to accumulate to 550, got %v", rec.Current)
	}
}

func TestEngine_OnEvent(t *testing.T) {
	f := newFixture()

	t.Run("budget event recomputes linked goals", func(t *testing.T) {
		def, budgetID := f.moneyGoal(t, nil)
		f.txs.add(budgetID, decimal.NewFromInt(250), "USD")

		f.engine.OnEvent(context.Background(), entity.NewTransactionEvent(
			entity.EventTransactionCreated, uuid.New(), &budgetID, decimal.NewFromInt(250), "USD"))

		rec, ok := f.engine.GetGoalProgress(def.ID)
		if !ok || !rec.Current.Equal(decimal.NewFromInt(250)) {
			t.Errorf("expected linked goal recomputed to 250, got %v", rec)
		}
	})

	t.Run("task event without goal link recomputes nothing", func(t *testing.T) {
		before := len(f.engine.records)
		f.engine.OnEvent(context.Background(), entity.NewTaskEvent(entity.EventTaskCompleted, uuid.New(), nil))
		if len(f.engine.records) != before {
			t.Error("expected no goal recomputation for an unlinked task")
		}
	})

	t.Run("event for an unregistered goal is a no-op", func(t *testing.T) {
		before := len(f.engine.records)
		f.engine.OnEvent(context.Background(), entity.NewGoalEvent(entity.EventGoalUpdated, uuid.New()))
		if len(f.engine.records) != before {
			t.Error("expected no record for an unknown goal")
		}
	})

	t.Run("unknown event kinds are ignored", func(t *testing.T) {
		before := len(f.engine.records)
		f.engine.OnEvent(context.Background(), entity.DomainEvent{Kind: "calendar.meeting_scheduled"})
		if len(f.engine.records) != before {
			t.Error("expected unknown kind to be a no-op")
		}
	})

	t.Run("archiving drops derived state", func(t *testing.T) {
		def, budgetID := f.moneyGoal(t, nil)
		f.txs.add(budgetID, decimal.NewFromInt(100), "USD")
		if err := f.engine.Recompute(context.Background(), def.ID); err != nil {
			t.Fatalf("recompute failed: %v", err)
		}

		f.engine.OnEvent(context.Background(), entity.NewGoalEvent(entity.EventGoalArchived, def.ID))
		if _, ok := f.engine.GetGoalProgress(def.ID); ok {
			t.Error("expected record dropped after archive")
		}
	})
}

func TestEngine_GlacialPaceClearsProjection(t *testing.T) {
	f := newFixture()
	deadline := f.clock.now.AddDate(0, 0, 10)
	def, budgetID := f.moneyGoal(t, &deadline)

	// One cent gained per 5-day window: completion is half a million days
	// out, far past any horizon a projection is worth reporting for.
	f.txs.add(budgetID, decimal.RequireFromString("0.01"), "USD")
	if err := f.engine.Recompute(context.Background(), def.ID); err != nil {
		t.Fatalf("recompute failed: %v", err)
	}

	f.clock.Advance(5 * 24 * time.Hour)
	f.txs.add(budgetID, decimal.RequireFromString("0.01"), "USD")
	if err := f.engine.Recompute(context.Background(), def.ID); err != nil {
		t.Fatalf("recompute failed: %v", err)
	}

	rec, ok := f.engine.GetGoalProgress(def.ID)
	if !ok {
		t.Fatal("expected a progress record")
	}
	if !rec.PaceActual.Equal(decimal.RequireFromString("0.002")) {
		t.Errorf("expected pace 0.002/day, got %v", rec.PaceActual)
	}
	if rec.ETADate != nil {
		t.Errorf("expected no projection at a glacial pace, got %v", rec.ETADate)
	}
	if rec.Status != entity.GoalStatusBehind {
		t.Errorf("expected behind against the deadline, got %v", rec.Status)
	}
}

func TestEngine_PercentAlwaysInBounds(t *testing.T) {
	f := newFixture()
	def, budgetID := f.moneyGoal(t, nil)

	amounts := []int64{-500, 100, 900, 2000, -3000, 750}
	for _, amount := range amounts {
		f.txs.add(budgetID, decimal.NewFromInt(amount), "USD")
		if err := f.engine.Recompute(context.Background(), def.ID); err != nil {
			t.Fatalf("recompute failed: %v", err)
		}
		rec, _ := f.engine.GetGoalProgress(def.ID)
		if rec.Percent < 0 || rec.Percent > 100 {
			t.Errorf("percent %v out of bounds after amount %d", rec.Percent, amount)
		}
	}
}
