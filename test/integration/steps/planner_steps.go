// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/life-planner/backend/internal/application/aggregator"
	"github.com/life-planner/backend/internal/application/engine"
	"github.com/life-planner/backend/internal/application/eventbus"
	"github.com/life-planner/backend/internal/application/registry"
	"github.com/life-planner/backend/internal/domain/entity"
	"github.com/life-planner/backend/internal/infra/server/router"
	"github.com/life-planner/backend/internal/integration/adapters"
	"github.com/life-planner/backend/internal/integration/entrypoint/controller"
	"github.com/life-planner/backend/internal/integration/persistence"
	"github.com/life-planner/backend/internal/integration/persistence/model"
	"github.com/life-planner/backend/test/integration/mock"
)

type testContext struct {
	db       *mock.Db
	timeMock *mock.Time
	server   *httptest.Server
	client   *http.Client

	bus        *eventbus.Bus
	registry   *registry.GoalDefinitionRegistry
	engine     *engine.GoalProgressEngine
	aggregator *aggregator.PlannerAggregator
	currency   *adapters.RateTableCurrencyService

	transactions *persistence.TransactionRepository
	tasks        *persistence.TaskRepository
	habits       *persistence.HabitRepository

	goals   map[string]*entity.GoalDefinition
	budgets map[string]uuid.UUID
	taskIDs map[string]uuid.UUID

	response *response
}

type response struct {
	status int
	body   any
}

// InitializeScenario wires a fresh planner core with a controllable clock and
// a private in-memory database for every scenario, then registers the steps.
func InitializeScenario(ctx *godog.ScenarioContext) {
	test := &testContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		test.before()
		return ctx, nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if test.server != nil {
			test.server.Close()
		}
		return ctx, nil
	})

	// Background steps
	ctx.Given(`^the planner daemon is running$`, test.thePlannerDaemonIsRunning)
	ctx.Given(`^the current time is "([^"]*)"$`, test.theCurrentTimeIs)

	// Goal setup steps
	ctx.Given(`^a registered goal "([^"]*)" measuring money from "(-?\d+)" to "(-?\d+)" USD over a (\d+)-day pacing window$`, test.aRegisteredMoneyGoal)
	ctx.Given(`^the goal "([^"]*)" has a deadline (\d+) days from now$`, test.theGoalHasADeadlineDaysFromNow)
	ctx.Given(`^the exchange rate from "([^"]*)" to "([^"]*)" is "([^"]*)"$`, test.theExchangeRateIs)

	// Task and habit setup steps
	ctx.Given(`^an open task "([^"]*)" due today$`, test.anOpenTaskDueToday)
	ctx.Given(`^a habit "([^"]*)" with a (\d+)-day streak that was evaluated and completed today$`, test.aHabitEvaluatedAndCompleted)
	ctx.Given(`^a habit "([^"]*)" that was evaluated but not completed today$`, test.aHabitEvaluatedNotCompleted)

	// Event steps
	ctx.When(`^a transaction of "([^"]*)" "([A-Z]+)" is recorded against the goal "([^"]*)"$`, test.aTransactionIsRecorded)
	ctx.When(`^a manual adjustment of "([^"]*)" is applied to the goal "([^"]*)"$`, test.aManualAdjustmentIsApplied)
	ctx.When(`^the task "([^"]*)" is completed$`, test.theTaskIsCompleted)
	ctx.When(`^an event of kind "([^"]*)" is published$`, test.anEventOfKindIsPublished)
	ctx.When(`^the clock advances (\d+) days$`, test.theClockAdvancesDays)
	ctx.When(`^the periodic recompute runs$`, test.thePeriodicRecomputeRuns)

	// Request steps
	ctx.When(`^I request the progress of goal "([^"]*)"$`, test.iRequestTheProgressOfGoal)
	ctx.When(`^I request the progress of an unknown goal$`, test.iRequestTheProgressOfAnUnknownGoal)
	ctx.When(`^I request the home snapshot$`, test.iRequestTheHomeSnapshot)
	ctx.When(`^I request the goal summaries$`, test.iRequestTheGoalSummaries)
	ctx.When(`^I request the task summaries$`, test.iRequestTheTaskSummaries)
	ctx.When(`^I request the habit summaries$`, test.iRequestTheHabitSummaries)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should not exist$`, test.theResponseFieldShouldNotExist)
	ctx.Then(`^the response should list (\d+) entries$`, test.theResponseShouldListEntries)
	ctx.Then(`^the home snapshot should list (\d+) at-risk goals?$`, test.theHomeSnapshotShouldListAtRiskGoals)
}

func (t *testContext) before() {
	gin.SetMode(gin.TestMode)

	t.db = mock.NewDb(
		&model.TransactionModel{},
		&model.TaskModel{},
		&model.HabitModel{},
		&model.FocusSessionModel{},
	)
	t.timeMock = mock.NewTime()
	t.client = &http.Client{Timeout: 10 * time.Second}

	t.transactions = persistence.NewTransactionRepository(t.db.DbConn)
	t.tasks = persistence.NewTaskRepository(t.db.DbConn)
	t.habits = persistence.NewHabitRepository(t.db.DbConn)
	focusRepo := persistence.NewFocusSessionRepository(t.db.DbConn)

	t.currency = adapters.NewRateTableCurrencyService()
	financeRing := adapters.NewPassthroughFinanceRing()

	t.bus = eventbus.New()
	t.registry = registry.New()
	t.engine = engine.New(t.registry, t.transactions, t.tasks, t.habits, t.currency, t.timeMock, engine.Config{})
	t.aggregator = aggregator.New(t.engine, t.registry, t.tasks, t.habits, focusRepo, financeRing, t.timeMock, aggregator.Config{})

	// Engine before aggregator per kind, matching the production wiring.
	for _, kind := range entity.KnownEventKinds() {
		t.bus.Subscribe(kind, func(event entity.DomainEvent) {
			t.engine.OnEvent(context.Background(), event)
		})
		t.bus.Subscribe(kind, func(event entity.DomainEvent) {
			t.aggregator.OnEvent(context.Background(), event)
		})
	}

	healthController := controller.NewHealthController(func() bool { return true })
	plannerController := controller.NewPlannerController(t.engine, t.aggregator)
	r := router.NewRouter(healthController, plannerController)

	if t.server != nil {
		t.server.Close()
	}
	t.server = httptest.NewServer(r.Setup("test"))

	t.goals = make(map[string]*entity.GoalDefinition)
	t.budgets = make(map[string]uuid.UUID)
	t.taskIDs = make(map[string]uuid.UUID)
	t.response = nil
}

func (t *testContext) thePlannerDaemonIsRunning() error {
	resp, err := t.client.Get(t.server.URL + "/health")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned %d", resp.StatusCode)
	}
	return nil
}

func (t *testContext) theCurrentTimeIs(value string) error {
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return fmt.Errorf("invalid time %q: %w", value, err)
	}
	t.timeMock.SetCurrentTime(parsed)
	return nil
}

func (t *testContext) aRegisteredMoneyGoal(name string, baseline, target, windowDays int) error {
	budgetID := uuid.New()
	def := entity.NewGoalDefinition(
		name,
		entity.GoalTypeFinancial,
		decimal.NewFromInt(int64(baseline)),
		decimal.NewFromInt(int64(target)),
		"USD",
		[]entity.Track{{ID: "money", Kind: entity.TrackKindMoney, Target: decimal.NewFromInt(int64(target)), Unit: "USD", Currency: "USD"}},
	)
	def.Currency = "USD"
	def.PacingWindowDays = windowDays
	def.LinkedBudgetID = &budgetID

	if err := t.registry.Register(def); err != nil {
		return err
	}
	t.goals[name] = def
	t.budgets[name] = budgetID

	t.bus.Publish(entity.NewGoalEvent(entity.EventGoalCreated, def.ID))
	return nil
}

func (t *testContext) theGoalHasADeadlineDaysFromNow(name string, days int) error {
	def, ok := t.goals[name]
	if !ok {
		return fmt.Errorf("unknown goal %q", name)
	}

	// Definitions are immutable; changing one means re-registering it under
	// the same id.
	deadline := t.timeMock.Now().AddDate(0, 0, days)
	def.Deadline = &deadline
	if err := t.registry.Register(def); err != nil {
		return err
	}

	t.bus.Publish(entity.NewGoalEvent(entity.EventGoalUpdated, def.ID))
	return nil
}

func (t *testContext) theExchangeRateIs(from, to, rate string) error {
	parsed, err := decimal.NewFromString(rate)
	if err != nil {
		return fmt.Errorf("invalid rate %q: %w", rate, err)
	}
	t.currency.SetRate(from, to, parsed)
	return nil
}

func (t *testContext) anOpenTaskDueToday(title string) error {
	due := t.timeMock.Now().Add(2 * time.Hour)
	task := entity.NewTask(title, nil, &due)
	if err := t.tasks.Create(context.Background(), task); err != nil {
		return err
	}
	t.taskIDs[title] = task.ID

	t.bus.Publish(entity.NewTaskEvent(entity.EventTaskCreated, task.ID, nil))
	return nil
}

func (t *testContext) aHabitEvaluatedAndCompleted(name string, streak int) error {
	return t.createHabit(name, streak, true)
}

func (t *testContext) aHabitEvaluatedNotCompleted(name string) error {
	return t.createHabit(name, 0, false)
}

func (t *testContext) createHabit(name string, streak int, completed bool) error {
	habit := entity.NewHabit(name, nil)
	habit.StreakCurrent = streak
	habit.EvaluatedToday = true
	habit.CompletedToday = completed
	if err := t.habits.Create(context.Background(), habit); err != nil {
		return err
	}

	t.bus.Publish(entity.NewHabitEvent(entity.EventHabitDayEvaluated, habit.ID, nil))
	return nil
}

func (t *testContext) aTransactionIsRecorded(amount, currency, goalName string) error {
	budgetID, ok := t.budgets[goalName]
	if !ok {
		return fmt.Errorf("unknown goal %q", goalName)
	}
	parsed, err := decimal.NewFromString(amount)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", amount, err)
	}

	tx := entity.NewTransaction(&budgetID, t.timeMock.Now(), "scenario transaction", parsed, currency)
	if err := t.transactions.Create(context.Background(), tx); err != nil {
		return err
	}

	t.bus.Publish(entity.NewTransactionEvent(entity.EventTransactionCreated, tx.ID, &budgetID, parsed, currency))
	return nil
}

func (t *testContext) aManualAdjustmentIsApplied(amount, goalName string) error {
	def, ok := t.goals[goalName]
	if !ok {
		return fmt.Errorf("unknown goal %q", goalName)
	}
	parsed, err := decimal.NewFromString(amount)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", amount, err)
	}

	t.bus.Publish(entity.NewManualAdjustmentEvent(def.ID, parsed))
	return nil
}

func (t *testContext) theTaskIsCompleted(title string) error {
	taskID, ok := t.taskIDs[title]
	if !ok {
		return fmt.Errorf("unknown task %q", title)
	}

	task, err := t.tasks.FindByID(context.Background(), taskID)
	if err != nil {
		return err
	}
	if task == nil {
		return fmt.Errorf("task %q not stored", title)
	}

	now := t.timeMock.Now()
	task.Status = entity.TaskStatusCompleted
	task.CompletedAt = &now
	task.UpdatedAt = now
	if err := t.tasks.Update(context.Background(), task); err != nil {
		return err
	}

	t.bus.Publish(entity.NewTaskEvent(entity.EventTaskCompleted, task.ID, task.GoalID))
	return nil
}

func (t *testContext) anEventOfKindIsPublished(kind string) error {
	t.bus.Publish(entity.DomainEvent{
		Kind:       entity.EventKind(kind),
		OccurredAt: t.timeMock.Now(),
	})
	return nil
}

func (t *testContext) theClockAdvancesDays(days int) error {
	t.timeMock.Advance(time.Duration(days) * 24 * time.Hour)
	return nil
}

func (t *testContext) thePeriodicRecomputeRuns() error {
	ctx := context.Background()
	t.engine.RecomputeAll(ctx)
	t.aggregator.RecomputeAll(ctx)
	return nil
}

func (t *testContext) iRequestTheProgressOfGoal(name string) error {
	def, ok := t.goals[name]
	if !ok {
		return fmt.Errorf("unknown goal %q", name)
	}
	return t.get("/api/v1/goals/" + def.ID.String() + "/progress")
}

func (t *testContext) iRequestTheProgressOfAnUnknownGoal() error {
	return t.get("/api/v1/goals/" + uuid.NewString() + "/progress")
}

func (t *testContext) iRequestTheHomeSnapshot() error {
	return t.get("/api/v1/home")
}

func (t *testContext) iRequestTheGoalSummaries() error {
	return t.get("/api/v1/summaries/goals")
}

func (t *testContext) iRequestTheTaskSummaries() error {
	return t.get("/api/v1/summaries/tasks")
}

func (t *testContext) iRequestTheHabitSummaries() error {
	return t.get("/api/v1/summaries/habits")
}

func (t *testContext) get(path string) error {
	resp, err := t.client.Get(t.server.URL + path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{status: resp.StatusCode}

	var body any
	if err := json.Unmarshal(bodyBytes, &body); err != nil {
		t.response.body = string(bodyBytes)
	} else {
		t.response.body = body
	}
	return nil
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	value := getFieldValue(t.response.body, field)
	if value == nil {
		return fmt.Errorf("field %q not found in response: %v", field, t.response.body)
	}

	actualValue := fmt.Sprintf("%v", value)
	if actualValue != expectedValue {
		return fmt.Errorf("field %q expected %q, got %q", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if getFieldValue(t.response.body, field) == nil {
		return fmt.Errorf("field %q not found in response: %v", field, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldNotExist(field string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if value := getFieldValue(t.response.body, field); value != nil {
		return fmt.Errorf("field %q unexpectedly present with value %v", field, value)
	}
	return nil
}

func (t *testContext) theResponseShouldListEntries(quantity int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	list, ok := t.response.body.([]any)
	if !ok {
		return fmt.Errorf("response is not a JSON array: %v", t.response.body)
	}
	if len(list) != quantity {
		return fmt.Errorf("expected %d entries, got %d", quantity, len(list))
	}
	return nil
}

func (t *testContext) theHomeSnapshotShouldListAtRiskGoals(quantity int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	body, ok := t.response.body.(map[string]any)
	if !ok {
		return fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}
	atRisk, ok := body["at_risk_goals"].([]any)
	if !ok {
		return fmt.Errorf("at_risk_goals missing or not an array: %v", body)
	}
	if len(atRisk) != quantity {
		return fmt.Errorf("expected %d at-risk goals, got %d", quantity, len(atRisk))
	}
	return nil
}

// getFieldValue walks a dot-separated path through nested JSON objects and
// arrays ("rings.goals", "0.status").
func getFieldValue(object any, dotSeparatedField string) any {
	fields := strings.Split(dotSeparatedField, ".")
	field := object

	for _, currentField := range fields {
		if field == nil {
			return nil
		}

		if i, err := strconv.Atoi(currentField); err == nil {
			arr, ok := field.([]any)
			if !ok || i >= len(arr) {
				return nil
			}
			field = arr[i]
			continue
		}

		m, ok := field.(map[string]any)
		if !ok {
			return nil
		}
		field = m[currentField]
	}

	return field
}
