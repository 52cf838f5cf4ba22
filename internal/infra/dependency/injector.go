// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"

	"gorm.io/gorm"

	"github.com/life-planner/backend/config"
	"github.com/life-planner/backend/internal/application/aggregator"
	"github.com/life-planner/backend/internal/application/engine"
	"github.com/life-planner/backend/internal/application/eventbus"
	"github.com/life-planner/backend/internal/application/registry"
	"github.com/life-planner/backend/internal/domain/entity"
	"github.com/life-planner/backend/internal/infra/server/router"
	"github.com/life-planner/backend/internal/integration/adapters"
	"github.com/life-planner/backend/internal/integration/entrypoint/controller"
	"github.com/life-planner/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	Router *router.Router

	Bus        *eventbus.Bus
	Registry   *registry.GoalDefinitionRegistry
	Engine     *engine.GoalProgressEngine
	Aggregator *aggregator.PlannerAggregator

	Transactions  *persistence.TransactionRepository
	Tasks         *persistence.TaskRepository
	Habits        *persistence.HabitRepository
	FocusSessions *persistence.FocusSessionRepository

	Currency    *adapters.RateTableCurrencyService
	FinanceRing *adapters.PassthroughFinanceRing
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB) *Injector {
	// Create repositories
	transactionRepo := persistence.NewTransactionRepository(db)
	taskRepo := persistence.NewTaskRepository(db)
	habitRepo := persistence.NewHabitRepository(db)
	focusRepo := persistence.NewFocusSessionRepository(db)

	// Create adapters/services
	clock := adapters.NewSystemClock()
	currency := adapters.NewRateTableCurrencyService()
	financeRing := adapters.NewPassthroughFinanceRing()

	// Create the computational core
	bus := eventbus.New()
	reg := registry.New()
	eng := engine.New(reg, transactionRepo, taskRepo, habitRepo, currency, clock, engine.Config{
		HistoryCapacity: cfg.Engine.HistoryCapacity,
	})
	agg := aggregator.New(eng, reg, taskRepo, habitRepo, focusRepo, financeRing, clock, aggregator.Config{
		AtRiskPercentThreshold:  cfg.Planner.AtRiskPercentThreshold,
		DeadlineHorizonDays:     cfg.Planner.DeadlineHorizonDays,
		DailyFocusTargetMinutes: cfg.Planner.DailyFocusTargetMinutes,
	})

	// Subscription order matters: the engine must refresh progress records
	// before the aggregator reads them for the same event.
	for _, kind := range entity.KnownEventKinds() {
		bus.Subscribe(kind, func(event entity.DomainEvent) {
			eng.OnEvent(context.Background(), event)
		})
		bus.Subscribe(kind, func(event entity.DomainEvent) {
			agg.OnEvent(context.Background(), event)
		})
	}

	// Create controllers
	healthController := controller.NewHealthController(func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	})
	plannerController := controller.NewPlannerController(eng, agg)

	r := router.NewRouter(healthController, plannerController)

	return &Injector{
		Config:        cfg,
		DB:            db,
		Router:        r,
		Bus:           bus,
		Registry:      reg,
		Engine:        eng,
		Aggregator:    agg,
		Transactions:  transactionRepo,
		Tasks:         taskRepo,
		Habits:        habitRepo,
		FocusSessions: focusRepo,
		Currency:      currency,
		FinanceRing:   financeRing,
	}
}
