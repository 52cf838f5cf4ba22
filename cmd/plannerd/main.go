// Package main is the entry point for the Life Planner daemon. It hosts the
// in-process planner core behind a read-only HTTP surface.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/life-planner/backend/config"
	"github.com/life-planner/backend/internal/infra/db"
	"github.com/life-planner/backend/internal/infra/dependency"
	"github.com/life-planner/backend/internal/infra/scheduler"
	"github.com/life-planner/backend/internal/integration/notifier"
	"github.com/life-planner/backend/internal/integration/persistence/model"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg := config.Load()

	slog.Info("Starting Life Planner daemon",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	// Initialize database connection
	database, err := db.NewSQLiteConnection(&cfg.Database)
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	// Run database migrations
	if err := database.AutoMigrate(
		&model.TransactionModel{},
		&model.TaskModel{},
		&model.HabitModel{},
		&model.FocusSessionModel{},
	); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database migrations completed successfully")

	// Wire dependencies
	injector := dependency.NewInjector(cfg, database.DB())

	// Optional snapshot-changed notifier for companion processes
	if cfg.Redis.Enabled {
		redisNotifier, err := notifier.NewRedisSnapshotNotifier(cfg.Redis.URL, cfg.Redis.Channel)
		if err != nil {
			slog.Warn("Snapshot notifier disabled", "error", err)
		} else {
			injector.Aggregator.Subscribe(redisNotifier.OnSnapshot)
			defer func() {
				if err := redisNotifier.Close(); err != nil {
					slog.Error("Failed to close snapshot notifier", "error", err)
				}
			}()
		}
	}

	// Initial full rebuild so readers never see an empty dashboard
	startupCtx := context.Background()
	injector.Engine.RecomputeAll(startupCtx)
	injector.Aggregator.RecomputeAll(startupCtx)

	// Safety-net rebuild schedule
	if cfg.Scheduler.Enabled {
		sched := scheduler.New(injector.Engine, injector.Aggregator)
		if err := sched.Register(cfg.Scheduler.RecomputeCron); err != nil {
			slog.Error("Failed to register safety-net schedule", "error", err)
			os.Exit(1)
		}
		sched.Start()
		defer sched.Stop()
	}

	// Start HTTP server
	engine := injector.Router.Setup(cfg.Server.Environment)
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		slog.Info("HTTP server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}
}
