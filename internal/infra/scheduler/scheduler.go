// Package scheduler runs the periodic safety-net recompute. Event-driven
// recompute keeps derived state fresh in the normal case; the cron rebuild
// catches anything a missed or malformed event left stale.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/life-planner/backend/internal/application/aggregator"
	"github.com/life-planner/backend/internal/application/engine"
)

// Scheduler manages the cron-driven full rebuild.
type Scheduler struct {
	cron       *cron.Cron
	engine     *engine.GoalProgressEngine
	aggregator *aggregator.PlannerAggregator
}

// New creates a scheduler over the engine and aggregator.
func New(eng *engine.GoalProgressEngine, agg *aggregator.PlannerAggregator) *Scheduler {
	return &Scheduler{
		cron:       cron.New(),
		engine:     eng,
		aggregator: agg,
	}
}

// Register adds the full-rebuild job with the given cron spec.
func (s *Scheduler) Register(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.fullRebuild); err != nil {
		return fmt.Errorf("register recompute job: %w", err)
	}
	return nil
}

// Start launches the cron loop.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the cron loop and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Scheduler) fullRebuild() {
	ctx := context.Background()
	s.engine.RecomputeAll(ctx)
	s.aggregator.RecomputeAll(ctx)
	slog.Info("safety-net rebuild completed")
}
