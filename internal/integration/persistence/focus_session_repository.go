// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/life-planner/backend/internal/application/adapter"
	"github.com/life-planner/backend/internal/domain/entity"
	"github.com/life-planner/backend/internal/integration/persistence/model"
)

// FocusSessionRepository stores focus sessions and serves the aggregator's
// daily-minutes accessor.
type FocusSessionRepository struct {
	db *gorm.DB
}

// NewFocusSessionRepository creates a new focus session repository instance.
func NewFocusSessionRepository(db *gorm.DB) *FocusSessionRepository {
	return &FocusSessionRepository{
		db: db,
	}
}

var _ adapter.FocusSessionReader = (*FocusSessionRepository)(nil)

// Create records a new focus session.
func (r *FocusSessionRepository) Create(ctx context.Context, session *entity.FocusSession) error {
	sessionModel := model.FocusSessionFromEntity(session)
	result := r.db.WithContext(ctx).Create(sessionModel)
	return result.Error
}

// Update saves changes to an existing focus session.
func (r *FocusSessionRepository) Update(ctx context.Context, session *entity.FocusSession) error {
	sessionModel := model.FocusSessionFromEntity(session)
	result := r.db.WithContext(ctx).Save(sessionModel)
	return result.Error
}

// TotalFocusMinutes returns the sum of completed focus minutes logged on the
// calendar day containing the given instant.
func (r *FocusSessionRepository) TotalFocusMinutes(ctx context.Context, day time.Time) (int, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.AddDate(0, 0, 1)

	var total int64
	result := r.db.WithContext(ctx).
		Model(&model.FocusSessionModel{}).
		Select("COALESCE(SUM(minutes), 0)").
		Where("completed_at IS NOT NULL AND completed_at >= ? AND completed_at < ?", dayStart, dayEnd).
		Scan(&total)
	if result.Error != nil {
		return 0, result.Error
	}
	return int(total), nil
}
