// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/life-planner/backend/internal/domain/entity"
)

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// GoalProgressResponse represents one goal's derived progress state.
type GoalProgressResponse struct {
	GoalID      string  `json:"goal_id"`
	Current     string  `json:"current"`
	Percent     float64 `json:"percent"`
	Remaining   string  `json:"remaining"`
	PaceActual  string  `json:"pace_actual"`
	PaceCadence string  `json:"pace_cadence"`
	Status      string  `json:"status"`
	ETADate     *string `json:"eta_date,omitempty"`
	ComputedAt  string  `json:"computed_at"`
}

// ToGoalProgressResponse converts a progress record to its response DTO.
func ToGoalProgressResponse(rec *entity.GoalProgressRecord) GoalProgressResponse {
	return GoalProgressResponse{
		GoalID:      rec.GoalID.String(),
		Current:     rec.Current.String(),
		Percent:     rec.Percent,
		Remaining:   rec.Remaining.String(),
		PaceActual:  rec.PaceActual.String(),
		PaceCadence: string(rec.PaceCadence),
		Status:      string(rec.Status),
		ETADate:     formatDate(rec.ETADate),
		ComputedAt:  rec.ComputedAt.Format(time.RFC3339),
	}
}

// TaskSummaryResponse represents one task summary entry.
type TaskSummaryResponse struct {
	TaskID   string  `json:"task_id"`
	Title    string  `json:"title"`
	GoalID   *string `json:"goal_id,omitempty"`
	Done     bool    `json:"done"`
	DueToday bool    `json:"due_today"`
	Overdue  bool    `json:"overdue"`
}

// GoalSummaryResponse represents one goal summary entry.
type GoalSummaryResponse struct {
	GoalID   string  `json:"goal_id"`
	Name     string  `json:"name"`
	Category string  `json:"category,omitempty"`
	Percent  float64 `json:"percent"`
	Status   string  `json:"status"`
	ETADate  *string `json:"eta_date,omitempty"`
	Deadline *string `json:"deadline,omitempty"`
}

// HabitSummaryResponse represents one habit summary entry.
type HabitSummaryResponse struct {
	HabitID          string  `json:"habit_id"`
	Name             string  `json:"name"`
	StreakCurrent    int     `json:"streak_current"`
	CompletedToday   bool    `json:"completed_today"`
	EvaluatedToday   bool    `json:"evaluated_today"`
	CompletionRate30 float64 `json:"completion_rate_30d"`
}

// HomeSnapshotResponse represents the dashboard snapshot.
type HomeSnapshotResponse struct {
	GeneratedAt string        `json:"generated_at"`
	Rings       RingsResponse `json:"rings"`
	AtRiskGoals []string      `json:"at_risk_goals"`
	OpenTasks   int           `json:"open_tasks"`
	DueToday    int           `json:"due_today"`
	ActiveGoals int           `json:"active_goals"`
}

// RingsResponse represents the four dashboard gauges.
type RingsResponse struct {
	Goals        float64 `json:"goals"`
	Habits       float64 `json:"habits"`
	Productivity float64 `json:"productivity"`
	Finance      float64 `json:"finance"`
}

// ToTaskSummariesResponse converts task summaries to response DTOs.
func ToTaskSummariesResponse(summaries []entity.TaskSummary) []TaskSummaryResponse {
	out := make([]TaskSummaryResponse, len(summaries))
	for i, s := range summaries {
		var goalID *string
		if s.GoalID != nil {
			id := s.GoalID.String()
			goalID = &id
		}
		out[i] = TaskSummaryResponse{
			TaskID:   s.TaskID.String(),
			Title:    s.Title,
			GoalID:   goalID,
			Done:     s.Done,
			DueToday: s.DueToday,
			Overdue:  s.Overdue,
		}
	}
	return out
}

// ToGoalSummariesResponse converts goal summaries to response DTOs.
func ToGoalSummariesResponse(summaries []entity.GoalSummary) []GoalSummaryResponse {
	out := make([]GoalSummaryResponse, len(summaries))
	for i, s := range summaries {
		out[i] = GoalSummaryResponse{
			GoalID:   s.GoalID.String(),
			Name:     s.Name,
			Category: s.Category,
			Percent:  s.Percent,
			Status:   string(s.Status),
			ETADate:  formatDate(s.ETADate),
			Deadline: formatDate(s.Deadline),
		}
	}
	return out
}

// ToHabitSummariesResponse converts habit summaries to response DTOs.
func ToHabitSummariesResponse(summaries []entity.HabitSummary) []HabitSummaryResponse {
	out := make([]HabitSummaryResponse, len(summaries))
	for i, s := range summaries {
		out[i] = HabitSummaryResponse{
			HabitID:          s.HabitID.String(),
			Name:             s.Name,
			StreakCurrent:    s.StreakCurrent,
			CompletedToday:   s.CompletedToday,
			EvaluatedToday:   s.EvaluatedToday,
			CompletionRate30: s.CompletionRate30,
		}
	}
	return out
}

// ToHomeSnapshotResponse converts the home snapshot to its response DTO.
func ToHomeSnapshotResponse(snapshot entity.HomeSnapshot) HomeSnapshotResponse {
	atRisk := make([]string, len(snapshot.Alerts.AtRiskGoals))
	for i, id := range snapshot.Alerts.AtRiskGoals {
		atRisk[i] = id.String()
	}

	return HomeSnapshotResponse{
		GeneratedAt: snapshot.GeneratedAt.Format(time.RFC3339),
		Rings: RingsResponse{
			Goals:        snapshot.Rings.Goals,
			Habits:       snapshot.Rings.Habits,
			Productivity: snapshot.Rings.Productivity,
			Finance:      snapshot.Rings.Finance,
		},
		AtRiskGoals: atRisk,
		OpenTasks:   snapshot.OpenTasks,
		DueToday:    snapshot.DueToday,
		ActiveGoals: snapshot.ActiveGoals,
	}
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
