// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/life-planner/backend/internal/application/aggregator"
	"github.com/life-planner/backend/internal/application/engine"
	domainerror "github.com/life-planner/backend/internal/domain/error"
	"github.com/life-planner/backend/internal/integration/entrypoint/dto"
)

// PlannerController exposes the engine's and aggregator's read-only outputs.
// There are no mutating endpoints: derived state is exclusively engine-owned.
type PlannerController struct {
	engine     *engine.GoalProgressEngine
	aggregator *aggregator.PlannerAggregator
}

// NewPlannerController creates a new planner controller instance.
func NewPlannerController(eng *engine.GoalProgressEngine, agg *aggregator.PlannerAggregator) *PlannerController {
	return &PlannerController{
		engine:     eng,
		aggregator: agg,
	}
}

// GetGoalProgress handles GET /goals/:id/progress requests.
func (c *PlannerController) GetGoalProgress(ctx *gin.Context) {
	goalID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid goal id",
		})
		return
	}

	rec, ok := c.engine.GetGoalProgress(goalID)
	if !ok {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: "Goal progress not computed",
			Code:  string(domainerror.ErrCodeProgressNotComputed),
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGoalProgressResponse(rec))
}

// GetTaskSummaries handles GET /summaries/tasks requests.
func (c *PlannerController) GetTaskSummaries(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.ToTaskSummariesResponse(c.aggregator.GetTaskSummaries()))
}

// GetGoalSummaries handles GET /summaries/goals requests.
func (c *PlannerController) GetGoalSummaries(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.ToGoalSummariesResponse(c.aggregator.GetGoalSummaries()))
}

// GetHabitSummaries handles GET /summaries/habits requests.
func (c *PlannerController) GetHabitSummaries(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.ToHabitSummariesResponse(c.aggregator.GetHabitSummaries()))
}

// GetHomeSnapshot handles GET /home requests.
func (c *PlannerController) GetHomeSnapshot(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.ToHomeSnapshotResponse(c.aggregator.GetHomeSnapshot()))
}
