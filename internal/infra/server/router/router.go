// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/life-planner/backend/internal/integration/entrypoint/controller"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine            *gin.Engine
	healthController  *controller.HealthController
	plannerController *controller.PlannerController
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	plannerController *controller.PlannerController,
) *Router {
	return &Router{
		healthController:  healthController,
		plannerController: plannerController,
	}
}

// Setup configures all routes and returns the Gin engine.
func (r *Router) Setup(environment string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	engine.GET("/health", r.healthController.Check)

	v1 := engine.Group("/api/v1")
	{
		v1.GET("/goals/:id/progress", r.plannerController.GetGoalProgress)
		v1.GET("/summaries/tasks", r.plannerController.GetTaskSummaries)
		v1.GET("/summaries/goals", r.plannerController.GetGoalSummaries)
		v1.GET("/summaries/habits", r.plannerController.GetHabitSummaries)
		v1.GET("/home", r.plannerController.GetHomeSnapshot)
	}

	r.engine = engine
	return engine
}
