package router

import (
	"github.com/labstack/echo/v4"

	"group-planner/core/middleware"
	"group-planner/modules/availability/controller"
)

// AvailabilityRouter handles availability routes
type AvailabilityRouter struct {
	AvailabilityController *controller.AvailabilityController
}

// NewAvailabilityRouter creates a new router
func NewAvailabilityRouter(availabilityController *controller.AvailabilityController) *AvailabilityRouter {
	return &AvailabilityRouter{
		AvailabilityController: availabilityController,
	}
}

// Setup registers availability routes
func (r *AvailabilityRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	privateRoutes := v1.Group("/private")

	groupRoutes := privateRoutes.Group("/groups/:id/availability", mw.AuthMiddleware())
	groupRoutes.POST("", r.AvailabilityController.CreateInterval)
	groupRoutes.GET("", r.AvailabilityController.ListIntervals)
	groupRoutes.DELETE("/:intervalId", r.AvailabilityController.DeleteInterval)
	groupRoutes.GET("/grid", r.AvailabilityController.GetGrid)
	groupRoutes.GET("/grid/blocks", r.AvailabilityController.GetBlocks)
	groupRoutes.POST("/grid/selection", r.AvailabilityController.SelectBlocks)
	groupRoutes.POST("/export", r.AvailabilityController.ExportGrid)
	groupRoutes.POST("/sync-calendar", r.AvailabilityController.SyncCalendar)

	calendarRoutes := privateRoutes.Group("/calendar", mw.AuthMiddleware())
	calendarRoutes.POST("/connect", r.AvailabilityController.ConnectCalendar)
}
