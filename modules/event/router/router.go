package router

import (
	"github.com/labstack/echo/v4"

	"group-planner/core/middleware"
	"group-planner/modules/event/controller"
)

// EventRouter handles event routes
type EventRouter struct {
	EventController *controller.EventController
}

// NewEventRouter creates a new router
func NewEventRouter(eventController *controller.EventController) *EventRouter {
	return &EventRouter{
		EventController: eventController,
	}
}

// Setup registers event routes
func (r *EventRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	privateRoutes := v1.Group("/private")

	groupRoutes := privateRoutes.Group("/groups/:id/events", mw.AuthMiddleware())
	groupRoutes.POST("", r.EventController.CreateEvent)
	groupRoutes.GET("", r.EventController.ListEvents)

	eventRoutes := privateRoutes.Group("/events", mw.AuthMiddleware())
	eventRoutes.GET("/:id", r.EventController.GetEvent)
	eventRoutes.PUT("/:id/schedule", r.EventController.ScheduleEvent)
	eventRoutes.PUT("/:id/venue", r.EventController.SetVenue)
	eventRoutes.PUT("/:id/cancel", r.EventController.CancelEvent)
	eventRoutes.DELETE("/:id", r.EventController.DeleteEvent)
}
