package router

import (
	"github.com/labstack/echo/v4"

	"group-planner/core/middleware"
	"group-planner/modules/suggestion/controller"
)

// SuggestionRouter handles preference and suggestion routes
type SuggestionRouter struct {
	SuggestionController *controller.SuggestionController
}

// NewSuggestionRouter creates a new router
func NewSuggestionRouter(suggestionController *controller.SuggestionController) *SuggestionRouter {
	return &SuggestionRouter{
		SuggestionController: suggestionController,
	}
}

// Setup registers suggestion routes
func (r *SuggestionRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	privateRoutes := v1.Group("/private")

	groupRoutes := privateRoutes.Group("/groups/:id", mw.AuthMiddleware())
	groupRoutes.PUT("/preferences", r.SuggestionController.UpsertPreference)
	groupRoutes.GET("/preferences", r.SuggestionController.GetPreference)
	groupRoutes.GET("/preferences/profile", r.SuggestionController.GetProfile)
	groupRoutes.GET("/suggestions", r.SuggestionController.GetSuggestions)
}
