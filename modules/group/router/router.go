package router

import (
	"github.com/labstack/echo/v4"

	"group-planner/core/middleware"
	"group-planner/modules/group/controller"
)

// GroupRouter handles group routes
type GroupRouter struct {
	GroupController *controller.GroupController
}

// NewGroupRouter creates a new router
func NewGroupRouter(groupController *controller.GroupController) *GroupRouter {
	return &GroupRouter{
		GroupController: groupController,
	}
}

// Setup registers group routes
func (r *GroupRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	privateRoutes := v1.Group("/private")

	groupRoutes := privateRoutes.Group("/groups", mw.AuthMiddleware())
	groupRoutes.POST("", r.GroupController.CreateGroup)
	groupRoutes.GET("", r.GroupController.ListGroups)
	groupRoutes.GET("/slug/:slug", r.GroupController.GetGroupBySlug)
	groupRoutes.GET("/:id", r.GroupController.GetGroup)
	groupRoutes.PUT("/:id", r.GroupController.UpdateGroup)
	groupRoutes.DELETE("/:id", r.GroupController.DeleteGroup)
	groupRoutes.POST("/:id/members", r.GroupController.AddMembers)
	groupRoutes.GET("/:id/members", r.GroupController.ListMembers)
	groupRoutes.DELETE("/:id/members/:memberId", r.GroupController.RemoveMember)
}
