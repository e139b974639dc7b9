package group

import (
	"github.com/labstack/echo/v4"

	"group-planner/core/database"
	"group-planner/core/middleware"
	"group-planner/modules/group/controller"
	"group-planner/modules/group/repository"
	"group-planner/modules/group/router"
	"group-planner/modules/group/service"
)

// Init initializes the group module and registers routes. The service is
// returned so the event module can reuse its leader checks.
func Init(e *echo.Echo, db database.IDatabase, mw *middleware.Middleware) service.GroupServiceInterface {
	repo := repository.NewGroupRepository(db)
	svc := service.NewGroupService(repo)
	ctrl := controller.NewGroupController(svc)
	rtr := router.NewGroupRouter(ctrl)

	rtr.Setup(e, mw)
	return svc
}
