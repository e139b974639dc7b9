package event

import (
	"github.com/labstack/echo/v4"

	"group-planner/core/database"
	"group-planner/core/middleware"
	"group-planner/modules/event/controller"
	"group-planner/modules/event/repository"
	"group-planner/modules/event/router"
	"group-planner/modules/event/service"
	groupservice "group-planner/modules/group/service"
)

// Init initializes the event module and registers routes
func Init(e *echo.Echo, db database.IDatabase, groups groupservice.GroupServiceInterface, mw *middleware.Middleware) {
	repo := repository.NewEventRepository(db)
	svc := service.NewEventService(repo, groups)
	ctrl := controller.NewEventController(svc)
	rtr := router.NewEventRouter(ctrl)

	rtr.Setup(e, mw)
}
