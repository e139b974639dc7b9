package availability

import (
	"github.com/labstack/echo/v4"

	"group-planner/core/database"
	"group-planner/core/middleware"
	"group-planner/core/storage"
	"group-planner/modules/availability/controller"
	"group-planner/modules/availability/repository"
	"group-planner/modules/availability/router"
	"group-planner/modules/availability/service"
)

// Init initializes the availability module and registers routes
func Init(e *echo.Echo, db database.IDatabase, store storage.ObjectStore, mw *middleware.Middleware) {
	repo := repository.NewAvailabilityRepository(db)
	svc := service.NewAvailabilityService(repo, store)
	ctrl := controller.NewAvailabilityController(svc)
	rtr := router.NewAvailabilityRouter(ctrl)

	rtr.Setup(e, mw)
}
