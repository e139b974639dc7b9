package suggestion

import (
	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"group-planner/core/cache"
	"group-planner/core/config"
	"group-planner/core/database"
	"group-planner/core/middleware"
	"group-planner/core/worker"
	"group-planner/modules/suggestion/client"
	"group-planner/modules/suggestion/controller"
	"group-planner/modules/suggestion/repository"
	"group-planner/modules/suggestion/router"
	"group-planner/modules/suggestion/service"
)

// Init initializes the suggestion module and registers routes. The returned
// service is also consumed by the background worker for cache warm-up.
func Init(e *echo.Echo, db database.IDatabase, store cache.Cache, tasks worker.Enqueuer, cfg *config.Config, mw *middleware.Middleware) service.SuggestionServiceInterface {
	// One shared bucket keeps the combined geocode and search rate within
	// the public providers' usage policy
	limiter := rate.NewLimiter(rate.Limit(cfg.Geo.RequestsPerSec), 1)

	geocoder := client.NewHTTPGeocoder(cfg.Geo, limiter)
	searcher := client.NewNominatimSearcher(cfg.Geo, limiter)

	repo := repository.NewPreferenceRepository(db)
	svc := service.NewSuggestionService(repo, geocoder, searcher, store, tasks)
	ctrl := controller.NewSuggestionController(svc)
	rtr := router.NewSuggestionRouter(ctrl)

	rtr.Setup(e, mw)
	return svc
}
