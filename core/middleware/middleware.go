package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"group-planner/core/config"
	"group-planner/core/constants"
	"group-planner/core/controller"
	"group-planner/core/errors"
	"group-planner/core/utils"
)

// Middleware bundles the cross-cutting echo middleware used by module routers
type Middleware struct {
	cfg  *config.Config
	base controller.BaseController
}

// New creates the middleware set
func New(cfg *config.Config) *Middleware {
	return &Middleware{
		cfg:  cfg,
		base: controller.NewBaseController(),
	}
}

// AuthMiddleware validates the bearer token and stores claims in the request context
func (m *Middleware) AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return m.base.Unauthorized(errors.ErrMissingAuthorizationHeader, "Missing Authorization header")
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return m.base.Unauthorized(errors.ErrInvalidTokenFormat, "Authorization header must be a Bearer token")
			}

			claims, appErr := utils.ValidateAndParseToken(parts[1], m.cfg.JWT.Secret)
			if appErr != nil {
				return m.base.Unauthorized(appErr.Code, appErr.Message)
			}

			c.Set(constants.ContextTokenData, claims)
			return next(c)
		}
	}
}
