package params

import (
	"strconv"

	"group-planner/core/constants"

	"github.com/labstack/echo/v4"
)

// QueryParams carries common listing parameters parsed from the query string
type QueryParams struct {
	PageNumber int
	PageSize   int
	Search     string
}

// FromContext parses pagination and search parameters with defaults
func FromContext(c echo.Context) QueryParams {
	p := QueryParams{
		PageNumber: constants.DefaultPageNumber,
		PageSize:   constants.DefaultPageSize,
		Search:     c.QueryParam("search"),
	}

	if v, err := strconv.Atoi(c.QueryParam("page_number")); err == nil && v > 0 {
		p.PageNumber = v
	}
	if v, err := strconv.Atoi(c.QueryParam("page_size")); err == nil && v > 0 {
		p.PageSize = v
	}
	if p.PageSize > constants.MaxPageSize {
		p.PageSize = constants.MaxPageSize
	}

	return p
}

// Offset returns the SQL offset for the current page
func (p QueryParams) Offset() int {
	return (p.PageNumber - 1) * p.PageSize
}
