package params

import (
	"strconv"

	"meteocal/core/constants"

	"github.com/labstack/echo/v4"
)

type QueryParams struct {
	PageNumber int
	PageSize   int
}

func NewQueryParams(ctx echo.Context) *QueryParams {
	page, err := strconv.Atoi(ctx.QueryParam("page"))
	if err != nil || page < 1 {
		page = constants.DefaultPage
	}

	limit, err := strconv.Atoi(ctx.QueryParam("limit"))
	if err != nil || limit < 1 {
		limit = constants.DefaultPageSize
	}
	if limit > constants.MaxPageSize {
		limit = constants.MaxPageSize
	}

	return &QueryParams{
		PageNumber: page,
		PageSize:   limit,
	}
}

// Offset is the number of rows to skip for the current page.
func (p QueryParams) Offset() int {
	if p.PageNumber < 1 {
		return 0
	}
	return (p.PageNumber - 1) * p.PageSize
}
