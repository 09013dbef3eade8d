package controller

import (
	"net/http"

	"meteocal/core/controller"
	"meteocal/core/errors"
	"meteocal/modules/calendar/dto"
	"meteocal/modules/calendar/service"

	"github.com/labstack/echo/v4"
)

type CalendarController struct {
	service service.CalendarService
	controller.BaseController
}

func NewCalendarController(service service.CalendarService) *CalendarController {
	return &CalendarController{
		service:        service,
		BaseController: controller.NewBaseController(),
	}
}

// CreateCalendar handles POST /private/calendar
// @Summary Create calendar
// @Description Create the current user's calendar with bad weather preferences
// @Tags Calendar
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CalendarRequest true "Bad weather preferences"
// @Success 201 {object} dto.CalendarResponse
// @Failure 400 {object} errors.AppError
// @Failure 401 {object} errors.AppError
// @Failure 409 {object} errors.AppError
// @Router /private/calendar [post]
func (c *CalendarController) CreateCalendar(ctx echo.Context) error {
	userID, err := c.CurrentUser(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	req := new(dto.CalendarRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body", nil)
	}

	result, appErr := c.service.CreateCalendar(ctx.Request().Context(), userID, req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.CreatedResponse(ctx, result, "Calendar created successfully")
}

// GetMyCalendar handles GET /private/calendar
// @Summary Get calendar
// @Description Return the current user's calendar
// @Tags Calendar
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.CalendarResponse
// @Failure 401 {object} errors.AppError
// @Failure 404 {object} errors.AppError
// @Router /private/calendar [get]
func (c *CalendarController) GetMyCalendar(ctx echo.Context) error {
	userID, err := c.CurrentUser(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	result, appErr := c.service.GetMyCalendar(ctx.Request().Context(), userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Calendar retrieved successfully")
}

// UpdatePreferences handles PUT /private/calendar/preferences
// @Summary Update preferences
// @Description Replace the bad weather preferences of the current user's calendar
// @Tags Calendar
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CalendarRequest true "Bad weather preferences"
// @Success 200 {object} dto.CalendarResponse
// @Failure 400 {object} errors.AppError
// @Failure 401 {object} errors.AppError
// @Failure 404 {object} errors.AppError
// @Router /private/calendar/preferences [put]
func (c *CalendarController) UpdatePreferences(ctx echo.Context) error {
	userID, err := c.CurrentUser(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	req := new(dto.CalendarRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body", nil)
	}

	result, appErr := c.service.UpdatePreferences(ctx.Request().Context(), userID, req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Preferences updated successfully")
}

// ExportICS handles GET /private/calendar/export.ics
// @Summary Export calendar
// @Description Export the current user's calendar as an iCalendar document
// @Tags Calendar
// @Security BearerAuth
// @Produce text/calendar
// @Success 200 {string} string
// @Failure 401 {object} errors.AppError
// @Failure 404 {object} errors.AppError
// @Router /private/calendar/export.ics [get]
func (c *CalendarController) ExportICS(ctx echo.Context) error {
	userID, err := c.CurrentUser(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	body, appErr := c.service.ExportICS(ctx.Request().Context(), userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	ctx.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="meteocal.ics"`)
	return ctx.Blob(http.StatusOK, "text/calendar; charset=utf-8", []byte(body))
}
