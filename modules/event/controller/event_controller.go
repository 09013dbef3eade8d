package controller

import (
	"meteocal/core/controller"
	"meteocal/core/errors"
	"meteocal/modules/event/dto"
	"meteocal/modules/event/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type EventController struct {
	service *service.EventService
	controller.BaseController
}

func NewEventController(service *service.EventService) *EventController {
	return &EventController{
		service:        service,
		BaseController: controller.NewBaseController(),
	}
}

// CreateEvent handles POST /private/events
// @Summary Create event
// @Description Create an event in the organizer's calendar and invite users
// @Tags Event
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.SaveEventRequest true "Event data"
// @Success 201 {object} dto.SaveEventResponse
// @Failure 400 {object} errors.AppError
// @Failure 401 {object} errors.AppError
// @Router /private/events [post]
func (c *EventController) CreateEvent(ctx echo.Context) error {
	return c.save(ctx, service.ModeCreate)
}

// UpdateEvent handles PUT /private/events/:id
// @Summary Update event
// @Description Update an event; non-organizers get altered false
// @Tags Event
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param request body dto.SaveEventRequest true "Event data"
// @Success 200 {object} dto.SaveEventResponse
// @Failure 400 {object} errors.AppError
// @Failure 401 {object} errors.AppError
// @Failure 404 {object} errors.AppError
// @Router /private/events/{id} [put]
func (c *EventController) UpdateEvent(ctx echo.Context) error {
	return c.save(ctx, service.ModeUpdate)
}

func (c *EventController) save(ctx echo.Context, mode service.Mode) error {
	userID, err := c.CurrentUser(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	eventID := uuid.Nil
	if mode == service.ModeUpdate {
		if eventID, err = c.ParseID(ctx, "id"); err != nil {
			return c.ErrorResponse(ctx, err)
		}
	}

	req := new(dto.SaveEventRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body", nil)
	}

	result, appErr := c.service.SaveEvent(ctx.Request().Context(), mode, userID, eventID, req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	if mode == service.ModeCreate {
		return c.CreatedResponse(ctx, result, "Event created successfully")
	}
	return c.SuccessResponse(ctx, result, "Event saved")
}

// DeleteEvent handles DELETE /private/events/:id
// @Summary Delete event
// @Description Delete an event with its notifications; non-organizers get altered false
// @Tags Event
// @Security BearerAuth
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} dto.DeleteEventResponse
// @Failure 400 {object} errors.AppError
// @Failure 401 {object} errors.AppError
// @Failure 404 {object} errors.AppError
// @Router /private/events/{id} [delete]
func (c *EventController) DeleteEvent(ctx echo.Context) error {
	userID, err := c.CurrentUser(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}
	eventID, err := c.ParseID(ctx, "id")
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}

	result, appErr := c.service.DeleteEvent(ctx.Request().Context(), userID, eventID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Event deleted")
}

// GetEvent handles GET /private/events/:id
// @Summary Get event
// @Description Return an event visible to the current user
// @Tags Event
// @Security BearerAuth
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} dto.EventResponse
// @Failure 400 {object} errors.AppError
// @Failure 401 {object} errors.AppError
// @Failure 404 {object} errors.AppError
// @Router /private/events/{id} [get]
func (c *EventController) GetEvent(ctx echo.Context) error {
	userID, err := c.CurrentUser(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}
	eventID, err := c.ParseID(ctx, "id")
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}

	result, appErr := c.service.GetEvent(ctx.Request().Context(), userID, eventID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Event retrieved successfully")
}

// GetEventsByDate expects ?date=YYYY-MM-DD.
// @Summary List events by day
// @Description List the events of the current user's calendar on a day, by start time
// @Tags Event
// @Security BearerAuth
// @Produce json
// @Param date query string true "Day (YYYY-MM-DD)"
// @Success 200 {array} dto.EventResponse
// @Failure 400 {object} errors.AppError
// @Failure 401 {object} errors.AppError
// @Router /private/events [get]
func (c *EventController) GetEventsByDate(ctx echo.Context) error {
	userID, err := c.CurrentUser(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	result, appErr := c.service.GetEventsByDate(ctx.Request().Context(), userID, ctx.QueryParam("date"))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Events retrieved successfully")
}
