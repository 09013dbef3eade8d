package controller

import (
	"meteocal/core/controller"
	"meteocal/core/errors"
	"meteocal/modules/alert/service"

	"github.com/labstack/echo/v4"
)

type AlertController struct {
	service *service.AlertService
	controller.BaseController
}

func NewAlertController(service *service.AlertService) *AlertController {
	return &AlertController{
		service:        service,
		BaseController: controller.NewBaseController(),
	}
}

// RunAlerts triggers the next-day weather check for the current user.
// @Summary Run weather alerts
// @Description Check tomorrow's outdoor events of the current user and notify on bad weather
// @Tags Alert
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.Summary
// @Failure 401 {object} errors.AppError
// @Failure 500 {object} errors.AppError
// @Router /private/alerts/run [post]
func (c *AlertController) RunAlerts(ctx echo.Context) error {
	userID, err := c.CurrentUser(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	summary, err := c.service.RunAlertsForUser(ctx.Request().Context(), userID)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.SuccessResponse(ctx, summary, "Weather alerts processed")
}
