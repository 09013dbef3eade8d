package controller

import (
	"meteocal/core/controller"
	"meteocal/core/errors"
	"meteocal/modules/invitation/service"

	"github.com/labstack/echo/v4"
)

type InvitationController struct {
	controller.BaseController
	service *service.InvitationService
}

func NewInvitationController(service *service.InvitationService) *InvitationController {
	return &InvitationController{
		BaseController: controller.NewBaseController(),
		service:        service,
	}
}

// GetPendingInvitations returns all pending invitations for the current user
// @Summary Pending invitations
// @Description List pending invitations of the current user
// @Tags Invitation
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.PendingInvitationsResponse
// @Failure 401 {object} errors.AppError
// @Failure 500 {object} errors.AppError
// @Router /private/invitations [get]
func (c *InvitationController) GetPendingInvitations(ctx echo.Context) error {
	userID, err := c.CurrentUser(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	response, err := c.service.GetPendingInvitations(ctx.Request().Context(), userID)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}

	return c.SuccessResponse(ctx, response, "Pending invitations retrieved successfully")
}

// CountPending handles GET /private/invitations/count
// @Summary Count pending invitations
// @Description Count pending invitations of the current user
// @Tags Invitation
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]int
// @Failure 401 {object} errors.AppError
// @Failure 500 {object} errors.AppError
// @Router /private/invitations/count [get]
func (c *InvitationController) CountPending(ctx echo.Context) error {
	userID, err := c.CurrentUser(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	count, err := c.service.CountPending(ctx.Request().Context(), userID)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}

	return c.SuccessResponse(ctx, map[string]int{"count": count}, "Pending count retrieved")
}

// AcceptInvitation handles POST /private/invitations/:id/accept
// @Summary Accept invitation
// @Description Accept an invitation and add the event to the current user's calendar
// @Tags Invitation
// @Security BearerAuth
// @Produce json
// @Param id path string true "Notification ID"
// @Success 200 {object} dto.DecisionResponse
// @Failure 400 {object} errors.AppError
// @Failure 401 {object} errors.AppError
// @Failure 404 {object} errors.AppError
// @Router /private/invitations/{id}/accept [post]
func (c *InvitationController) AcceptInvitation(ctx echo.Context) error {
	return c.resolve(ctx, true)
}

// DeclineInvitation handles POST /private/invitations/:id/decline
// @Summary Decline invitation
// @Description Decline an invitation and notify the organizer
// @Tags Invitation
// @Security BearerAuth
// @Produce json
// @Param id path string true "Notification ID"
// @Success 200 {object} dto.DecisionResponse
// @Failure 400 {object} errors.AppError
// @Failure 401 {object} errors.AppError
// @Failure 404 {object} errors.AppError
// @Router /private/invitations/{id}/decline [post]
func (c *InvitationController) DeclineInvitation(ctx echo.Context) error {
	return c.resolve(ctx, false)
}

func (c *InvitationController) resolve(ctx echo.Context, accept bool) error {
	userID, err := c.CurrentUser(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	invitationID, err := c.ParseID(ctx, "id")
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}

	result, err := c.service.ResolveInvitation(ctx.Request().Context(), userID, invitationID, accept)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}

	message := "Invitation declined"
	if accept {
		message = "Invitation accepted"
	}
	return c.SuccessResponse(ctx, result, message)
}
