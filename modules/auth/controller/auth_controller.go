package controller

import (
	"strings"

	"meteocal/core/controller"
	"meteocal/core/errors"
	"meteocal/modules/auth/dto"
	"meteocal/modules/auth/service"
	"meteocal/modules/auth/validator"

	"github.com/labstack/echo/v4"
)

type AuthController struct {
	controller.BaseController
	AuthService service.AuthServiceInterface
}

func NewAuthController(authService service.AuthServiceInterface) *AuthController {
	return &AuthController{
		BaseController: controller.NewBaseController(),
		AuthService:    authService,
	}
}

// Register handles POST /public/auth/register
// @Summary Register
// @Description Create an account with name, email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Account data"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} errors.AppError
// @Failure 409 {object} errors.AppError
// @Router /public/auth/register [post]
func (controller *AuthController) Register(c echo.Context) error {
	ctx := c.Request().Context()

	requestData := new(dto.RegisterRequest)
	if err := c.Bind(requestData); err != nil {
		return controller.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}

	validationResult := validator.ValidateRegisterRequest(requestData)
	if validationResult.HasError() {
		return controller.BadRequest(errors.ErrInvalidInput, "Invalid request data", validationResult)
	}

	user, err := controller.AuthService.Register(ctx, requestData)
	if err != nil {
		return controller.ErrorResponse(c, err)
	}

	return controller.CreatedResponse(c, user, "Register success")
}

// Login handles POST /public/auth/login
// @Summary Login
// @Description Authenticate and run the next-day weather check
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} errors.AppError
// @Failure 401 {object} errors.AppError
// @Router /public/auth/login [post]
func (controller *AuthController) Login(c echo.Context) error {
	ctx := c.Request().Context()

	requestData := new(dto.LoginRequest)
	if err := c.Bind(requestData); err != nil {
		return controller.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}

	validationResult := validator.ValidateLoginRequest(requestData)
	if validationResult.HasError() {
		return controller.BadRequest(errors.ErrInvalidInput, "Invalid request data", validationResult)
	}

	loginResponse, err := controller.AuthService.Login(ctx, requestData)
	if err != nil {
		return controller.ErrorResponse(c, err)
	}

	return controller.SuccessResponse(c, loginResponse, "Login success")
}

// Logout handles POST /private/auth/logout
// @Summary Logout
// @Description Revoke the current access token
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.AppError
// @Router /private/auth/logout [post]
func (controller *AuthController) Logout(c echo.Context) error {
	token, ok := strings.CutPrefix(c.Request().Header.Get("Authorization"), "Bearer ")
	if !ok || token == "" {
		return controller.BadRequest(errors.ErrInvalidTokenFormat, "Invalid authorization header", nil)
	}

	if err := controller.AuthService.Logout(c.Request().Context(), token); err != nil {
		return controller.ErrorResponse(c, err)
	}

	return controller.SuccessResponse(c, nil, "Logout success")
}

// Me handles GET /private/auth/me
// @Summary Current user
// @Description Return the authenticated user
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} errors.AppError
// @Failure 404 {object} errors.AppError
// @Router /private/auth/me [get]
func (controller *AuthController) Me(c echo.Context) error {
	userID, errID := controller.CurrentUser(c)
	if errID != nil {
		return controller.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	user, err := controller.AuthService.GetUserByID(c.Request().Context(), userID)
	if err != nil {
		return controller.ErrorResponse(c, err)
	}

	return controller.SuccessResponse(c, user, "Get user success")
}

// ListUsers handles GET /private/users
// @Summary List users
// @Description List every user except the current one, for invitations
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Success 200 {array} dto.UserResponse
// @Failure 401 {object} errors.AppError
// @Failure 500 {object} errors.AppError
// @Router /private/users [get]
func (controller *AuthController) ListUsers(c echo.Context) error {
	userID, errID := controller.CurrentUser(c)
	if errID != nil {
		return controller.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	users, err := controller.AuthService.ListUsersExcept(c.Request().Context(), userID)
	if err != nil {
		return controller.ErrorResponse(c, err)
	}

	return controller.SuccessResponse(c, users, "Get users success")
}
