package auth

import (
	"meteocal/core/cache"
	"meteocal/core/database"
	"meteocal/core/middleware"
	"meteocal/modules/auth/controller"
	"meteocal/modules/auth/repository"
	"meteocal/modules/auth/router"
	"meteocal/modules/auth/service"

	"github.com/labstack/echo/v4"
)

// Init wires the auth module and returns its service so other modules can
// register login hooks.
func Init(g *echo.Group, db database.IDatabase, cache cache.Cache, mw *middleware.Middleware) *service.AuthService {
	repo := repository.NewAuthRepository(db)
	authService := service.NewAuthService(repo, cache)
	ctrl := controller.NewAuthController(authService)

	router.NewAuthRouter(ctrl).Register(g, mw)

	return authService
}
