package router

import (
	"meteocal/core/middleware"
	"meteocal/modules/auth/controller"

	"github.com/labstack/echo/v4"
)

type AuthRouter struct {
	controller *controller.AuthController
}

func NewAuthRouter(controller *controller.AuthController) *AuthRouter {
	return &AuthRouter{controller: controller}
}

func (r *AuthRouter) Register(g *echo.Group, mw *middleware.Middleware) {
	public := g.Group("/public/auth")
	public.POST("/register", r.controller.Register)
	public.POST("/login", r.controller.Login)

	private := g.Group("/private", mw.AuthMiddleware())
	private.POST("/auth/logout", r.controller.Logout)
	private.GET("/auth/me", r.controller.Me)
	private.GET("/users", r.controller.ListUsers)
}
