package router

import (
	"meteocal/core/middleware"
	"meteocal/modules/alert/controller"

	"github.com/labstack/echo/v4"
)

type AlertRouter struct {
	controller *controller.AlertController
}

func NewAlertRouter(controller *controller.AlertController) *AlertRouter {
	return &AlertRouter{controller: controller}
}

func (r *AlertRouter) Register(g *echo.Group, mw *middleware.Middleware) {
	g.POST("/private/alerts/run", r.controller.RunAlerts, mw.AuthMiddleware())
}
