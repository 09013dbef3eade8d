package router

import (
	"meteocal/core/middleware"
	"meteocal/modules/event/controller"

	"github.com/labstack/echo/v4"
)

type EventRouter struct {
	controller *controller.EventController
}

func NewEventRouter(controller *controller.EventController) *EventRouter {
	return &EventRouter{controller: controller}
}

func (r *EventRouter) Register(g *echo.Group, mw *middleware.Middleware) {
	events := g.Group("/private/events", mw.AuthMiddleware())
	events.POST("", r.controller.CreateEvent)
	events.GET("", r.controller.GetEventsByDate)
	events.GET("/:id", r.controller.GetEvent)
	events.PUT("/:id", r.controller.UpdateEvent)
	events.DELETE("/:id", r.controller.DeleteEvent)
}
