package router

import (
	"meteocal/core/middleware"
	"meteocal/modules/calendar/controller"

	"github.com/labstack/echo/v4"
)

type CalendarRouter struct {
	controller *controller.CalendarController
}

func NewCalendarRouter(controller *controller.CalendarController) *CalendarRouter {
	return &CalendarRouter{
		controller: controller,
	}
}

func (r *CalendarRouter) Register(g *echo.Group, mw *middleware.Middleware) {
	calendarRoutes := g.Group("/private/calendar")
	calendarRoutes.Use(mw.AuthMiddleware())

	calendarRoutes.POST("", r.controller.CreateCalendar)
	calendarRoutes.GET("", r.controller.GetMyCalendar)
	calendarRoutes.PUT("/preferences", r.controller.UpdatePreferences)
	calendarRoutes.GET("/export.ics", r.controller.ExportICS)
}
