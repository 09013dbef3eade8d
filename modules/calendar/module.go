package calendar

import (
	"time"

	"meteocal/core/database"
	"meteocal/core/middleware"
	"meteocal/modules/calendar/controller"
	"meteocal/modules/calendar/repository"
	"meteocal/modules/calendar/router"
	"meteocal/modules/calendar/service"

	"github.com/labstack/echo/v4"
)

func Init(g *echo.Group, db database.IDatabase, mw *middleware.Middleware, loc *time.Location) repository.CalendarRepository {
	repo := repository.NewCalendarRepository(db)
	calendarService := service.NewCalendarService(repo, loc)
	calendarController := controller.NewCalendarController(calendarService)

	router.NewCalendarRouter(calendarController).Register(g, mw)

	return repo
}
