package event

import (
	"meteocal/core/database"
	"meteocal/core/middleware"
	authRepository "meteocal/modules/auth/repository"
	calendarRepository "meteocal/modules/calendar/repository"
	"meteocal/modules/event/controller"
	"meteocal/modules/event/repository"
	"meteocal/modules/event/router"
	"meteocal/modules/event/service"
	notificationService "meteocal/modules/notification/service"

	"github.com/labstack/echo/v4"
)

type Deps struct {
	Events        repository.EventRepository
	Calendars     calendarRepository.CalendarRepository
	Notifications *notificationService.NotificationService
	Forecasts     service.ForecastScheduler
}

func Init(g *echo.Group, db database.IDatabase, mw *middleware.Middleware, deps Deps) *service.EventService {
	svc := service.NewEventService(
		deps.Events,
		deps.Calendars,
		authRepository.NewAuthRepository(db),
		deps.Notifications,
		db,
		deps.Forecasts,
	)
	ctrl := controller.NewEventController(svc)

	router.NewEventRouter(ctrl).Register(g, mw)

	return svc
}
