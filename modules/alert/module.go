package alert

import (
	"time"

	"meteocal/core/database"
	"meteocal/core/middleware"
	"meteocal/modules/alert/controller"
	"meteocal/modules/alert/router"
	"meteocal/modules/alert/service"
	authRepository "meteocal/modules/auth/repository"
	calendarRepository "meteocal/modules/calendar/repository"
	eventRepository "meteocal/modules/event/repository"
	notificationService "meteocal/modules/notification/service"

	"github.com/labstack/echo/v4"
)

func Init(
	g *echo.Group,
	db database.IDatabase,
	mw *middleware.Middleware,
	events eventRepository.EventRepository,
	calendars calendarRepository.CalendarRepository,
	notifier *notificationService.NotificationService,
	loc *time.Location,
) *service.AlertService {
	svc := service.NewAlertService(authRepository.NewAuthRepository(db), events, calendars, notifier, db, loc)
	router.NewAlertRouter(controller.NewAlertController(svc)).Register(g, mw)
	return svc
}
