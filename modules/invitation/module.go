package invitation

import (
	"meteocal/core/database"
	"meteocal/core/middleware"
	authRepository "meteocal/modules/auth/repository"
	calendarRepository "meteocal/modules/calendar/repository"
	eventRepository "meteocal/modules/event/repository"
	"meteocal/modules/invitation/controller"
	"meteocal/modules/invitation/repository"
	"meteocal/modules/invitation/router"
	"meteocal/modules/invitation/service"
	notificationService "meteocal/modules/notification/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the invitation module and returns the service for use by other modules
func Init(
	g *echo.Group,
	db database.IDatabase,
	mw *middleware.Middleware,
	notifier *notificationService.NotificationService,
	events eventRepository.EventRepository,
	calendars calendarRepository.CalendarRepository,
) *service.InvitationService {
	repo := repository.NewInvitationRepository(db)
	svc := service.NewInvitationService(repo, notifier, events, calendars, authRepository.NewAuthRepository(db), db)
	ctrl := controller.NewInvitationController(svc)

	router.NewInvitationRouter(ctrl).Register(g, mw)

	return svc
}
