package notification

import (
	"meteocal/core/database"
	"meteocal/core/middleware"
	"meteocal/modules/notification/controller"
	"meteocal/modules/notification/repository"
	"meteocal/modules/notification/router"
	"meteocal/modules/notification/service"

	"github.com/labstack/echo/v4"
)

func Init(e *echo.Group, db database.IDatabase, mw *middleware.Middleware) *service.NotificationService {
	repo := repository.NewNotificationRepository(db)
	svc := service.NewNotificationService(repo)
	ctrl := controller.NewNotificationController(svc)

	router.NewNotificationRouter(ctrl).Register(e, mw)

	return svc
}
