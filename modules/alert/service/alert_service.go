package service

import (
	"context"
	"fmt"
	"time"

	"meteocal/core/constants"
	"meteocal/core/database"
	"meteocal/core/logger"
	"meteocal/modules/alert/dto"
	authRepository "meteocal/modules/auth/repository"
	calendarRepository "meteocal/modules/calendar/repository"
	calendarService "meteocal/modules/calendar/service"
	eventRepository "meteocal/modules/event/repository"
	notificationService "meteocal/modules/notification/service"

	"github.com/google/uuid"
)

// AlertService warns calendar owners about outdoor events at risk of bad
// weather on the next day.
type AlertService struct {
	users     authRepository.UserRepository
	events    eventRepository.EventRepository
	calendars calendarRepository.CalendarRepository
	notifier  *notificationService.NotificationService
	tx        database.Transactor
	loc       *time.Location
	now       func() time.Time
}

func NewAlertService(
	users authRepository.UserRepository,
	events eventRepository.EventRepository,
	calendars calendarRepository.CalendarRepository,
	notifier *notificationService.NotificationService,
	tx database.Transactor,
	loc *time.Location,
) *AlertService {
	if loc == nil {
		loc = time.UTC
	}
	return &AlertService{
		users:     users,
		events:    events,
		calendars: calendars,
		notifier:  notifier,
		tx:        tx,
		loc:       loc,
		now:       time.Now,
	}
}

// SetClock replaces the time source used to compute tomorrow.
func (s *AlertService) SetClock(now func() time.Time) {
	s.now = now
}

// AfterLogin runs the alert workflow for a user that just logged in.
func (s *AlertService) AfterLogin(ctx context.Context, userID uuid.UUID) error {
	_, err := s.RunAlertsForUser(ctx, userID)
	return err
}

// RunAlertsForUser notifies the owners of every calendar containing one of the
// user's outdoor events planned for tomorrow whose forecast matches their
// bad weather preferences. Each event is alerted at most once.
func (s *AlertService) RunAlertsForUser(ctx context.Context, userID uuid.UUID) (*dto.Summary, error) {
	tomorrow := s.tomorrow()
	summary := &dto.Summary{Date: tomorrow.Format(constants.DateLayout)}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		logger.Debug("AlertService:RunAlertsForUser:UnknownUser", "user_id", userID)
		return summary, nil
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		events, err := s.events.FindEventsForAlert(ctx, tomorrow, userID)
		if err != nil {
			return err
		}

		for i := range events {
			event := &events[i]

			claimed, err := s.events.MarkAlertSent(ctx, event.ID)
			if err != nil {
				return err
			}
			if !claimed {
				continue
			}
			summary.EventsProcessed++

			calendars, err := s.calendars.GetCalendarsByEvent(ctx, event.ID)
			if err != nil {
				return err
			}
			content := fmt.Sprintf("Tomorrow is going to be a bad weather day and the outdoor event \"%s\" may be at risk!", event.Name)
			for _, cal := range calendars {
				if !calendarService.IsBadWeather(cal.BadWeatherPreferences, event.Forecast()) {
					continue
				}
				if _, err := s.notifier.SendNotification(ctx, constants.BadWeatherTitle, content, false, cal.OwnerID, event.ID); err != nil {
					return err
				}
				summary.NotificationsSent++
			}
		}
		return nil
	})
	if err != nil {
		logger.Error("AlertService:RunAlertsForUser:Error", "user_id", userID, "error", err)
		return nil, err
	}

	logger.Info("AlertService:RunAlertsForUser:Done",
		"user_id", userID,
		"date", summary.Date,
		"events", summary.EventsProcessed,
		"notifications", summary.NotificationsSent,
	)
	return summary, nil
}

// tomorrow is the next calendar day in the configured timezone, at midnight UTC
// so it compares with DATE columns by its Y-M-D only.
func (s *AlertService) tomorrow() time.Time {
	y, m, d := s.now().In(s.loc).Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, time.UTC)
}
