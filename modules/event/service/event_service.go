package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"meteocal/core/constants"
	"meteocal/core/database"
	"meteocal/core/errors"
	"meteocal/core/logger"
	authRepository "meteocal/modules/auth/repository"
	calendarRepository "meteocal/modules/calendar/repository"
	"meteocal/modules/event/dto"
	"meteocal/modules/event/entity"
	"meteocal/modules/event/mapper"
	"meteocal/modules/event/repository"
	"meteocal/modules/event/validator"
	notificationService "meteocal/modules/notification/service"

	"github.com/google/uuid"
)

// Mode selects whether SaveEvent creates a new event or updates an existing one.
type Mode int

const (
	ModeCreate Mode = iota
	ModeUpdate
)

func (m Mode) String() string {
	if m == ModeUpdate {
		return "update"
	}
	return "create"
}

// ForecastScheduler refreshes the stored forecast of an event.
type ForecastScheduler interface {
	ScheduleForecast(ctx context.Context, eventID uuid.UUID) error
}

type EventService struct {
	repo      repository.EventRepository
	calendars calendarRepository.CalendarRepository
	users     authRepository.UserRepository
	notifier  *notificationService.NotificationService
	tx        database.Transactor
	forecasts ForecastScheduler
}

func NewEventService(
	repo repository.EventRepository,
	calendars calendarRepository.CalendarRepository,
	users authRepository.UserRepository,
	notifier *notificationService.NotificationService,
	tx database.Transactor,
	forecasts ForecastScheduler,
) *EventService {
	return &EventService{
		repo:      repo,
		calendars: calendars,
		users:     users,
		notifier:  notifier,
		tx:        tx,
		forecasts: forecasts,
	}
}

// CanAlterEvent reports whether userID may update or delete event.
func CanAlterEvent(userID uuid.UUID, event *entity.Event) bool {
	return event != nil && userID == event.OrganizerID
}

// SaveEvent creates or updates an event. Updates by anyone but the organizer
// leave the event untouched and report Altered false.
func (s *EventService) SaveEvent(ctx context.Context, mode Mode, userID, eventID uuid.UUID, req *dto.SaveEventRequest) (*dto.SaveEventResponse, *errors.AppError) {
	result, schedule := validator.ValidateSaveEventRequest(req)
	if result.HasError() {
		return nil, errors.NewValidationError("Invalid event data", result)
	}

	var (
		saved   *entity.Event
		altered bool
	)
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		switch mode {
		case ModeCreate:
			saved, err = s.create(ctx, userID, req, schedule)
			altered = err == nil
		case ModeUpdate:
			saved, altered, err = s.update(ctx, userID, eventID, req, schedule)
		default:
			err = fmt.Errorf("unknown save mode %d", mode)
		}
		return err
	})
	if err != nil {
		logger.Error("EventService:SaveEvent:Error", "mode", mode.String(), "user_id", userID, "error", err)
		return nil, errors.Wrap(err, errors.ErrInternalServer, "failed to save event")
	}

	resp, err := s.toResponse(ctx, saved, userID)
	if err != nil {
		logger.Error("EventService:SaveEvent:Describe:Error", "event_id", saved.ID, "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load event", err)
	}

	if !altered {
		logger.Info("EventService:SaveEvent:NotOrganizer", "user_id", userID, "event_id", eventID)
		return &dto.SaveEventResponse{Event: resp, Altered: false}, nil
	}

	if s.forecasts != nil {
		if err := s.forecasts.ScheduleForecast(ctx, saved.ID); err != nil {
			logger.Error("EventService:SaveEvent:ScheduleForecast:Error", "event_id", saved.ID, "error", err)
		}
	}

	logger.Info("EventService:SaveEvent:Success", "mode", mode.String(), "event_id", saved.ID)
	return &dto.SaveEventResponse{Event: resp, Altered: true}, nil
}

func (s *EventService) create(ctx context.Context, organizerID uuid.UUID, req *dto.SaveEventRequest, schedule validator.Schedule) (*entity.Event, error) {
	organizer, err := s.users.GetUserByID(ctx, organizerID)
	if err != nil {
		return nil, err
	}
	if organizer == nil {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "user not found", nil)
	}

	cal, err := s.calendars.GetCalendarByOwner(ctx, organizerID)
	if err != nil {
		return nil, err
	}
	if cal == nil {
		return nil, errors.NewValidationError("Invalid event data", map[string]string{
			"calendar": "You must create your calendar before creating events",
		})
	}

	event := &entity.Event{OrganizerID: organizerID}
	applyRequest(event, req, schedule)
	if err := s.repo.Create(ctx, event); err != nil {
		return nil, err
	}
	if err := s.calendars.AddEvent(ctx, cal.ID, event.ID); err != nil {
		return nil, err
	}

	if err := s.invite(ctx, organizer.ID, organizer.FullName(), event, req.InviteeIDs); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *EventService) update(ctx context.Context, userID, eventID uuid.UUID, req *dto.SaveEventRequest, schedule validator.Schedule) (*entity.Event, bool, error) {
	event, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return nil, false, err
	}
	if event == nil {
		return nil, false, errors.NewAppError(errors.ErrNotFound, "event not found", nil)
	}
	if !CanAlterEvent(userID, event) {
		visible, err := s.canView(ctx, userID, event)
		if err != nil {
			return nil, false, err
		}
		if !visible {
			return nil, false, errors.NewAppError(errors.ErrNotFound, "event not found", nil)
		}
		return event, false, nil
	}

	if !entity.SameDay(event.Day, schedule.Day) {
		event.BadWeatherAlertSent = false
	}
	applyRequest(event, req, schedule)
	if err := s.repo.Update(ctx, event); err != nil {
		return nil, false, err
	}
	return event, true, nil
}

// invite sends one invitation per distinct known invitee other than the organizer.
func (s *EventService) invite(ctx context.Context, organizerID uuid.UUID, organizerName string, event *entity.Event, inviteeIDs []uuid.UUID) error {
	ids := make([]uuid.UUID, 0, len(inviteeIDs))
	seen := make(map[uuid.UUID]struct{}, len(inviteeIDs))
	for _, id := range inviteeIDs {
		if id == organizerID || id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil
	}

	invitees, err := s.users.GetUsersByIDs(ctx, ids)
	if err != nil {
		return err
	}
	if len(invitees) < len(ids) {
		logger.Warn("EventService:Invite:UnknownInvitees", "event_id", event.ID, "requested", len(ids), "found", len(invitees))
	}

	title := organizerName + " invited you!"
	content := invitationContent(organizerName, event)
	for _, invitee := range invitees {
		if _, err := s.notifier.SendNotification(ctx, title, content, true, invitee.ID, event.ID); err != nil {
			return err
		}
	}
	return nil
}

// DeleteEvent removes the event with its notifications and memberships.
// Non-organizers get Altered false.
func (s *EventService) DeleteEvent(ctx context.Context, userID, eventID uuid.UUID) (*dto.DeleteEventResponse, *errors.AppError) {
	altered := false
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		event, err := s.repo.GetByID(ctx, eventID)
		if err != nil {
			return err
		}
		if event == nil {
			return errors.NewAppError(errors.ErrNotFound, "event not found", nil)
		}
		if !CanAlterEvent(userID, event) {
			return nil
		}

		if err := s.notifier.DeleteByEvent(ctx, eventID); err != nil {
			return err
		}
		if err := s.calendars.RemoveEventFromAll(ctx, eventID); err != nil {
			return err
		}
		if err := s.repo.Delete(ctx, eventID); err != nil {
			return err
		}
		altered = true
		return nil
	})
	if err != nil {
		logger.Error("EventService:DeleteEvent:Error", "event_id", eventID, "error", err)
		return nil, errors.Wrap(err, errors.ErrInternalServer, "failed to delete event")
	}

	logger.Info("EventService:DeleteEvent:Done", "event_id", eventID, "altered", altered)
	return &dto.DeleteEventResponse{Altered: altered}, nil
}

func (s *EventService) GetEvent(ctx context.Context, userID, eventID uuid.UUID) (*dto.EventResponse, *errors.AppError) {
	event, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		logger.Error("EventService:GetEvent:Error", "event_id", eventID, "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to get event", err)
	}
	if event == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "event not found", nil)
	}

	visible, err := s.canView(ctx, userID, event)
	if err != nil {
		logger.Error("EventService:GetEvent:CanView:Error", "event_id", eventID, "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to get event", err)
	}
	if !visible {
		return nil, errors.NewAppError(errors.ErrNotFound, "event not found", nil)
	}

	resp, err := s.toResponse(ctx, event, userID)
	if err != nil {
		logger.Error("EventService:GetEvent:Describe:Error", "event_id", eventID, "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to get event", err)
	}
	return resp, nil
}

// GetEventsByDate lists the events of the user's calendar on date, by start time.
func (s *EventService) GetEventsByDate(ctx context.Context, userID uuid.UUID, date string) ([]dto.EventResponse, *errors.AppError) {
	day, err := time.Parse(constants.DateLayout, date)
	if err != nil {
		return nil, errors.NewValidationError("Invalid date", map[string]string{"date": "The date must be formatted as YYYY-MM-DD"})
	}

	events, err := s.repo.GetByDate(ctx, userID, day)
	if err != nil {
		logger.Error("EventService:GetEventsByDate:Error", "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to get events", err)
	}

	responses := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		resp, err := s.toResponse(ctx, &events[i], userID)
		if err != nil {
			logger.Error("EventService:GetEventsByDate:Describe:Error", "event_id", events[i].ID, "error", err)
			return nil, errors.NewAppError(errors.ErrInternalServer, "failed to get events", err)
		}
		responses = append(responses, *resp)
	}
	return responses, nil
}

// canView reports whether userID may read event: the organizer, the owners of
// calendars containing it, and users notified about it.
func (s *EventService) canView(ctx context.Context, userID uuid.UUID, event *entity.Event) (bool, error) {
	if CanAlterEvent(userID, event) {
		return true, nil
	}
	calendars, err := s.calendars.GetCalendarsByEvent(ctx, event.ID)
	if err != nil {
		return false, err
	}
	for _, cal := range calendars {
		if cal.OwnerID == userID {
			return true, nil
		}
	}
	return s.notifier.WasNotified(ctx, userID, event.ID)
}

// toResponse maps event with its organizer name and participants.
func (s *EventService) toResponse(ctx context.Context, event *entity.Event, viewerID uuid.UUID) (*dto.EventResponse, error) {
	resp := mapper.ToEventResponse(event, viewerID)
	organizer, err := s.users.GetUserByID(ctx, event.OrganizerID)
	if err != nil {
		return nil, err
	}
	participants, err := s.users.GetUsersByEvent(ctx, event.ID)
	if err != nil {
		return nil, err
	}
	mapper.AttachPeople(resp, organizer, participants)
	return resp, nil
}

func applyRequest(event *entity.Event, req *dto.SaveEventRequest, schedule validator.Schedule) {
	event.Name = strings.TrimSpace(req.Name)
	event.City = strings.TrimSpace(req.City)
	event.LocationDetails = strings.TrimSpace(req.LocationDetails)
	event.Outdoor = req.Outdoor
	event.Day = schedule.Day
	event.StartTime = schedule.StartClock()
	event.EndTime = schedule.EndClock()
}

func invitationContent(organizerName string, event *entity.Event) string {
	return fmt.Sprintf("%s invited you to \"%s\" on %s, from %s to %s, in %s.",
		organizerName, event.Name, event.Day.Format("02-01-2006"),
		event.StartTime, event.EndTime, event.FullLocation())
}
