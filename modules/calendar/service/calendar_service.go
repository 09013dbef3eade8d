package service

import (
	"context"
	"time"

	"meteocal/core/errors"
	"meteocal/core/logger"
	"meteocal/modules/calendar/dto"
	"meteocal/modules/calendar/entity"
	"meteocal/modules/calendar/mapper"
	"meteocal/modules/calendar/repository"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"
)

type CalendarService interface {
	CreateCalendar(ctx context.Context, ownerID uuid.UUID, req *dto.CalendarRequest) (*dto.CalendarResponse, *errors.AppError)
	GetMyCalendar(ctx context.Context, ownerID uuid.UUID) (*dto.CalendarResponse, *errors.AppError)
	UpdatePreferences(ctx context.Context, ownerID uuid.UUID, req *dto.CalendarRequest) (*dto.CalendarResponse, *errors.AppError)
	ExportICS(ctx context.Context, ownerID uuid.UUID) (string, *errors.AppError)
}

type calendarService struct {
	repo repository.CalendarRepository
	loc  *time.Location
}

func NewCalendarService(repo repository.CalendarRepository, loc *time.Location) CalendarService {
	if loc == nil {
		loc = time.UTC
	}
	return &calendarService{repo: repo, loc: loc}
}

// CreateCalendar creates the single calendar a user may own.
func (s *calendarService) CreateCalendar(ctx context.Context, ownerID uuid.UUID, req *dto.CalendarRequest) (*dto.CalendarResponse, *errors.AppError) {
	existing, err := s.repo.GetCalendarByOwner(ctx, ownerID)
	if err != nil {
		logger.Error("CalendarService:CreateCalendar:GetCalendarByOwner:Error", "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to check calendar", err)
	}
	if existing != nil {
		return nil, errors.NewAppError(errors.ErrAlreadyExists, "user already owns a calendar", nil)
	}

	cal := &entity.Calendar{
		OwnerID:               ownerID,
		BadWeatherPreferences: mapper.ToPreferences(req),
	}
	created, err := s.repo.CreateCalendar(ctx, cal)
	if err != nil {
		logger.Error("CalendarService:CreateCalendar:Error", "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to create calendar", err)
	}

	logger.Info("CalendarService:CreateCalendar:Success", "calendar_id", created.ID, "owner_id", ownerID)
	return mapper.ToCalendarResponse(created), nil
}

func (s *calendarService) GetMyCalendar(ctx context.Context, ownerID uuid.UUID) (*dto.CalendarResponse, *errors.AppError) {
	cal, appErr := s.ownedCalendar(ctx, ownerID)
	if appErr != nil {
		return nil, appErr
	}
	return mapper.ToCalendarResponse(cal), nil
}

func (s *calendarService) UpdatePreferences(ctx context.Context, ownerID uuid.UUID, req *dto.CalendarRequest) (*dto.CalendarResponse, *errors.AppError) {
	cal, appErr := s.ownedCalendar(ctx, ownerID)
	if appErr != nil {
		return nil, appErr
	}

	cal.BadWeatherPreferences = mapper.ToPreferences(req)
	if err := s.repo.UpdatePreferences(ctx, cal); err != nil {
		logger.Error("CalendarService:UpdatePreferences:Error", "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to update calendar", err)
	}
	return mapper.ToCalendarResponse(cal), nil
}

// ExportICS renders the owner's calendar events as an iCalendar document.
func (s *calendarService) ExportICS(ctx context.Context, ownerID uuid.UUID) (string, *errors.AppError) {
	cal, appErr := s.ownedCalendar(ctx, ownerID)
	if appErr != nil {
		return "", appErr
	}

	events, err := s.repo.GetEventsByCalendar(ctx, cal.ID)
	if err != nil {
		logger.Error("CalendarService:ExportICS:GetEventsByCalendar:Error", "error", err)
		return "", errors.NewAppError(errors.ErrInternalServer, "failed to load events", err)
	}

	doc := ics.NewCalendar()
	doc.SetMethod(ics.MethodPublish)
	doc.SetProductId("-//MeteoCal//Calendar Export//EN")

	for i := range events {
		event := &events[i]
		start, err := event.At(event.StartTime, s.loc)
		if err != nil {
			logger.Warn("CalendarService:ExportICS:InvalidStart", "event_id", event.ID, "error", err)
			continue
		}
		end, err := event.At(event.EndTime, s.loc)
		if err != nil {
			logger.Warn("CalendarService:ExportICS:InvalidEnd", "event_id", event.ID, "error", err)
			continue
		}

		vevent := doc.AddEvent(event.ID.String())
		vevent.SetDtStampTime(event.UpdatedAt)
		vevent.SetCreatedTime(event.CreatedAt)
		vevent.SetModifiedAt(event.UpdatedAt)
		vevent.SetStartAt(start)
		vevent.SetEndAt(end)
		vevent.SetSummary(event.Name)
		vevent.SetLocation(event.FullLocation())
		if forecast := event.Forecast(); forecast != "" {
			vevent.SetDescription("Forecast: " + forecast)
		}
	}

	return doc.Serialize(), nil
}

func (s *calendarService) ownedCalendar(ctx context.Context, ownerID uuid.UUID) (*entity.Calendar, *errors.AppError) {
	cal, err := s.repo.GetCalendarByOwner(ctx, ownerID)
	if err != nil {
		logger.Error("CalendarService:GetCalendarByOwner:Error", "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to get calendar", err)
	}
	if cal == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "calendar not found", nil)
	}
	return cal, nil
}
