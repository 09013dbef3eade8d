package service

import (
	"context"
	"errors"
	"time"

	"meteocal/core/constants"
	"meteocal/core/logger"
	eventEntity "meteocal/modules/event/entity"
	eventRepository "meteocal/modules/event/repository"
	"meteocal/modules/weather/client"

	"github.com/google/uuid"
)

var (
	ErrMissingParameters = errors.New("event has no city or day")
	ErrPastEvent         = errors.New("event is not in the future")
	ErrTooFarAway        = errors.New("event is too far away for a forecast")
	ErrNoForecast        = errors.New("no forecast available for the event day")
)

type ForecastService struct {
	provider client.Provider
	events   eventRepository.EventRepository
	loc      *time.Location
	horizon  int
	now      func() time.Time
}

func NewForecastService(provider client.Provider, events eventRepository.EventRepository, loc *time.Location, horizonDays int) *ForecastService {
	if loc == nil {
		loc = time.UTC
	}
	if horizonDays <= 0 {
		horizonDays = constants.ForecastHorizonDays
	}
	return &ForecastService{
		provider: provider,
		events:   events,
		loc:      loc,
		horizon:  horizonDays,
		now:      time.Now,
	}
}

// SetClock replaces the time source used to compute day offsets.
func (s *ForecastService) SetClock(now func() time.Time) {
	s.now = now
}

// FetchForecast returns the provider's condition text for the event day.
func (s *ForecastService) FetchForecast(ctx context.Context, event *eventEntity.Event) (string, error) {
	if event == nil || event.City == "" || event.Day.IsZero() {
		return "", ErrMissingParameters
	}

	offset := s.dayOffset(event.Day)
	if offset <= 0 {
		return "", ErrPastEvent
	}
	if offset >= s.horizon {
		return "", ErrTooFarAway
	}

	days, err := s.provider.DailyForecast(ctx, event.City)
	if err != nil {
		return "", err
	}
	if offset >= len(days) {
		return "", ErrNoForecast
	}
	return days[offset].Condition, nil
}

// RefreshEventForecast fetches and stores the forecast of one event. Forecast
// failures are stored as an empty text and not returned.
func (s *ForecastService) RefreshEventForecast(ctx context.Context, eventID uuid.UUID) error {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return err
	}
	if event == nil {
		logger.Warn("ForecastService:RefreshEventForecast:EventMissing", "event_id", eventID)
		return nil
	}
	return s.refresh(ctx, event)
}

// RefreshUpcoming refreshes every event from tomorrow to the end of the horizon.
func (s *ForecastService) RefreshUpcoming(ctx context.Context) (int, error) {
	today := s.today()
	from := today.AddDate(0, 0, 1)
	to := today.AddDate(0, 0, s.horizon-1)

	events, err := s.events.GetBetween(ctx, from, to)
	if err != nil {
		return 0, err
	}

	refreshed := 0
	for i := range events {
		if err := s.refresh(ctx, &events[i]); err != nil {
			logger.Error("ForecastService:RefreshUpcoming:Error", "event_id", events[i].ID, "error", err)
			continue
		}
		refreshed++
	}
	logger.Info("ForecastService:RefreshUpcoming:Done", "events", len(events), "refreshed", refreshed)
	return refreshed, nil
}

func (s *ForecastService) refresh(ctx context.Context, event *eventEntity.Event) error {
	forecast, err := s.FetchForecast(ctx, event)
	if err != nil {
		logger.Info("ForecastService:Refresh:Unavailable", "event_id", event.ID, "reason", err.Error())
		forecast = ""
	}
	return s.events.UpdateForecast(ctx, event.ID, forecast)
}

// today is the current date in the configured timezone at midnight UTC.
func (s *ForecastService) today() time.Time {
	y, m, d := s.now().In(s.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// dayOffset counts calendar days from today to day.
func (s *ForecastService) dayOffset(day time.Time) int {
	y, m, d := day.Date()
	target := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return int(target.Sub(s.today()).Hours() / 24)
}
