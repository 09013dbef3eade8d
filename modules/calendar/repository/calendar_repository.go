package repository

import (
	"context"
	"database/sql"
	"errors"

	"meteocal/core/database"
	"meteocal/core/logger"
	"meteocal/modules/calendar/entity"
	eventEntity "meteocal/modules/event/entity"

	"github.com/google/uuid"
)

type CalendarRepository interface {
	CreateCalendar(ctx context.Context, cal *entity.Calendar) (*entity.Calendar, error)
	// GetCalendarByOwner returns nil, nil when the user owns no calendar.
	GetCalendarByOwner(ctx context.Context, ownerID uuid.UUID) (*entity.Calendar, error)
	UpdatePreferences(ctx context.Context, cal *entity.Calendar) error

	// Membership
	AddEvent(ctx context.Context, calendarID, eventID uuid.UUID) error
	RemoveEventFromAll(ctx context.Context, eventID uuid.UUID) error
	GetCalendarsByEvent(ctx context.Context, eventID uuid.UUID) ([]entity.Calendar, error)
	GetEventsByCalendar(ctx context.Context, calendarID uuid.UUID) ([]eventEntity.Event, error)
}

type calendarRepository struct {
	db database.IDatabase
}

func NewCalendarRepository(db database.IDatabase) CalendarRepository {
	return &calendarRepository{db: db}
}

const calendarColumns = `c.id, c.owner_id, c.rain_is_bad, c.cloudy_is_bad, c.snow_is_bad, c.created_at, c.updated_at`

func (r *calendarRepository) CreateCalendar(ctx context.Context, cal *entity.Calendar) (*entity.Calendar, error) {
	query := `
		INSERT INTO calendars (owner_id, rain_is_bad, cloudy_is_bad, snow_is_bad)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		cal.OwnerID, cal.RainIsBad, cal.CloudyIsBad, cal.SnowIsBad,
	).Scan(&cal.ID, &cal.CreatedAt, &cal.UpdatedAt)
	if err != nil {
		logger.Error("CalendarRepository:CreateCalendar:Error", "error", err)
		return nil, err
	}
	return cal, nil
}

func (r *calendarRepository) GetCalendarByOwner(ctx context.Context, ownerID uuid.UUID) (*entity.Calendar, error) {
	var cal entity.Calendar
	query := `SELECT ` + calendarColumns + ` FROM calendars c WHERE c.owner_id = $1`
	if err := r.db.GetContext(ctx, &cal, query, ownerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("CalendarRepository:GetCalendarByOwner:Error", "error", err)
		return nil, err
	}
	return &cal, nil
}

// UpdatePreferences never touches owner_id.
func (r *calendarRepository) UpdatePreferences(ctx context.Context, cal *entity.Calendar) error {
	query := `
		UPDATE calendars
		SET rain_is_bad = $2, cloudy_is_bad = $3, snow_is_bad = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(ctx, query, cal.ID, cal.RainIsBad, cal.CloudyIsBad, cal.SnowIsBad).Scan(&cal.UpdatedAt)
	if err != nil {
		logger.Error("CalendarRepository:UpdatePreferences:Error", "error", err)
		return err
	}
	return nil
}

func (r *calendarRepository) AddEvent(ctx context.Context, calendarID, eventID uuid.UUID) error {
	query := `
		INSERT INTO calendar_events (calendar_id, event_id)
		VALUES ($1, $2)
		ON CONFLICT (calendar_id, event_id) DO NOTHING
	`
	if err := r.db.ExecContext(ctx, query, calendarID, eventID); err != nil {
		logger.Error("CalendarRepository:AddEvent:Error", "error", err)
		return err
	}
	return nil
}

func (r *calendarRepository) RemoveEventFromAll(ctx context.Context, eventID uuid.UUID) error {
	if err := r.db.ExecContext(ctx, `DELETE FROM calendar_events WHERE event_id = $1`, eventID); err != nil {
		logger.Error("CalendarRepository:RemoveEventFromAll:Error", "error", err)
		return err
	}
	return nil
}

func (r *calendarRepository) GetCalendarsByEvent(ctx context.Context, eventID uuid.UUID) ([]entity.Calendar, error) {
	calendars := []entity.Calendar{}
	query := `
		SELECT ` + calendarColumns + `
		FROM calendars c
		JOIN calendar_events ce ON ce.calendar_id = c.id
		WHERE ce.event_id = $1
	`
	if err := r.db.SelectContext(ctx, &calendars, query, eventID); err != nil {
		logger.Error("CalendarRepository:GetCalendarsByEvent:Error", "error", err)
		return nil, err
	}
	return calendars, nil
}

func (r *calendarRepository) GetEventsByCalendar(ctx context.Context, calendarID uuid.UUID) ([]eventEntity.Event, error) {
	events := []eventEntity.Event{}
	query := `
		SELECT e.id, e.organizer_id, e.name, e.city, e.location_details, e.outdoor, e.event_day,
			e.start_time, e.end_time, e.weather_forecast, e.bad_weather_alert_sent, e.created_at, e.updated_at
		FROM events e
		JOIN calendar_events ce ON ce.event_id = e.id
		WHERE ce.calendar_id = $1
		ORDER BY e.event_day, e.start_time
	`
	if err := r.db.SelectContext(ctx, &events, query, calendarID); err != nil {
		logger.Error("CalendarRepository:GetEventsByCalendar:Error", "error", err)
		return nil, err
	}
	return events, nil
}
