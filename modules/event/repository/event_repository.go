package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"meteocal/core/constants"
	"meteocal/core/database"
	"meteocal/core/logger"
	"meteocal/modules/event/entity"

	"github.com/google/uuid"
)

type EventRepository interface {
	Create(ctx context.Context, event *entity.Event) error
	// GetByID returns nil, nil when no row matches.
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Event, error)
	Update(ctx context.Context, event *entity.Event) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetByDate(ctx context.Context, userID uuid.UUID, day time.Time) ([]entity.Event, error)
	GetBetween(ctx context.Context, from, to time.Time) ([]entity.Event, error)

	// FindEventsForAlert lists outdoor events on day, not yet alerted,
	// that belong to a calendar owned by userID.
	FindEventsForAlert(ctx context.Context, day time.Time, userID uuid.UUID) ([]entity.Event, error)
	// MarkAlertSent sets the alert flag only if it is still false and
	// reports whether this call flipped it.
	MarkAlertSent(ctx context.Context, id uuid.UUID) (bool, error)
	UpdateForecast(ctx context.Context, id uuid.UUID, forecast string) error
}

type eventRepository struct {
	db database.IDatabase
}

func NewEventRepository(db database.IDatabase) EventRepository {
	return &eventRepository{db: db}
}

const eventColumns = `e.id, e.organizer_id, e.name, e.city, e.location_details, e.outdoor, e.event_day,
	e.start_time, e.end_time, e.weather_forecast, e.bad_weather_alert_sent, e.created_at, e.updated_at`

func (r *eventRepository) Create(ctx context.Context, event *entity.Event) error {
	query := `
		INSERT INTO events (organizer_id, name, city, location_details, outdoor, event_day, start_time, end_time)
		VALUES ($1, $2, $3, $4, $5, $6::date, $7, $8)
		RETURNING id, bad_weather_alert_sent, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		event.OrganizerID, event.Name, event.City, event.LocationDetails, event.Outdoor,
		event.Day.Format(constants.DateLayout), event.StartTime, event.EndTime,
	).Scan(&event.ID, &event.BadWeatherAlertSent, &event.CreatedAt, &event.UpdatedAt)
	if err != nil {
		logger.Error("EventRepository:Create:Error", "error", err)
		return err
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	var event entity.Event
	query := `SELECT ` + eventColumns + ` FROM events e WHERE e.id = $1`
	if err := r.db.GetContext(ctx, &event, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("EventRepository:GetByID:Error", "error", err)
		return nil, err
	}
	return &event, nil
}

// Update writes every mutable column. organizer_id is never updated.
func (r *eventRepository) Update(ctx context.Context, event *entity.Event) error {
	query := `
		UPDATE events
		SET name = $2, city = $3, location_details = $4, outdoor = $5, event_day = $6::date,
			start_time = $7, end_time = $8, bad_weather_alert_sent = $9, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		event.ID, event.Name, event.City, event.LocationDetails, event.Outdoor,
		event.Day.Format(constants.DateLayout), event.StartTime, event.EndTime, event.BadWeatherAlertSent,
	).Scan(&event.UpdatedAt)
	if err != nil {
		logger.Error("EventRepository:Update:Error", "error", err)
		return err
	}
	return nil
}

func (r *eventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id); err != nil {
		logger.Error("EventRepository:Delete:Error", "error", err)
		return err
	}
	return nil
}

func (r *eventRepository) GetByDate(ctx context.Context, userID uuid.UUID, day time.Time) ([]entity.Event, error) {
	events := []entity.Event{}
	query := `
		SELECT ` + eventColumns + `
		FROM events e
		JOIN calendar_events ce ON ce.event_id = e.id
		JOIN calendars c ON c.id = ce.calendar_id
		WHERE c.owner_id = $1 AND e.event_day = $2::date
		ORDER BY e.start_time
	`
	if err := r.db.SelectContext(ctx, &events, query, userID, day.Format(constants.DateLayout)); err != nil {
		logger.Error("EventRepository:GetByDate:Error", "error", err)
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) GetBetween(ctx context.Context, from, to time.Time) ([]entity.Event, error) {
	events := []entity.Event{}
	query := `
		SELECT ` + eventColumns + `
		FROM events e
		WHERE e.event_day BETWEEN $1::date AND $2::date
		ORDER BY e.event_day, e.start_time
	`
	if err := r.db.SelectContext(ctx, &events, query, from.Format(constants.DateLayout), to.Format(constants.DateLayout)); err != nil {
		logger.Error("EventRepository:GetBetween:Error", "error", err)
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) FindEventsForAlert(ctx context.Context, day time.Time, userID uuid.UUID) ([]entity.Event, error) {
	events := []entity.Event{}
	query := `
		SELECT DISTINCT ` + eventColumns + `
		FROM events e
		JOIN calendar_events ce ON ce.event_id = e.id
		JOIN calendars c ON c.id = ce.calendar_id
		WHERE c.owner_id = $1
			AND e.event_day = $2::date
			AND e.outdoor = true
			AND e.bad_weather_alert_sent = false
	`
	if err := r.db.SelectContext(ctx, &events, query, userID, day.Format(constants.DateLayout)); err != nil {
		logger.Error("EventRepository:FindEventsForAlert:Error", "error", err)
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) MarkAlertSent(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `
		UPDATE events
		SET bad_weather_alert_sent = true, updated_at = NOW()
		WHERE id = $1 AND bad_weather_alert_sent = false
	`
	res, err := r.db.ExecResultContext(ctx, query, id)
	if err != nil {
		logger.Error("EventRepository:MarkAlertSent:Error", "error", err)
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *eventRepository) UpdateForecast(ctx context.Context, id uuid.UUID, forecast string) error {
	query := `UPDATE events SET weather_forecast = $2, updated_at = NOW() WHERE id = $1`
	if err := r.db.ExecContext(ctx, query, id, forecast); err != nil {
		logger.Error("EventRepository:UpdateForecast:Error", "error", err)
		return err
	}
	return nil
}
