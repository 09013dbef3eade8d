package database

import (
	"context"
	"fmt"

	"meteocal/core/logger"
)

var schema = []string{
	`CREATE EXTENSION IF NOT EXISTS pgcrypto`,
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		user_group TEXT NOT NULL DEFAULT 'USERS',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS calendars (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		owner_id UUID NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
		rain_is_bad BOOLEAN NOT NULL DEFAULT FALSE,
		cloudy_is_bad BOOLEAN NOT NULL DEFAULT FALSE,
		snow_is_bad BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS events (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		organizer_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		city TEXT NOT NULL,
		location_details TEXT NOT NULL DEFAULT '',
		outdoor BOOLEAN NOT NULL DEFAULT FALSE,
		event_day DATE NOT NULL,
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		weather_forecast TEXT,
		bad_weather_alert_sent BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_events_day ON events(event_day)`,
	`CREATE TABLE IF NOT EXISTS calendar_events (
		calendar_id UUID NOT NULL REFERENCES calendars(id) ON DELETE CASCADE,
		event_id UUID NOT NULL REFERENCES events(id) ON DELETE CASCADE,
		PRIMARY KEY (calendar_id, event_id)
	)`,
	`CREATE TABLE IF NOT EXISTS notifications (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		receiver_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		event_id UUID NOT NULL REFERENCES events(id) ON DELETE CASCADE,
		title TEXT NOT NULL,
		content TEXT NOT NULL,
		is_invitation BOOLEAN NOT NULL DEFAULT FALSE,
		invitation_status TEXT NOT NULL DEFAULT 'none',
		is_read BOOLEAN NOT NULL DEFAULT FALSE,
		send_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_notifications_receiver ON notifications(receiver_id, is_read)`,
}

// Migrate creates the tables when they are missing.
func Migrate(ctx context.Context, db IDatabase) error {
	logger.Info("Database:Migrate:Start", "statements", len(schema))
	return db.WithinTransaction(ctx, func(ctx context.Context) error {
		for i, stmt := range schema {
			if err := db.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("migration statement %d: %w", i, err)
			}
		}
		logger.Info("Database:Migrate:Done")
		return nil
	})
}
