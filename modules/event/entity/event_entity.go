package entity

import (
	"strings"
	"time"

	"meteocal/core/constants"
	"meteocal/core/entity"

	"github.com/google/uuid"
)

type Event struct {
	OrganizerID         uuid.UUID `db:"organizer_id" json:"organizer_id"`
	Name                string    `db:"name" json:"name"`
	City                string    `db:"city" json:"city"`
	LocationDetails     string    `db:"location_details" json:"location_details"`
	Outdoor             bool      `db:"outdoor" json:"outdoor"`
	Day                 time.Time `db:"event_day" json:"day"`
	StartTime           string    `db:"start_time" json:"start_time"`
	EndTime             string    `db:"end_time" json:"end_time"`
	WeatherForecast     *string   `db:"weather_forecast" json:"weather_forecast"`
	BadWeatherAlertSent bool      `db:"bad_weather_alert_sent" json:"bad_weather_alert_sent"`
	entity.BaseEntity
}

// Forecast returns the stored forecast text, empty when none was fetched.
func (e *Event) Forecast() string {
	if e.WeatherForecast == nil {
		return ""
	}
	return *e.WeatherForecast
}

// FullLocation is the city followed by the optional location details.
func (e *Event) FullLocation() string {
	details := strings.TrimSpace(e.LocationDetails)
	if details == "" {
		return e.City
	}
	return e.City + ", " + details
}

// SameDay compares calendar dates, ignoring time of day and zone.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// At combines the event day with an "HH:MM" clock value in loc.
func (e *Event) At(clock string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(constants.TimeLayout, clock)
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := e.Day.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, loc), nil
}
