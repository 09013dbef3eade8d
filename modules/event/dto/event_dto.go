package dto

import (
	"time"

	"github.com/google/uuid"
)

// SaveEventRequest is shared by event creation and update. InviteeIDs is
// only read on creation.
type SaveEventRequest struct {
	Name            string      `json:"name"`
	City            string      `json:"city"`
	LocationDetails string      `json:"location_details"`
	Outdoor         bool        `json:"outdoor"`
	Day             string      `json:"day"`
	StartTime       string      `json:"start_time"`
	EndTime         string      `json:"end_time"`
	InviteeIDs      []uuid.UUID `json:"invitee_ids"`
}

// ParticipantResponse is a user whose calendar contains the event.
type ParticipantResponse struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
}

type EventResponse struct {
	ID                  uuid.UUID             `json:"id"`
	OrganizerID         uuid.UUID             `json:"organizer_id"`
	OrganizerName       string                `json:"organizer_name"`
	Name                string                `json:"name"`
	City                string                `json:"city"`
	LocationDetails     string                `json:"location_details"`
	Outdoor             bool                  `json:"outdoor"`
	Day                 string                `json:"day"`
	StartTime           string                `json:"start_time"`
	EndTime             string                `json:"end_time"`
	WeatherForecast     string                `json:"weather_forecast"`
	BadWeatherAlertSent bool                  `json:"bad_weather_alert_sent"`
	CanAlter            bool                  `json:"can_alter"`
	Participants        []ParticipantResponse `json:"participants"`
	CreatedAt           time.Time             `json:"created_at"`
	UpdatedAt           time.Time             `json:"updated_at"`
}

type SaveEventResponse struct {
	Event   *EventResponse `json:"event,omitempty"`
	Altered bool           `json:"altered"`
}

type DeleteEventResponse struct {
	Altered bool `json:"altered"`
}
