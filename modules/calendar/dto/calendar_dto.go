package dto

import (
	"time"

	"github.com/google/uuid"
)

type CalendarRequest struct {
	RainIsBad   bool `json:"rain_is_bad"`
	CloudyIsBad bool `json:"cloudy_is_bad"`
	SnowIsBad   bool `json:"snow_is_bad"`
}

type CalendarResponse struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	RainIsBad   bool      `json:"rain_is_bad"`
	CloudyIsBad bool      `json:"cloudy_is_bad"`
	SnowIsBad   bool      `json:"snow_is_bad"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
