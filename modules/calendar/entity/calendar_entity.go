package entity

import (
	"meteocal/core/entity"

	"github.com/google/uuid"
)

// BadWeatherPreferences marks which weather categories the owner considers bad.
type BadWeatherPreferences struct {
	RainIsBad   bool `db:"rain_is_bad" json:"rain_is_bad"`
	CloudyIsBad bool `db:"cloudy_is_bad" json:"cloudy_is_bad"`
	SnowIsBad   bool `db:"snow_is_bad" json:"snow_is_bad"`
}

type Calendar struct {
	OwnerID uuid.UUID `db:"owner_id" json:"owner_id"`
	BadWeatherPreferences
	entity.BaseEntity
}
