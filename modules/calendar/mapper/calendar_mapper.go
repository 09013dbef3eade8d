package mapper

import (
	"meteocal/modules/calendar/dto"
	"meteocal/modules/calendar/entity"
)

func ToCalendarResponse(cal *entity.Calendar) *dto.CalendarResponse {
	if cal == nil {
		return nil
	}
	return &dto.CalendarResponse{
		ID:          cal.ID,
		OwnerID:     cal.OwnerID,
		RainIsBad:   cal.RainIsBad,
		CloudyIsBad: cal.CloudyIsBad,
		SnowIsBad:   cal.SnowIsBad,
		CreatedAt:   cal.CreatedAt,
		UpdatedAt:   cal.UpdatedAt,
	}
}

func ToPreferences(req *dto.CalendarRequest) entity.BadWeatherPreferences {
	return entity.BadWeatherPreferences{
		RainIsBad:   req.RainIsBad,
		CloudyIsBad: req.CloudyIsBad,
		SnowIsBad:   req.SnowIsBad,
	}
}
