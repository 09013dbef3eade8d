package service

import (
	"strings"

	"meteocal/modules/calendar/entity"
)

// IsBadWeather reports whether forecast describes weather the preferences
// flag as bad. An empty forecast is never bad.
func IsBadWeather(prefs entity.BadWeatherPreferences, forecast string) bool {
	if forecast == "" {
		return false
	}
	text := strings.ToLower(forecast)

	cloudy := strings.Contains(text, "cloud")
	rain := strings.Contains(text, "rain")
	snow := strings.Contains(text, "snow")

	return (cloudy && prefs.CloudyIsBad) ||
		(rain && prefs.RainIsBad) ||
		(snow && prefs.SnowIsBad)
}
