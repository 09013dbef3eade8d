package service

import (
	"testing"

	"meteocal/modules/calendar/entity"
)

func TestIsBadWeatherExamples(t *testing.T) {
	cases := []struct {
		name     string
		prefs    entity.BadWeatherPreferences
		forecast string
		want     bool
	}{
		{"rain flagged", entity.BadWeatherPreferences{RainIsBad: true}, "Light rain expected", true},
		{"cloud not flagged", entity.BadWeatherPreferences{RainIsBad: true}, "Partly cloudy", false},
		{"empty forecast", entity.BadWeatherPreferences{RainIsBad: true, CloudyIsBad: true, SnowIsBad: true}, "", false},
		{"case insensitive", entity.BadWeatherPreferences{SnowIsBad: true}, "HEAVY SNOWFALL", true},
		{"nothing flagged", entity.BadWeatherPreferences{}, "Rain and snow", false},
		{"no category", entity.BadWeatherPreferences{RainIsBad: true, CloudyIsBad: true, SnowIsBad: true}, "Sunny", false},
		{"mixed text one flag", entity.BadWeatherPreferences{CloudyIsBad: true}, "Rain with clouds", true},
		{"substring match", entity.BadWeatherPreferences{RainIsBad: true}, "Drainage works", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsBadWeather(tc.prefs, tc.forecast); got != tc.want {
				t.Fatalf("IsBadWeather(%+v, %q) = %v, want %v", tc.prefs, tc.forecast, got, tc.want)
			}
		})
	}
}

func TestIsBadWeatherAllPreferenceCombinations(t *testing.T) {
	forecasts := []struct {
		text               string
		cloudy, rain, snow bool
	}{
		{"Cloudy", true, false, false},
		{"Rain", false, true, false},
		{"Snow", false, false, true},
		{"Cloudy with rain and snow", true, true, true},
		{"Clear sky", false, false, false},
	}

	for mask := 0; mask < 8; mask++ {
		prefs := entity.BadWeatherPreferences{
			RainIsBad:   mask&1 != 0,
			CloudyIsBad: mask&2 != 0,
			SnowIsBad:   mask&4 != 0,
		}
		for _, f := range forecasts {
			want := (f.cloudy && prefs.CloudyIsBad) || (f.rain && prefs.RainIsBad) || (f.snow && prefs.SnowIsBad)
			if got := IsBadWeather(prefs, f.text); got != want {
				t.Fatalf("prefs %+v forecast %q: got %v, want %v", prefs, f.text, got, want)
			}
		}
	}
}
