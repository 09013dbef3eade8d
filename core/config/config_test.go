package config

import (
	"testing"
	"time"
)

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("WEATHER_BASE_URL", "http://forecast.test/api")
	t.Setenv("WEATHER_TIMEOUT", "3s")
	t.Setenv("APP_TIMEZONE", "UTC")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Fatalf("unexpected port: %d", cfg.Server.Port)
	}
	if cfg.Weather.BaseURL != "http://forecast.test/api" {
		t.Fatalf("unexpected base url: %q", cfg.Weather.BaseURL)
	}
	if cfg.Weather.Timeout != 3*time.Second {
		t.Fatalf("unexpected timeout: %v", cfg.Weather.Timeout)
	}
	if cfg.Weather.HorizonDays != 7 {
		t.Fatalf("unexpected horizon: %d", cfg.Weather.HorizonDays)
	}
	if cfg.Location() != time.UTC {
		t.Fatalf("unexpected location: %v", cfg.Location())
	}
}

func TestLoadDefaultTimezone(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("APP_TIMEZONE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.App.Timezone != "Europe/Rome" {
		t.Fatalf("unexpected timezone: %q", cfg.App.Timezone)
	}
}

func TestValidateErrors(t *testing.T) {
	valid := Config{
		App:     AppConfig{Timezone: "UTC"},
		Server:  ServerConfig{Port: 7070},
		JWT:     JWTConfig{Secret: "s"},
		Weather: WeatherConfig{HorizonDays: 7, Timeout: time.Second},
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}

	mutations := []func(*Config){
		func(c *Config) { c.JWT.Secret = "" },
		func(c *Config) { c.Server.Port = 0 },
		func(c *Config) { c.Weather.HorizonDays = 0 },
		func(c *Config) { c.Weather.Timeout = 0 },
		func(c *Config) { c.App.Timezone = "Mars/Olympus" },
	}
	for i, mutate := range mutations {
		c := valid
		mutate(&c)
		if err := c.Validate(); err == nil {
			t.Fatalf("case %d: expected validation error", i)
		}
	}
}

func TestGetSafe(t *testing.T) {
	Set(nil)
	if _, ok := GetSafe(); ok {
		t.Fatal("expected uninitialized config")
	}
	Set(&Config{})
	if _, ok := GetSafe(); !ok {
		t.Fatal("expected initialized config")
	}
}
