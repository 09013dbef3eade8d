package config

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"meteocal/core/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Weather  WeatherConfig
	Queue    QueueConfig
}

type AppConfig struct {
	Name     string
	Env      string
	LogLevel string
	Timezone string
}

type ServerConfig struct {
	Host string
	Port int
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	Migrate  bool
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret string
}

type WeatherConfig struct {
	BaseURL      string
	APIKey       string
	APIKeyHeader string
	Timeout      time.Duration
	CacheTTL     time.Duration
	HorizonDays  int
	RefreshCron  string
}

type QueueConfig struct {
	Enabled     bool
	Concurrency int
}

var (
	cfg *Config
	mu  sync.RWMutex
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "meteocal")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.timezone", "Europe/Rome")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 7070)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", "meteocal")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.migrate", true)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("jwt.secret", "")

	v.SetDefault("weather.base_url", "https://george-vustrey-weather.p.mashape.com/api.php")
	v.SetDefault("weather.api_key", "")
	v.SetDefault("weather.api_key_header", "X-Mashape-Key")
	v.SetDefault("weather.timeout", "10s")
	v.SetDefault("weather.cache_ttl", "1h")
	v.SetDefault("weather.horizon_days", 7)
	v.SetDefault("weather.refresh_cron", "0 */3 * * *")

	v.SetDefault("queue.enabled", true)
	v.SetDefault("queue.concurrency", 5)
}

// Load reads configuration from the environment (and .env when present).
// Keys map to env vars by upper-casing and replacing dots: weather.base_url -> WEATHER_BASE_URL.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug("Config:Load:NoDotEnv", "error", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	c := &Config{
		App: AppConfig{
			Name:     v.GetString("app.name"),
			Env:      v.GetString("app.env"),
			LogLevel: v.GetString("app.log_level"),
			Timezone: v.GetString("app.timezone"),
		},
		Server: ServerConfig{
			Host: v.GetString("server.host"),
			Port: v.GetInt("server.port"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("database.host"),
			Port:     v.GetInt("database.port"),
			User:     v.GetString("database.user"),
			Password: v.GetString("database.password"),
			DBName:   v.GetString("database.dbname"),
			SSLMode:  v.GetString("database.sslmode"),
			Migrate:  v.GetBool("database.migrate"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		JWT: JWTConfig{
			Secret: v.GetString("jwt.secret"),
		},
		Weather: WeatherConfig{
			BaseURL:      v.GetString("weather.base_url"),
			APIKey:       v.GetString("weather.api_key"),
			APIKeyHeader: v.GetString("weather.api_key_header"),
			Timeout:      v.GetDuration("weather.timeout"),
			CacheTTL:     v.GetDuration("weather.cache_ttl"),
			HorizonDays:  v.GetInt("weather.horizon_days"),
			RefreshCron:  v.GetString("weather.refresh_cron"),
		},
		Queue: QueueConfig{
			Enabled:     v.GetBool("queue.enabled"),
			Concurrency: v.GetInt("queue.concurrency"),
		},
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.Server.Port <= 0 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Weather.HorizonDays <= 0 {
		return fmt.Errorf("weather horizon must be positive")
	}
	if c.Weather.Timeout <= 0 {
		return fmt.Errorf("weather timeout must be positive")
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.App.Timezone, err)
	}
	return nil
}

// Location returns the configured timezone; callers have already passed Validate.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func Init() (*Config, error) {
	c, err := Load()
	if err != nil {
		return nil, err
	}
	Set(c)
	return c, nil
}

func Set(c *Config) {
	mu.Lock()
	defer mu.Unlock()
	cfg = c
}

func GetSafe() (*Config, bool) {
	mu.RLock()
	defer mu.RUnlock()
	return cfg, cfg != nil
}
