package constants

import "time"

// Database
const (
	DatabaseSSLMode         = "disable"
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 10
	DatabaseConnMaxLifetime = 30 // minutes
)

// Request handling
const (
	DefaultTimeout  = 5 * time.Second
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
	DateLayout      = "2006-01-02"
	TimeLayout      = "15:04"
)

// Auth
const (
	ScopeTokenAccess  = "access"
	ScopeTokenRefresh = "refresh"

	AccessTokenDuration  = 24 * time.Hour
	RefreshTokenDuration = 7 * 24 * time.Hour

	MaxLoginAttempts = 5
	BlockDuration    = 15 * time.Minute

	UserGroupUsers = "USERS"

	ContextKeyTokenData = "token_data"
	ContextKeyRequestID = "request_id"
	HeaderRequestID     = "X-Request-ID"
)

// Redis keys
const (
	RedisKeyLoginAttempt   = "login:"
	RedisKeyTokenBlacklist = "blacklist:"
	RedisKeyForecast       = "forecast:"
)

// Weather
const (
	ForecastHorizonDays = 7
	ForecastCacheTTL    = time.Hour
)

// Notification templates
const (
	BadWeatherTitle = "Bad weather tomorrow!"
)
