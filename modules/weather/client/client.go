package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"meteocal/core/cache"
	"meteocal/core/constants"
	"meteocal/core/logger"

	"github.com/gosimple/slug"
)

// DayForecast is one element of the provider's per-day array. Index 0 is today.
type DayForecast struct {
	DayOfWeek string `json:"day_of_week"`
	High      string `json:"high"`
	Low       string `json:"low"`
	Condition string `json:"condition"`
}

type Provider interface {
	DailyForecast(ctx context.Context, city string) ([]DayForecast, error)
}

type Config struct {
	BaseURL      string
	APIKey       string
	APIKeyHeader string
	Timeout      time.Duration
	CacheTTL     time.Duration
}

// Client calls the forecast provider and caches raw responses per city.
type Client struct {
	http  *http.Client
	cfg   Config
	cache cache.Cache
}

func NewClient(cfg Config, cache cache.Cache) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = constants.DefaultTimeout
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = constants.ForecastCacheTTL
	}
	return &Client{
		http:  &http.Client{Timeout: cfg.Timeout},
		cfg:   cfg,
		cache: cache,
	}
}

func CacheKey(city string) string {
	return constants.RedisKeyForecast + slug.Make(city)
}

func (c *Client) DailyForecast(ctx context.Context, city string) ([]DayForecast, error) {
	key := CacheKey(city)

	if c.cache != nil {
		body, ok, err := c.cache.Get(ctx, key)
		if err != nil {
			logger.Warn("WeatherClient:DailyForecast:CacheGet:Error", "key", key, "error", err)
		} else if ok {
			days, err := decode(body)
			if err == nil {
				return days, nil
			}
			logger.Warn("WeatherClient:DailyForecast:CacheDecode:Error", "key", key, "error", err)
		}
	}

	body, err := c.fetch(ctx, city)
	if err != nil {
		return nil, err
	}
	days, err := decode(body)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, key, body, c.cfg.CacheTTL); err != nil {
			logger.Warn("WeatherClient:DailyForecast:CacheSet:Error", "key", key, "error", err)
		}
	}
	return days, nil
}

func (c *Client) fetch(ctx context.Context, city string) ([]byte, error) {
	endpoint, err := url.Parse(c.cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid forecast url: %w", err)
	}
	q := endpoint.Query()
	q.Set("location", city)
	endpoint.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.cfg.APIKey != "" && c.cfg.APIKeyHeader != "" {
		req.Header.Set(c.cfg.APIKeyHeader, c.cfg.APIKey)
	}

	logger.Debug("WeatherClient:Fetch:Start", "city", city)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("forecast request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("forecast provider returned status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read forecast body: %w", err)
	}
	return body, nil
}

func decode(body []byte) ([]DayForecast, error) {
	var days []DayForecast
	if err := json.Unmarshal(body, &days); err != nil {
		return nil, fmt.Errorf("decode forecast: %w", err)
	}
	return days, nil
}
