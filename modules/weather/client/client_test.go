package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"meteocal/modules/storetest"
)

const sampleBody = `[
	{"day_of_week":"Monday","high":"24","low":"15","condition":"Sunny"},
	{"day_of_week":"Tuesday","high":"20","low":"13","condition":"Light rain"}
]`

func TestCacheKey(t *testing.T) {
	if got := CacheKey("New York"); got != "forecast:new-york" {
		t.Fatalf("CacheKey() = %q", got)
	}
}

func TestDailyForecastFetchesAndCaches(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		if got := r.URL.Query().Get("location"); got != "Milan" {
			t.Errorf("location = %q, want Milan", got)
		}
		if got := r.Header.Get("X-Api-Key"); got != "secret" {
			t.Errorf("api key header = %q, want secret", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleBody))
	}))
	defer srv.Close()

	cache := storetest.NewCache()
	c := NewClient(Config{BaseURL: srv.URL, APIKey: "secret", APIKeyHeader: "X-Api-Key"}, cache)

	for i := 0; i < 2; i++ {
		days, err := c.DailyForecast(context.Background(), "Milan")
		if err != nil {
			t.Fatalf("DailyForecast() error = %v", err)
		}
		if len(days) != 2 || days[1].Condition != "Light rain" {
			t.Fatalf("days = %+v", days)
		}
	}

	if got := atomic.LoadInt32(&hits); got != 1 {
		t.Fatalf("provider called %d times, want 1", got)
	}
	if cache.Sets != 1 {
		t.Fatalf("cache sets = %d, want 1", cache.Sets)
	}
}

func TestDailyForecastProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	cache := storetest.NewCache()
	c := NewClient(Config{BaseURL: srv.URL}, cache)
	if _, err := c.DailyForecast(context.Background(), "Milan"); err == nil {
		t.Fatal("expected an error for a non-200 response")
	}
	if cache.Sets != 0 {
		t.Fatal("error response was cached")
	}
}

func TestDailyForecastWithoutCache(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sampleBody))
	}))
	defer srv.Close()

	days, err := NewClient(Config{BaseURL: srv.URL}, nil).DailyForecast(context.Background(), "Milan")
	if err != nil {
		t.Fatalf("DailyForecast() error = %v", err)
	}
	if days[0].Condition != "Sunny" {
		t.Fatalf("days = %+v", days)
	}
}
