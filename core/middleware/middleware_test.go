package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"meteocal/core/config"
	"meteocal/core/constants"
	"meteocal/core/utils"
	"meteocal/modules/storetest"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func serve(t *testing.T, m *Middleware, header string) (int, *utils.TokenClaims) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/private/ping", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var claims *utils.TokenClaims
	handler := m.AuthMiddleware()(func(c echo.Context) error {
		claims, _ = c.Get(constants.ContextKeyTokenData).(*utils.TokenClaims)
		return c.NoContent(http.StatusNoContent)
	})

	if err := handler(c); err != nil {
		he, ok := err.(*echo.HTTPError)
		if !ok {
			t.Fatalf("unexpected error type %T", err)
		}
		return he.Code, nil
	}
	return rec.Code, claims
}

func TestAuthMiddleware(t *testing.T) {
	config.Set(&config.Config{JWT: config.JWTConfig{Secret: "test-secret"}})
	defer config.Set(nil)

	userID := uuid.New()
	access, err := utils.GenerateToken(userID, "ada@example.com", constants.ScopeTokenAccess)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	refresh, err := utils.GenerateToken(userID, "ada@example.com", constants.ScopeTokenRefresh)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	revoked, err := utils.GenerateToken(userID, "ada@example.com", constants.ScopeTokenAccess)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	cache := storetest.NewCache()
	if err := cache.AddToTokenBlacklist(context.Background(), revoked, 0); err != nil {
		t.Fatalf("AddToTokenBlacklist() error = %v", err)
	}
	m := NewMiddleware(cache)

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"valid access token", "Bearer " + access, http.StatusNoContent},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + access, http.StatusUnauthorized},
		{"refresh token", "Bearer " + refresh, http.StatusUnauthorized},
		{"revoked token", "Bearer " + revoked, http.StatusUnauthorized},
		{"garbage", "Bearer abc.def.ghi", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, claims := serve(t, m, tc.header)
			if code != tc.want {
				t.Fatalf("status = %d, want %d", code, tc.want)
			}
			if tc.want == http.StatusNoContent && (claims == nil || claims.UserID != userID) {
				t.Fatalf("claims = %+v, want user %s", claims, userID)
			}
		})
	}
}

func TestRequestIDEchoesHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(constants.HeaderRequestID, "req-42")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := NewMiddleware(nil).RequestID()(func(c echo.Context) error {
		if got := c.Get(constants.ContextKeyRequestID); got != "req-42" {
			t.Errorf("request id in context = %v", got)
		}
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if got := rec.Header().Get(constants.HeaderRequestID); got != "req-42" {
		t.Fatalf("response header = %q", got)
	}
}
