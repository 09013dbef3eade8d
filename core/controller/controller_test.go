package controller

import (
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"meteocal/core/errors"

	"github.com/labstack/echo/v4"
)

func TestErrorResponseStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
		code errors.ErrorCode
	}{
		{"validation", errors.NewValidationError("bad", map[string]string{"name": "short"}), http.StatusBadRequest, errors.ErrInvalidInput},
		{"not found", errors.NewAppError(errors.ErrNotFound, "missing", nil), http.StatusNotFound, errors.ErrNotFound},
		{"conflict", errors.NewAppError(errors.ErrAlreadyExists, "taken", nil), http.StatusConflict, errors.ErrAlreadyExists},
		{"unauthorized", errors.NewAppError(errors.ErrUnauthorized, "no", nil), http.StatusUnauthorized, errors.ErrUnauthorized},
		{"plain error", stderrors.New("db down"), http.StatusInternalServerError, errors.ErrInternalServer},
	}

	h := NewBaseController()
	e := echo.New()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
			he, ok := h.ErrorResponse(c, tc.err).(*echo.HTTPError)
			if !ok {
				t.Fatal("ErrorResponse did not return an *echo.HTTPError")
			}
			if he.Code != tc.want {
				t.Fatalf("status = %d, want %d", he.Code, tc.want)
			}
			body, ok := he.Message.(*ErrorResponse)
			if !ok || body.Code != tc.code {
				t.Fatalf("body = %+v, want code %s", he.Message, tc.code)
			}
			if tc.code == errors.ErrInternalServer && body.Message != "internal server error" {
				t.Fatalf("internal message leaked: %q", body.Message)
			}
		})
	}
}

func TestParseID(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	if _, err := NewBaseController().ParseID(c, "id"); !errors.Is(err, errors.ErrInvalidRequestData) {
		t.Fatalf("ParseID() error = %v, want invalid request data", err)
	}
	if _, err := NewBaseController().CurrentUser(c); !errors.Is(err, errors.ErrUnauthorized) {
		t.Fatalf("CurrentUser() error = %v, want unauthorized", err)
	}
}
