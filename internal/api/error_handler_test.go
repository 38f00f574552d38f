package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/villageconnect/grievance-system/internal/core/domain"
)

func TestResolveError_DomainMappings(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{domain.ErrGrievanceNotFound, http.StatusNotFound},
		{domain.ErrNotificationNotFound, http.StatusNotFound},
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.ErrInvalidTransition, http.StatusUnprocessableEntity},
		{fmt.Errorf("update grievance: %w (from closed to assigned)", domain.ErrInvalidTransition), http.StatusUnprocessableEntity},
		{domain.ErrNoDepartments, http.StatusBadRequest},
		{domain.ErrUnknownDepartment, http.StatusBadRequest},
		{domain.ErrTooManyImages, http.StatusBadRequest},
		{domain.ErrNoChanges, http.StatusBadRequest},
		{domain.ErrEmptyComment, http.StatusBadRequest},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrUserExists, http.StatusConflict},
		{echo.NewHTTPError(http.StatusTeapot, "teapot"), http.StatusTeapot},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}

	e := echo.New()
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		code, _ := resolveError(tc.err, zerolog.Nop(), c)
		if code != tc.want {
			t.Errorf("%v: got %d, want %d", tc.err, code, tc.want)
		}
	}
}

func TestHTTPErrorHandler_RendersEnvelope(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewHTTPErrorHandler(zerolog.Nop())
	h(domain.ErrGrievanceNotFound, c)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if body := rec.Body.String(); body != "{\"error\":\"grievance not found\"}\n" {
		t.Errorf("unexpected envelope: %q", body)
	}
}
