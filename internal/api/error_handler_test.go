package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/uninorte/lead-system/internal/core/domain"
)

func TestHTTPErrorHandler(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"bad credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{"revoked", domain.ErrTokenRevoked, http.StatusUnauthorized, "token revoked"},
		{"inactive", domain.ErrUserInactive, http.StatusForbidden, "user is deactivated"},
		{"wrapped forbidden", fmt.Errorf("create lead: %w", domain.ErrForbidden), http.StatusForbidden, "access forbidden"},
		{"lead missing", domain.ErrLeadNotFound, http.StatusNotFound, "lead not found"},
		{"nothing to export", domain.ErrNoLeads, http.StatusNotFound, "no leads to export"},
		{"duplicate email", domain.ErrUserExists, http.StatusConflict, "email already registered"},
		{"bad format", domain.ErrUnsupportedFormat, http.StatusBadRequest, "unsupported format, use csv or excel"},
		{"invalid input", fmt.Errorf("%w: curso is required", domain.ErrInvalidInput), http.StatusBadRequest, "invalid input: curso is required"},
		{"echo error", echo.NewHTTPError(http.StatusUnprocessableEntity, "email is required"), http.StatusUnprocessableEntity, "email is required"},
		{"unexpected", errors.New("mongo: connection reset"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/leads", nil), rec)

			NewHTTPErrorHandler(zerolog.Nop())(tt.err, c)

			if rec.Code != tt.code {
				t.Fatalf("expected %d, got %d", tt.code, rec.Code)
			}
			var resp errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if resp.Error != tt.message {
				t.Fatalf("expected %q, got %q", tt.message, resp.Error)
			}
		})
	}
}

func TestHTTPErrorHandler_CommittedResponse(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	_ = c.String(http.StatusOK, "done")

	NewHTTPErrorHandler(zerolog.Nop())(domain.ErrForbidden, c)

	if rec.Code != http.StatusOK || rec.Body.String() != "done" {
		t.Fatalf("committed response must be left alone, got %d %q", rec.Code, rec.Body.String())
	}
}
