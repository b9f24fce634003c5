package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/uninorte/lead-system/internal/core/domain"
	"github.com/uninorte/lead-system/internal/core/ports"
)

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*ports.LoginResult, error) {
			if email != "admin@uninorte.com" || password != "admin123" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return &ports.LoginResult{
				AccessToken: "token123",
				ExpiresAt:   time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC),
				User:        &domain.User{ID: "a1", Email: email, Name: "Admin", Role: domain.RoleAdministrator, PasswordHash: "hash"},
			}, nil
		},
	}
	c, rec := newContext(http.MethodPost, "/api/auth/login", `{"email":"admin@uninorte.com","senha":"admin123"}`, nil)

	if err := NewAuthHandler(stub).Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["access_token"] != "token123" || resp["token_type"] != "bearer" {
		t.Fatalf("unexpected token payload: %+v", resp)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["tipo"] != "administrador" || user["nome"] != "Admin" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
	if _, leaked := user["senha_hash"]; leaked {
		t.Fatalf("password hash leaked")
	}
}

func TestAuthHandler_Login_ServiceErrorPropagates(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (*ports.LoginResult, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	c, _ := newContext(http.MethodPost, "/api/auth/login", `{"email":"a@b.com","senha":"bad"}`, nil)

	err := NewAuthHandler(stub).Login(c)
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Login_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"not json", "{", http.StatusBadRequest},
		{"missing password", `{"email":"a@b.com"}`, http.StatusUnprocessableEntity},
		{"bad email", `{"email":"nope","senha":"x"}`, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubAuthService{
				loginFn: func(context.Context, string, string) (*ports.LoginResult, error) {
					t.Fatalf("should not be called")
					return nil, nil
				},
			}
			c, _ := newContext(http.MethodPost, "/api/auth/login", tt.body, nil)

			err := NewAuthHandler(stub).Login(c)
			var he *echo.HTTPError
			if !errors.As(err, &he) || he.Code != tt.want {
				t.Fatalf("expected HTTP %d, got %v", tt.want, err)
			}
		})
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	var revoked *domain.Principal
	stub := &stubAuthService{
		logoutFn: func(_ context.Context, p *domain.Principal) error {
			revoked = p
			return nil
		},
	}
	c, rec := newContext(http.MethodPost, "/api/auth/logout", "", seller)

	if err := NewAuthHandler(stub).Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if revoked != seller {
		t.Fatalf("expected the caller's token to be revoked")
	}
}

func TestAuthHandler_Me_RequiresPrincipal(t *testing.T) {
	stub := &stubAuthService{
		meFn: func(context.Context, *domain.Principal) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	c, _ := newContext(http.MethodGet, "/api/auth/me", "", nil)

	err := NewAuthHandler(stub).Me(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}
