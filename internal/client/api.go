// Package client is the leadctl side of the system: it talks to the lead API
// on behalf of the session held by the user.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/uninorte/lead-system/internal/core/domain"
	"github.com/uninorte/lead-system/internal/core/session"
)

const defaultTimeout = 15 * time.Second

var (
	// ErrUnauthorized means the backend no longer accepts the credential.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden means the backend rejected the role for this action.
	ErrForbidden = errors.New("forbidden")
	// ErrAccountDisabled means the user behind the credential was deactivated.
	// The credential is as dead as an expired one.
	ErrAccountDisabled = errors.New("account disabled")
)

// APIError is a non-2xx answer from the backend.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: status %d", e.Status)
	}
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
}

func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		if e.Message == domain.ErrUserInactive.Error() {
			return ErrAccountDisabled
		}
		return ErrForbidden
	default:
		return nil
	}
}

// API is a thin typed client for the lead API. A zero token sends no
// Authorization header.
type API struct {
	base  string
	hc    *http.Client
	token string
}

// NewAPI returns a client for baseURL. A nil hc gets a traced client with a
// default timeout.
func NewAPI(baseURL string, hc *http.Client) *API {
	if hc == nil {
		hc = &http.Client{
			Timeout:   defaultTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	return &API{base: strings.TrimRight(baseURL, "/"), hc: hc}
}

// WithToken returns a copy that attaches "Authorization: Bearer <token>" to every call.
func (a *API) WithToken(token string) *API {
	cp := *a
	cp.token = token
	return &cp
}

// LoginResponse is the backend's answer to a successful login.
type LoginResponse struct {
	AccessToken string           `json:"access_token"`
	TokenType   string           `json:"token_type"`
	ExpiresAt   time.Time        `json:"expires_at"`
	User        session.Identity `json:"user"`
}

func (a *API) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	var out LoginResponse
	body := map[string]string{"email": email, "senha": password}
	if err := a.do(ctx, http.MethodPost, "/api/auth/login", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *API) Logout(ctx context.Context) error {
	return a.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil, nil)
}

// Me returns the user the backend sees behind the credential.
func (a *API) Me(ctx context.Context) (*domain.User, error) {
	var out domain.User
	if err := a.do(ctx, http.MethodGet, "/api/auth/me", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *API) MyLeads(ctx context.Context) ([]*domain.Lead, error) {
	return getJSON[[]*domain.Lead](ctx, a, "/api/leads/my", nil)
}

func (a *API) MyStats(ctx context.Context) (*domain.LeadStats, error) {
	var out domain.LeadStats
	if err := a.get(ctx, "/api/leads/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *API) Leads(ctx context.Context, f domain.LeadFilter) ([]*domain.Lead, error) {
	q := url.Values{}
	if f.Course != "" {
		q.Set("curso", f.Course)
	}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if f.SellerID != "" {
		q.Set("vendedor_id", f.SellerID)
	}
	return getJSON[[]*domain.Lead](ctx, a, "/api/leads", q)
}

func (a *API) Dashboard(ctx context.Context) (*domain.Dashboard, error) {
	var out domain.Dashboard
	if err := a.get(ctx, "/api/dashboard", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *API) Users(ctx context.Context) ([]*domain.User, error) {
	return getJSON[[]*domain.User](ctx, a, "/api/users", nil)
}

func (a *API) Courses(ctx context.Context) ([]*domain.Course, error) {
	return getJSON[[]*domain.Course](ctx, a, "/api/courses", nil)
}

func (a *API) Statuses(ctx context.Context) ([]*domain.LeadStatus, error) {
	return getJSON[[]*domain.LeadStatus](ctx, a, "/api/lead-status", nil)
}

func (a *API) AuditLogs(ctx context.Context, limit int) ([]*domain.AuditLog, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	return getJSON[[]*domain.AuditLog](ctx, a, "/api/audit-logs", q)
}

func getJSON[T any](ctx context.Context, a *API, path string, q url.Values) (T, error) {
	var out T
	if err := a.get(ctx, path, q, &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

func (a *API) get(ctx context.Context, path string, q url.Values, out any) error {
	return a.do(ctx, http.MethodGet, path, q, nil, out)
}

func (a *API) do(ctx context.Context, method, path string, q url.Values, body, out any) error {
	target := a.base + path
	if len(q) > 0 {
		target += "?" + q.Encode()
	}

	var rdr io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		rdr = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, rdr)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}

	resp, err := a.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var env struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&env)
		return &APIError{Status: resp.StatusCode, Message: env.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
