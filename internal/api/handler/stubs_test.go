package handler

import (
	"context"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/uninorte/lead-system/internal/api/middleware"
	"github.com/uninorte/lead-system/internal/core/domain"
	"github.com/uninorte/lead-system/internal/core/ports"
)

var (
	seller = &domain.Principal{UserID: "s1", Name: "Vendedor", Role: domain.RoleSeller, TokenID: "t1"}
	admin  = &domain.Principal{UserID: "a1", Name: "Admin", Role: domain.RoleAdministrator, TokenID: "t2"}
)

// newContext builds a request context with the validator installed and, when
// p is non-nil, the principal set as the Auth middleware would.
func newContext(method, target, body string, p *domain.Principal) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if p != nil {
		c.Set(middleware.PrincipalKey, p)
	}
	return c, rec
}

type stubAuthService struct {
	loginFn  func(ctx context.Context, email, password string) (*ports.LoginResult, error)
	logoutFn func(ctx context.Context, p *domain.Principal) error
	meFn     func(ctx context.Context, p *domain.Principal) (*domain.User, error)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Verify(context.Context, string) (*domain.Principal, error) {
	return nil, domain.ErrInvalidToken
}

func (s *stubAuthService) Logout(ctx context.Context, p *domain.Principal) error {
	return s.logoutFn(ctx, p)
}

func (s *stubAuthService) Me(ctx context.Context, p *domain.Principal) (*domain.User, error) {
	return s.meFn(ctx, p)
}

type stubLeadService struct {
	createFn func(ctx context.Context, p *domain.Principal, in ports.CreateLeadInput) (*domain.Lead, error)
	listFn   func(ctx context.Context, p *domain.Principal, f domain.LeadFilter) ([]*domain.Lead, error)
	updateFn func(ctx context.Context, p *domain.Principal, id string, u domain.LeadUpdate) (*domain.Lead, error)
}

func (s *stubLeadService) Create(ctx context.Context, p *domain.Principal, in ports.CreateLeadInput) (*domain.Lead, error) {
	return s.createFn(ctx, p, in)
}

func (s *stubLeadService) ListMine(context.Context, *domain.Principal) ([]*domain.Lead, error) {
	return []*domain.Lead{}, nil
}

func (s *stubLeadService) MyStats(context.Context, *domain.Principal) (*domain.LeadStats, error) {
	return &domain.LeadStats{Monthly: []domain.CountBucket{}}, nil
}

func (s *stubLeadService) List(ctx context.Context, p *domain.Principal, f domain.LeadFilter) ([]*domain.Lead, error) {
	return s.listFn(ctx, p, f)
}

func (s *stubLeadService) Update(ctx context.Context, p *domain.Principal, id string, u domain.LeadUpdate) (*domain.Lead, error) {
	return s.updateFn(ctx, p, id, u)
}

type stubReportService struct {
	exportFn func(ctx context.Context, p *domain.Principal, format string, f domain.LeadFilter) (*ports.Report, error)
}

func (s *stubReportService) ExportLeads(ctx context.Context, p *domain.Principal, format string, f domain.LeadFilter) (*ports.Report, error) {
	return s.exportFn(ctx, p, format, f)
}

func (s *stubReportService) Backup(context.Context, *domain.Principal) (*ports.Report, error) {
	return &ports.Report{Filename: "backup_uninorte.xlsx", ContentType: "application/octet-stream", Body: []byte("PK")}, nil
}

type stubUserService struct {
	createFn func(ctx context.Context, p *domain.Principal, in ports.CreateUserInput) (*domain.User, error)
	updateFn func(ctx context.Context, p *domain.Principal, id string, in ports.UpdateUserInput) (*domain.User, error)
}

func (s *stubUserService) List(context.Context, *domain.Principal) ([]*domain.User, error) {
	return []*domain.User{}, nil
}

func (s *stubUserService) Create(ctx context.Context, p *domain.Principal, in ports.CreateUserInput) (*domain.User, error) {
	return s.createFn(ctx, p, in)
}

func (s *stubUserService) Update(ctx context.Context, p *domain.Principal, id string, in ports.UpdateUserInput) (*domain.User, error) {
	return s.updateFn(ctx, p, id, in)
}

type stubCatalogService struct {
	createCourseFn func(ctx context.Context, p *domain.Principal, name string, active bool) (*domain.Course, error)
}

func (s *stubCatalogService) Courses(context.Context) ([]*domain.Course, error) {
	return []*domain.Course{{ID: "c1", Name: "Direito", Active: true}}, nil
}

func (s *stubCatalogService) CreateCourse(ctx context.Context, p *domain.Principal, name string, active bool) (*domain.Course, error) {
	return s.createCourseFn(ctx, p, name, active)
}

func (s *stubCatalogService) Statuses(context.Context) ([]*domain.LeadStatus, error) {
	return []*domain.LeadStatus{}, nil
}

func (s *stubCatalogService) CreateStatus(_ context.Context, _ *domain.Principal, name, color string) (*domain.LeadStatus, error) {
	return &domain.LeadStatus{ID: "st", Name: name, Color: color}, nil
}

type stubAuditService struct {
	gotLimit int
}

func (s *stubAuditService) Recent(_ context.Context, _ *domain.Principal, limit int) ([]*domain.AuditLog, error) {
	s.gotLimit = limit
	return []*domain.AuditLog{}, nil
}
