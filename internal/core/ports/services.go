package ports

import (
	"context"
	"io"

	"github.com/uninorte/lead-system/internal/core/domain"
)

// AuditRecorder accepts audit entries. Implementations may write them
// asynchronously.
type AuditRecorder interface {
	Record(ctx context.Context, entry domain.AuditLog)
}

// CreateLeadInput carries the fields a seller fills in.
type CreateLeadInput struct {
	FullName string
	Phone    string
	Course   string
}

// LeadService manages leads on behalf of an authenticated principal.
type LeadService interface {
	Create(ctx context.Context, p *domain.Principal, in CreateLeadInput) (*domain.Lead, error)
	ListMine(ctx context.Context, p *domain.Principal) ([]*domain.Lead, error)
	MyStats(ctx context.Context, p *domain.Principal) (*domain.LeadStats, error)
	List(ctx context.Context, p *domain.Principal, filter domain.LeadFilter) ([]*domain.Lead, error)
	Update(ctx context.Context, p *domain.Principal, id string, update domain.LeadUpdate) (*domain.Lead, error)
}

// DashboardService builds the coordinator/administrator overview.
type DashboardService interface {
	Dashboard(ctx context.Context, p *domain.Principal) (*domain.Dashboard, error)
}

// CreateUserInput carries a new account.
type CreateUserInput struct {
	Email    string
	Name     string
	Role     string
	Password string
}

// UpdateUserInput is a partial account update. Nil fields are left untouched.
type UpdateUserInput struct {
	Email    *string
	Name     *string
	Role     *string
	Active   *bool
	Password *string
}

// UserService administers accounts.
type UserService interface {
	List(ctx context.Context, p *domain.Principal) ([]*domain.User, error)
	Create(ctx context.Context, p *domain.Principal, in CreateUserInput) (*domain.User, error)
	Update(ctx context.Context, p *domain.Principal, id string, in UpdateUserInput) (*domain.User, error)
}

// CatalogService manages courses and lead statuses.
type CatalogService interface {
	Courses(ctx context.Context) ([]*domain.Course, error)
	CreateCourse(ctx context.Context, p *domain.Principal, name string, active bool) (*domain.Course, error)
	Statuses(ctx context.Context) ([]*domain.LeadStatus, error)
	CreateStatus(ctx context.Context, p *domain.Principal, name, color string) (*domain.LeadStatus, error)
}

// AuditService exposes the audit trail to administrators.
type AuditService interface {
	Recent(ctx context.Context, p *domain.Principal, limit int) ([]*domain.AuditLog, error)
}

// Report is a rendered file ready to be streamed.
type Report struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ReportService renders exports and backups.
type ReportService interface {
	ExportLeads(ctx context.Context, p *domain.Principal, format string, filter domain.LeadFilter) (*Report, error)
	Backup(ctx context.Context, p *domain.Principal) (*Report, error)
}

// Backup is the full data set written by a system backup.
type Backup struct {
	Users    []*domain.User
	Leads    []*domain.Lead
	Courses  []*domain.Course
	Statuses []*domain.LeadStatus
}

// LeadEncoder renders a lead listing in one file format.
type LeadEncoder interface {
	EncodeLeads(w io.Writer, leads []*domain.Lead) error
}

// BackupEncoder renders a full backup workbook.
type BackupEncoder interface {
	EncodeBackup(w io.Writer, b Backup) error
}
