package ports

import (
	"context"

	"github.com/uninorte/lead-system/internal/core/domain"
)

// UserRepository persists dashboard accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	// Update applies changes and returns the stored user after the update.
	Update(ctx context.Context, id string, changes domain.UserChanges) (*domain.User, error)
	Count(ctx context.Context) (int64, error)
	FirstByRole(ctx context.Context, role domain.Role) (*domain.User, error)
}

// LeadRepository persists leads and computes the dashboard aggregations.
type LeadRepository interface {
	Create(ctx context.Context, lead *domain.Lead) error
	InsertMany(ctx context.Context, leads []*domain.Lead) error
	List(ctx context.Context, filter domain.LeadFilter) ([]*domain.Lead, error)
	// Update applies the partial update, stamps UpdatedAt and returns the result.
	Update(ctx context.Context, id string, update domain.LeadUpdate) (*domain.Lead, error)
	Count(ctx context.Context, filter domain.LeadFilter) (int64, error)

	// CountByStatus groups every lead by status.
	CountByStatus(ctx context.Context) ([]domain.CountBucket, error)
	// TopCourses returns the limit most frequent courses, most frequent first.
	TopCourses(ctx context.Context, limit int) ([]domain.CountBucket, error)
	// SellerRanking groups leads per seller, largest pipeline first.
	SellerRanking(ctx context.Context) ([]domain.SellerRank, error)
	// Monthly groups leads by creation month (YYYY-MM). An empty sellerID
	// covers every seller. newestFirst selects the sort direction.
	Monthly(ctx context.Context, sellerID string, newestFirst bool, limit int) ([]domain.CountBucket, error)
}

// CourseRepository persists the course catalog.
type CourseRepository interface {
	Create(ctx context.Context, course *domain.Course) error
	InsertMany(ctx context.Context, courses []*domain.Course) error
	// List returns all courses, or only the active ones when activeOnly is set.
	List(ctx context.Context, activeOnly bool) ([]*domain.Course, error)
	Count(ctx context.Context) (int64, error)
}

// LeadStatusRepository persists the configurable pipeline stages.
type LeadStatusRepository interface {
	Create(ctx context.Context, status *domain.LeadStatus) error
	InsertMany(ctx context.Context, statuses []*domain.LeadStatus) error
	List(ctx context.Context) ([]*domain.LeadStatus, error)
	Count(ctx context.Context) (int64, error)
}

// AuditRepository persists audit entries.
type AuditRepository interface {
	Insert(ctx context.Context, entry *domain.AuditLog) error
	// Recent returns up to limit entries, newest first.
	Recent(ctx context.Context, limit int) ([]*domain.AuditLog, error)
}
