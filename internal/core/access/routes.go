// Package access is the single authorization policy of the system: which role
// may reach which client route and which backend action.
package access

import (
	"errors"
	"fmt"
	"slices"

	"github.com/uninorte/lead-system/internal/core/domain"
)

const (
	LoginPath = "/login"
	RootPath  = "/"
)

// PageID names the page a route mounts.
type PageID string

const (
	PageLogin     PageID = "login"
	PageDashboard PageID = "dashboard"
	PageLeads     PageID = "leads"
	PageUsers     PageID = "users"
	PageConfig    PageID = "config"
	PageAudit     PageID = "audit"
)

var ErrInvalidRoute = errors.New("invalid route")

// RouteDescriptor maps a path to the roles allowed to view it and the page it renders.
type RouteDescriptor struct {
	Path          string
	RequiredRoles []domain.Role
	Page          PageID
	// Public routes skip the session check. The default table has none.
	Public bool
}

// Allows reports whether role is a member of RequiredRoles.
func (d RouteDescriptor) Allows(role domain.Role) bool {
	return slices.Contains(d.RequiredRoles, role)
}

func (d RouteDescriptor) validate() error {
	if d.Path == "" || d.Path[0] != '/' {
		return fmt.Errorf("%w: path %q must be absolute", ErrInvalidRoute, d.Path)
	}
	if d.Page == "" {
		return fmt.Errorf("%w: %s has no page", ErrInvalidRoute, d.Path)
	}
	if d.Path == LoginPath {
		return fmt.Errorf("%w: %s is reserved", ErrInvalidRoute, LoginPath)
	}
	if d.Public {
		return nil
	}
	if len(d.RequiredRoles) == 0 {
		return fmt.Errorf("%w: %s has no required roles", ErrInvalidRoute, d.Path)
	}
	for _, r := range d.RequiredRoles {
		if !r.Valid() {
			return fmt.Errorf("%w: %s: %w", ErrInvalidRoute, d.Path, domain.ErrUnknownRole)
		}
	}
	return nil
}

// DefaultRoutes is the dashboard's static route table.
func DefaultRoutes() []RouteDescriptor {
	return []RouteDescriptor{
		{
			Path:          RootPath,
			RequiredRoles: []domain.Role{domain.RoleSeller, domain.RoleCoordinator, domain.RoleAdministrator},
			Page:          PageDashboard,
		},
		{
			Path:          "/leads",
			RequiredRoles: []domain.Role{domain.RoleCoordinator, domain.RoleAdministrator},
			Page:          PageLeads,
		},
		{
			Path:          "/users",
			RequiredRoles: []domain.Role{domain.RoleAdministrator},
			Page:          PageUsers,
		},
		{
			Path:          "/config",
			RequiredRoles: []domain.Role{domain.RoleAdministrator},
			Page:          PageConfig,
		},
		{
			Path:          "/audit",
			RequiredRoles: []domain.Role{domain.RoleAdministrator},
			Page:          PageAudit,
		},
	}
}
