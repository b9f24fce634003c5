package access

import (
	"slices"

	"github.com/uninorte/lead-system/internal/core/domain"
)

// Action is a backend operation subject to authorization.
type Action string

const (
	ActionCreateLead    Action = "lead:create"
	ActionViewOwnLeads  Action = "lead:list-own"
	ActionViewOwnStats  Action = "lead:stats-own"
	ActionViewAllLeads  Action = "lead:list-all"
	ActionUpdateLead    Action = "lead:update"
	ActionViewDashboard Action = "dashboard:view"
	ActionExportLeads   Action = "report:export"
	ActionManageUsers   Action = "user:manage"
	ActionManageCatalog Action = "catalog:manage"
	ActionViewAudit     Action = "audit:view"
	ActionBackup        Action = "system:backup"
)

var (
	sellerOnly  = []domain.Role{domain.RoleSeller}
	supervisors = []domain.Role{domain.RoleCoordinator, domain.RoleAdministrator}
	adminOnly   = []domain.Role{domain.RoleAdministrator}
)

var policy = map[Action][]domain.Role{
	ActionCreateLead:    sellerOnly,
	ActionViewOwnLeads:  sellerOnly,
	ActionViewOwnStats:  sellerOnly,
	ActionViewAllLeads:  supervisors,
	ActionUpdateLead:    supervisors,
	ActionViewDashboard: supervisors,
	ActionExportLeads:   supervisors,
	ActionManageUsers:   adminOnly,
	ActionManageCatalog: adminOnly,
	ActionViewAudit:     adminOnly,
	ActionBackup:        adminOnly,
}

// Actions lists every known action.
func Actions() []Action {
	out := make([]Action, 0, len(policy))
	for a := range policy {
		out = append(out, a)
	}
	slices.Sort(out)
	return out
}

// RolesFor returns the roles allowed to perform a. Unknown actions allow nobody.
func RolesFor(a Action) []domain.Role {
	return slices.Clone(policy[a])
}

// Can reports whether role may perform a.
func Can(role domain.Role, a Action) bool {
	return slices.Contains(policy[a], role)
}
