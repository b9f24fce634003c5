package access

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/uninorte/lead-system/internal/core/domain"
)

func TestCan_Matrix(t *testing.T) {
	s, c, a := domain.RoleSeller, domain.RoleCoordinator, domain.RoleAdministrator
	want := map[Action][]domain.Role{
		ActionCreateLead:    {s},
		ActionViewOwnLeads:  {s},
		ActionViewOwnStats:  {s},
		ActionViewAllLeads:  {c, a},
		ActionUpdateLead:    {c, a},
		ActionViewDashboard: {c, a},
		ActionExportLeads:   {c, a},
		ActionManageUsers:   {a},
		ActionManageCatalog: {a},
		ActionViewAudit:     {a},
		ActionBackup:        {a},
	}
	assert.Len(t, Actions(), len(want))

	for action, allowed := range want {
		for _, role := range domain.Roles() {
			expected := false
			for _, r := range allowed {
				if r == role {
					expected = true
				}
			}
			assert.Equal(t, expected, Can(role, action), "%s / %s", role, action)
		}
		assert.ElementsMatch(t, allowed, RolesFor(action))
	}
}

func TestCan_UnknownActionOrRole(t *testing.T) {
	assert.False(t, Can(domain.RoleAdministrator, Action("lead:delete")))
	assert.Empty(t, RolesFor(Action("lead:delete")))
	assert.False(t, Can(domain.Role("root"), ActionManageUsers))
}

func TestRolesFor_ReturnsCopy(t *testing.T) {
	roles := RolesFor(ActionManageUsers)
	roles[0] = domain.RoleSeller
	assert.False(t, Can(domain.RoleSeller, ActionManageUsers))
}

// Coordinator and administrator overlap on reads but only the administrator manages.
func TestPolicy_PrivilegeIsNotTotallyOrdered(t *testing.T) {
	assert.True(t, Can(domain.RoleSeller, ActionCreateLead))
	assert.False(t, Can(domain.RoleAdministrator, ActionCreateLead))
	assert.True(t, Can(domain.RoleCoordinator, ActionViewDashboard))
	assert.False(t, Can(domain.RoleCoordinator, ActionViewAudit))
}
