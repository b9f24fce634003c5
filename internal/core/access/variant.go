package access

import "github.com/uninorte/lead-system/internal/core/domain"

// Variant selects which dashboard the root path renders.
type Variant string

const (
	VariantNone          Variant = ""
	VariantSeller        Variant = "seller"
	VariantCoordinator   Variant = "coordinator"
	VariantAdministrator Variant = "administrator"
)

// RootVariant maps a role to its dashboard.
//
// An unmatched role yields VariantNone and the root renders an empty body
// instead of failing. That branch is a latent defect kept as-is: session.New
// rejects unknown roles, so it cannot be reached through a real session.
func RootVariant(role domain.Role) Variant {
	switch role {
	case domain.RoleSeller:
		return VariantSeller
	case domain.RoleCoordinator:
		return VariantCoordinator
	case domain.RoleAdministrator:
		return VariantAdministrator
	default:
		return VariantNone
	}
}
