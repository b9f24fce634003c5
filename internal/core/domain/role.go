package domain

import (
	"errors"
	"fmt"
)

// Role is the authorization role carried by a user and by every session.
// The string form is the value stored in Mongo and sent on the wire.
type Role string

const (
	RoleSeller        Role = "vendedor"
	RoleCoordinator   Role = "coordenador"
	RoleAdministrator Role = "administrador"
)

var ErrUnknownRole = errors.New("unknown role")

// Roles lists every role in declaration order.
func Roles() []Role {
	return []Role{RoleSeller, RoleCoordinator, RoleAdministrator}
}

// ParseRole maps a wire string onto a Role. Matching is exact.
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleSeller, RoleCoordinator, RoleAdministrator:
		return r, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
}

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

func (r Role) String() string { return string(r) }
