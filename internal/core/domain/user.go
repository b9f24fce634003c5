package domain

import "time"

// User models an account that can sign in to the dashboard.
type User struct {
	ID           string    `json:"id" bson:"id"`
	Email        string    `json:"email" bson:"email"`
	Name         string    `json:"nome" bson:"nome"`
	Role         Role      `json:"tipo" bson:"tipo"`
	PasswordHash string    `json:"-" bson:"senha_hash"`
	Active       bool      `json:"ativo" bson:"ativo"`
	CreatedAt    time.Time `json:"criado_em" bson:"criado_em"`
}

// UserChanges carries a partial user update. Nil fields are left untouched.
type UserChanges struct {
	Name         *string
	Email        *string
	Role         *Role
	Active       *bool
	PasswordHash *string
}

// IsEmpty reports whether no field is set.
func (c UserChanges) IsEmpty() bool {
	return c.Name == nil && c.Email == nil && c.Role == nil && c.Active == nil && c.PasswordHash == nil
}

// Principal is the authenticated caller of a backend request, resolved from
// a bearer token and the current state of the user record.
type Principal struct {
	UserID    string
	Name      string
	Email     string
	Role      Role
	TokenID   string
	ExpiresAt time.Time
}
