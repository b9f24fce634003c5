// Package session owns the client-side authenticated context: who is signed
// in, with which role, and the bearer credential proving it to the backend.
//
// A Session is an immutable value. The Holder is the single component allowed
// to create, persist and tear one down.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/uninorte/lead-system/internal/core/domain"
)

var (
	ErrInvalidSession = errors.New("invalid session")
	// ErrNoRecord is returned by a Store when nothing has been persisted.
	ErrNoRecord = errors.New("no persisted session")
)

// UserRef identifies the signed-in user.
type UserRef struct {
	ID   string
	Name string
}

// Identity is the user record returned by a successful login. Role is the raw
// wire string and is only trusted after New has parsed it.
type Identity struct {
	ID   string `json:"id"`
	Name string `json:"nome"`
	Role string `json:"tipo"`
}

// Session is the authenticated context. The zero value is not a valid session.
type Session struct {
	user       UserRef
	role       domain.Role
	credential string
}

// New validates the identity and credential together. An unknown role is
// rejected here so that no session with an unmatched role ever reaches the router.
func New(credential string, id Identity) (Session, error) {
	if strings.TrimSpace(credential) == "" {
		return Session{}, fmt.Errorf("%w: empty credential", ErrInvalidSession)
	}
	if strings.TrimSpace(id.ID) == "" {
		return Session{}, fmt.Errorf("%w: empty user id", ErrInvalidSession)
	}
	role, err := domain.ParseRole(id.Role)
	if err != nil {
		return Session{}, fmt.Errorf("%w: %w", ErrInvalidSession, err)
	}
	return Session{
		user:       UserRef{ID: id.ID, Name: id.Name},
		role:       role,
		credential: credential,
	}, nil
}

func (s Session) User() UserRef { return s.user }
func (s Session) Role() domain.Role { return s.role }
func (s Session) Credential() string { return s.credential }

func (s Session) Identity() Identity {
	return Identity{ID: s.user.ID, Name: s.user.Name, Role: string(s.role)}
}

// record is the single persisted entry. Credential and identity always travel together.
type record struct {
	Credential string   `json:"credential"`
	User       Identity `json:"user"`
}

func (s Session) marshal() ([]byte, error) {
	return json.Marshal(record{Credential: s.credential, User: s.Identity()})
}

func unmarshal(data []byte) (Session, error) {
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Session{}, fmt.Errorf("%w: %w", ErrInvalidSession, err)
	}
	return New(rec.Credential, rec.User)
}
