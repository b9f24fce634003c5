package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/uninorte/lead-system/internal/core/access"
	"github.com/uninorte/lead-system/internal/core/domain"
	"github.com/uninorte/lead-system/internal/core/ports"
)

type userService struct {
	users ports.UserRepository
	audit ports.AuditRecorder
	now   func() time.Time
	log   zerolog.Logger
}

// NewUserService returns a UserService implementation.
func NewUserService(users ports.UserRepository, audit ports.AuditRecorder, log zerolog.Logger) ports.UserService {
	return &userService{users: users, audit: audit, now: time.Now, log: log}
}

func (s *userService) List(ctx context.Context, p *domain.Principal) ([]*domain.User, error) {
	if err := authorize(p, access.ActionManageUsers); err != nil {
		return nil, err
	}
	return s.users.List(ctx)
}

// Create adds an active account. Emails are unique.
func (s *userService) Create(ctx context.Context, p *domain.Principal, in ports.CreateUserInput) (*domain.User, error) {
	if err := authorize(p, access.ActionManageUsers); err != nil {
		return nil, err
	}

	email, err := normalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: nome is required", domain.ErrInvalidInput)
	}
	if in.Password == "" {
		return nil, fmt.Errorf("%w: senha is required", domain.ErrInvalidInput)
	}
	role, err := domain.ParseRole(in.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("create user: %w", err)
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		Role:         role,
		PasswordHash: hash,
		Active:       true,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.audit.Record(ctx, audit(p, domain.AuditCreate, domain.EntityUser, user.ID, "Usuário criado: "+user.Email))
	return user, nil
}

// Update changes the given fields. A new password is re-hashed.
func (s *userService) Update(ctx context.Context, p *domain.Principal, id string, in ports.UpdateUserInput) (*domain.User, error) {
	if err := authorize(p, access.ActionManageUsers); err != nil {
		return nil, err
	}

	var changes domain.UserChanges
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: nome must not be empty", domain.ErrInvalidInput)
		}
		changes.Name = &name
	}
	if in.Email != nil {
		email, err := normalizeEmail(*in.Email)
		if err != nil {
			return nil, err
		}
		existing, err := s.users.FindByEmail(ctx, email)
		switch {
		case err == nil && existing.ID != id:
			return nil, domain.ErrUserExists
		case err != nil && !errors.Is(err, domain.ErrUserNotFound):
			return nil, fmt.Errorf("update user: %w", err)
		}
		changes.Email = &email
	}
	if in.Role != nil {
		role, err := domain.ParseRole(*in.Role)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
		}
		changes.Role = &role
	}
	if in.Active != nil {
		active := *in.Active
		changes.Active = &active
	}
	if in.Password != nil {
		if *in.Password == "" {
			return nil, fmt.Errorf("%w: senha must not be empty", domain.ErrInvalidInput)
		}
		hash, err := HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		changes.PasswordHash = &hash
	}
	if changes.IsEmpty() {
		return nil, fmt.Errorf("%w: nothing to update", domain.ErrInvalidInput)
	}

	user, err := s.users.Update(ctx, id, changes)
	if err != nil {
		return nil, fmt.Errorf("update user %s: %w", id, err)
	}

	s.audit.Record(ctx, audit(p, domain.AuditUpdate, domain.EntityUser, id, "Usuário atualizado"))
	return user, nil
}
