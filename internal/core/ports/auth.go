package ports

import (
	"context"
	"time"

	"github.com/uninorte/lead-system/internal/core/domain"
)

// TokenDenylist remembers revoked token ids until they would have expired anyway.
type TokenDenylist interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// LoginResult is what a successful login hands back to the caller.
type LoginResult struct {
	AccessToken string
	ExpiresAt   time.Time
	User        *domain.User
}

// AuthService authenticates users and resolves bearer tokens.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	// Verify resolves a bearer token into the calling principal.
	Verify(ctx context.Context, token string) (*domain.Principal, error)
	Logout(ctx context.Context, p *domain.Principal) error
	Me(ctx context.Context, p *domain.Principal) (*domain.User, error)
}
