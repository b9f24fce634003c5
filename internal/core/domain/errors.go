package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserInactive       = errors.New("user is deactivated")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("email already registered")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrForbidden          = errors.New("access forbidden")

	ErrLeadNotFound      = errors.New("lead not found")
	ErrNoLeads           = errors.New("no leads found")
	ErrUnsupportedFormat = errors.New("unsupported export format")

	// ErrInvalidInput is wrapped with the offending field by services.
	ErrInvalidInput = errors.New("invalid input")
)
