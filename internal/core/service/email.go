package service

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/uninorte/lead-system/internal/core/domain"
)

var validate = validator.New()

// canonicalEmail is the form emails are stored and looked up in.
func canonicalEmail(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func normalizeEmail(raw string) (string, error) {
	email := canonicalEmail(raw)
	if err := validate.Var(email, "required,email"); err != nil {
		return "", fmt.Errorf("%w: email must be a valid address", domain.ErrInvalidInput)
	}
	return email, nil
}
