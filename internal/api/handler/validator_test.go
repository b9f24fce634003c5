package handler

import (
	"strings"
	"testing"
)

func TestValidator_UsesWireNames(t *testing.T) {
	err := NewValidator().Validate(&createLeadRequest{Phone: "1"})
	if err == nil {
		t.Fatalf("expected validation error")
	}
	msg := err.Error()
	for _, want := range []string{"nome_completo is required", "curso is required"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("expected %q in %q", want, msg)
		}
	}
	if strings.Contains(msg, "telefone") {
		t.Fatalf("telefone was set, got %q", msg)
	}
}

func TestValidator_UserRules(t *testing.T) {
	err := NewValidator().Validate(&createUserRequest{
		Email:    "not-an-email",
		Name:     "Ana",
		Role:     "gerente",
		Password: "123",
	})
	if err == nil {
		t.Fatalf("expected validation error")
	}
	msg := err.Error()
	for _, want := range []string{
		"email must be a valid email",
		"tipo must be one of: vendedor, coordenador, administrador",
		"senha must be at least 6 characters",
	} {
		if !strings.Contains(msg, want) {
			t.Fatalf("expected %q in %q", want, msg)
		}
	}
}

func TestValidator_Valid(t *testing.T) {
	req := &createUserRequest{Email: "ana@uninorte.com", Name: "Ana", Role: "vendedor", Password: "segredo"}
	if err := NewValidator().Validate(req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
