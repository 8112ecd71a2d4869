package security

import (
	"errors"
	"testing"
	"time"

	"mecanica_os/internal/domain/entities"
)

func TestNewJWTService_RequiresSecret(t *testing.T) {
	if _, err := NewJWTService(""); !errors.Is(err, ErrMissingJWTSecret) {
		t.Fatalf("expected ErrMissingJWTSecret, got %v", err)
	}
}

func TestJWTService_Roundtrip(t *testing.T) {
	s, err := NewJWTService("test-secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	user := entities.User{
		ID:           "u-1",
		Name:         "José",
		Document:     "12345678900",
		Role:         entities.RoleMecanico,
		Capabilities: []string{entities.CapabilityEntrega},
	}

	token, err := s.Generate(user)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	actor, err := s.Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if actor.ID != "u-1" || actor.Role != entities.RoleMecanico || actor.Document != "12345678900" {
		t.Fatalf("unexpected actor: %+v", actor)
	}
	if !actor.HasCapability(entities.CapabilityEntrega) {
		t.Fatalf("expected entrega capability to survive the roundtrip")
	}
}

func TestJWTService_RejectsForeignSignature(t *testing.T) {
	issuer, _ := NewJWTService("secret-a")
	verifier, _ := NewJWTService("secret-b")

	token, err := issuer.Generate(entities.User{ID: "u-1", Role: entities.RoleAdmin})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := verifier.Parse(token); err == nil {
		t.Fatalf("expected signature verification to fail")
	}
}

func TestJWTService_RejectsExpiredToken(t *testing.T) {
	s, _ := NewJWTService("test-secret")
	past := time.Now().Add(-24 * time.Hour)
	s.now = func() time.Time { return past }

	token, err := s.Generate(entities.User{ID: "u-1", Role: entities.RoleCliente})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	s.now = time.Now
	if _, err := s.Parse(token); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}

func TestJWTService_RejectsGarbage(t *testing.T) {
	s, _ := NewJWTService("test-secret")
	if _, err := s.Parse("not-a-token"); err == nil {
		t.Fatalf("expected parse failure")
	}
}
