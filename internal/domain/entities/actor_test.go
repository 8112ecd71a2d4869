package entities

import (
	"errors"
	"strings"
	"testing"
)

func TestAuthorize(t *testing.T) {
	t.Run("nil actor is unauthenticated", func(t *testing.T) {
		if err := Authorize(nil, RoleAdmin); !errors.Is(err, ErrUnauthenticated) {
			t.Fatalf("expected ErrUnauthenticated, got %v", err)
		}
	})

	t.Run("or semantics", func(t *testing.T) {
		mecanico := &Actor{Role: RoleMecanico}
		if err := Authorize(mecanico, RoleMecanico, RoleAdmin); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("denial carries both role sets", func(t *testing.T) {
		cliente := &Actor{Role: RoleCliente}
		err := Authorize(cliente, RoleMecanico, RoleAdmin)
		var denied *AccessDeniedError
		if !errors.As(err, &denied) {
			t.Fatalf("expected AccessDeniedError, got %v", err)
		}
		if denied.Actual != RoleCliente || len(denied.Required) != 2 {
			t.Fatalf("unexpected denial payload: %+v", denied)
		}
		if !strings.Contains(denied.Error(), "CLIENTE") || !strings.Contains(denied.Error(), "MECANICO") {
			t.Fatalf("denial message should name perfis, got %q", denied.Error())
		}
	})
}

func TestActor_HasCapability(t *testing.T) {
	a := &Actor{Role: RoleCliente, Capabilities: []string{CapabilityEntrega}}
	if !a.HasCapability(CapabilityEntrega) {
		t.Fatalf("expected capability to be found")
	}
	if a.HasCapability("outra") {
		t.Fatalf("unexpected capability match")
	}
	var nilActor *Actor
	if nilActor.HasCapability(CapabilityEntrega) {
		t.Fatalf("nil actor has no capabilities")
	}
}
