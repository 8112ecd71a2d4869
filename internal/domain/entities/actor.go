package entities

import (
	"errors"
	"fmt"
	"strings"
)

// Role is the perfil carried by an authenticated principal.
// Role claims come from the authentication token and are trusted verbatim
// once the token is verified.

type Role string

const (
	RoleCliente  Role = "CLIENTE"
	RoleMecanico Role = "MECANICO"
	RoleAdmin    Role = "ADMIN"
)

// CapabilityEntrega grants the vehicle handover (FINALIZADA -> ENTREGUE)
// without requiring a MECANICO/ADMIN perfil.
const CapabilityEntrega = "entrega"

// ErrUnauthenticated marks calls that arrived without a recognized principal.
// It is deliberately distinct from AccessDeniedError: a missing actor is an
// authentication problem, not an insufficient role.
var ErrUnauthenticated = errors.New("unauthenticated")

// AccessDeniedError carries the declared allowed-role set and the actor's
// actual perfil so the denial is diagnosable, never a generic error.
type AccessDeniedError struct {
	Required []Role
	Actual   Role
}

func (e *AccessDeniedError) Error() string {
	names := make([]string, 0, len(e.Required))
	for _, r := range e.Required {
		names = append(names, string(r))
	}
	return fmt.Sprintf("access denied: perfil %s is not in [%s]", e.Actual, strings.Join(names, ", "))
}

// Actor is the authenticated principal attached to each request.
// The core never persists actors; they are rebuilt per request from token
// claims.
type Actor struct {
	ID           string
	Name         string
	Document     string
	Role         Role
	Capabilities []string
}

func (a *Actor) HasCapability(capability string) bool {
	if a == nil || capability == "" {
		return false
	}
	for _, c := range a.Capabilities {
		if c == capability {
			return true
		}
	}
	return false
}

// Authorize checks that the actor carries at least one of the required roles.
// A nil actor is rejected as unauthenticated.
func Authorize(actor *Actor, required ...Role) error {
	if actor == nil {
		return ErrUnauthenticated
	}
	for _, r := range required {
		if actor.Role == r {
			return nil
		}
	}
	return &AccessDeniedError{Required: required, Actual: actor.Role}
}

// AuthorizeTransition applies a transition rule's role set to the actor,
// also honoring the rule's extra capability when present. System rules always
// deny direct actors; those transitions belong to the approval callback.
func AuthorizeTransition(actor *Actor, rule TransitionRule) error {
	if actor == nil {
		return ErrUnauthenticated
	}
	if rule.System {
		return &AccessDeniedError{Required: nil, Actual: actor.Role}
	}
	if rule.Capability != "" && actor.HasCapability(rule.Capability) {
		return nil
	}
	return Authorize(actor, rule.Roles...)
}
