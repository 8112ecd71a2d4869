package entities

import "fmt"

// OSStatus represents the lifecycle of a service order (Ordem de Serviço).
//
// Domain notes:
//   - Wire values are the case-sensitive Portuguese statuses shared with the
//     other mecânica services.
//   - Transitions are driven exclusively through the table below; no handler
//     or usecase mutates Status on its own.

type OSStatus string

const (
	OSStatusRecebida            OSStatus = "RECEBIDA"
	OSStatusEmDiagnostico       OSStatus = "EM_DIAGNOSTICO"
	OSStatusAguardandoAprovacao OSStatus = "AGUARDANDO_APROVACAO"
	OSStatusEmExecucao          OSStatus = "EM_EXECUCAO"
	OSStatusFinalizada          OSStatus = "FINALIZADA"
	OSStatusEntregue            OSStatus = "ENTREGUE"
	OSStatusCancelada           OSStatus = "CANCELADA"
)

// InvalidTransitionError is returned whenever a status change outside the
// transition table is attempted. It names both statuses so the caller can see
// exactly what was rejected.
type InvalidTransitionError struct {
	From OSStatus
	To   OSStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition from %s to %s", e.From, e.To)
}

// TransitionRule describes who may request a given status transition.
//
//   - Roles: any one of these roles is enough (OR semantics).
//   - Capability: an extra per-actor capability that also grants the
//     transition (used for the vehicle handover at delivery).
//   - System: the transition is reserved for the external budget-approval
//     callback and cannot be requested by an actor directly.
type TransitionRule struct {
	Roles      []Role
	Capability string
	System     bool
}

// osTransitions is the single source of truth for the status graph.
// CANCELADA is reachable only before execution starts; the budget-refusal
// path (AGUARDANDO_APROVACAO -> CANCELADA) belongs to the approval callback.
var osTransitions = map[OSStatus]map[OSStatus]TransitionRule{
	OSStatusRecebida: {
		OSStatusEmDiagnostico: {Roles: []Role{RoleMecanico, RoleAdmin}},
		OSStatusCancelada:     {Roles: []Role{RoleAdmin}},
	},
	OSStatusEmDiagnostico: {
		OSStatusAguardandoAprovacao: {Roles: []Role{RoleMecanico, RoleAdmin}},
		OSStatusCancelada:           {Roles: []Role{RoleAdmin}},
	},
	OSStatusAguardandoAprovacao: {
		OSStatusEmExecucao: {System: true},
		OSStatusCancelada:  {System: true},
	},
	OSStatusEmExecucao: {
		OSStatusFinalizada: {Roles: []Role{RoleMecanico, RoleAdmin}},
	},
	OSStatusFinalizada: {
		OSStatusEntregue: {Roles: []Role{RoleMecanico, RoleAdmin}, Capability: CapabilityEntrega},
	},
}

// TransitionRuleFor resolves the rule for a (from, to) pair.
// The second return is false when the pair is not in the graph.
func TransitionRuleFor(from, to OSStatus) (TransitionRule, bool) {
	targets, ok := osTransitions[from]
	if !ok {
		return TransitionRule{}, false
	}
	rule, ok := targets[to]
	return rule, ok
}

// IsValid reports whether s is one of the known wire values.
func (s OSStatus) IsValid() bool {
	switch s {
	case OSStatusRecebida, OSStatusEmDiagnostico, OSStatusAguardandoAprovacao,
		OSStatusEmExecucao, OSStatusFinalizada, OSStatusEntregue, OSStatusCancelada:
		return true
	}
	return false
}

// IsTerminal reports whether no transition leaves s.
func (s OSStatus) IsTerminal() bool {
	return len(osTransitions[s]) == 0
}

// ListPriority is the triage rank used by the default open-orders listing:
// orders in execution first, then awaiting approval, in diagnosis, received.
// Anything else sinks to the bottom. This ordering is a display policy kept
// for compatibility with the other mecânica services.
func (s OSStatus) ListPriority() int {
	switch s {
	case OSStatusEmExecucao:
		return 1
	case OSStatusAguardandoAprovacao:
		return 2
	case OSStatusEmDiagnostico:
		return 3
	case OSStatusRecebida:
		return 4
	default:
		return 99
	}
}
