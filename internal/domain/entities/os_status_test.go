package entities

import "testing"

func TestOSStatus_IsValid(t *testing.T) {
	valid := []OSStatus{
		OSStatusRecebida, OSStatusEmDiagnostico, OSStatusAguardandoAprovacao,
		OSStatusEmExecucao, OSStatusFinalizada, OSStatusEntregue, OSStatusCancelada,
	}
	for _, s := range valid {
		if !s.IsValid() {
			t.Fatalf("expected %s to be valid", s)
		}
	}
	if OSStatus("EM_ESPERA").IsValid() {
		t.Fatalf("expected unknown status to be invalid")
	}
}

func TestOSStatus_IsTerminal(t *testing.T) {
	terminal := []OSStatus{OSStatusEntregue, OSStatusCancelada}
	for _, s := range terminal {
		if !s.IsTerminal() {
			t.Fatalf("expected %s to be terminal", s)
		}
	}
	open := []OSStatus{OSStatusRecebida, OSStatusEmDiagnostico, OSStatusAguardandoAprovacao, OSStatusEmExecucao, OSStatusFinalizada}
	for _, s := range open {
		if s.IsTerminal() {
			t.Fatalf("expected %s to be non-terminal", s)
		}
	}
}

func TestOSStatus_ListPriority(t *testing.T) {
	cases := []struct {
		status OSStatus
		rank   int
	}{
		{OSStatusEmExecucao, 1},
		{OSStatusAguardandoAprovacao, 2},
		{OSStatusEmDiagnostico, 3},
		{OSStatusRecebida, 4},
		{OSStatusCancelada, 99},
		{OSStatus("EM_ESPERA"), 99},
	}
	for _, tc := range cases {
		if got := tc.status.ListPriority(); got != tc.rank {
			t.Fatalf("%s: expected rank %d, got %d", tc.status, tc.rank, got)
		}
	}
}

func TestTransitionRuleFor(t *testing.T) {
	t.Run("cancellation only before execution", func(t *testing.T) {
		for _, from := range []OSStatus{OSStatusRecebida, OSStatusEmDiagnostico, OSStatusAguardandoAprovacao} {
			if _, ok := TransitionRuleFor(from, OSStatusCancelada); !ok {
				t.Fatalf("expected %s -> CANCELADA in the graph", from)
			}
		}
		for _, from := range []OSStatus{OSStatusEmExecucao, OSStatusFinalizada, OSStatusEntregue, OSStatusCancelada} {
			if _, ok := TransitionRuleFor(from, OSStatusCancelada); ok {
				t.Fatalf("expected %s -> CANCELADA to be outside the graph", from)
			}
		}
	})

	t.Run("approval verdict paths are system-only", func(t *testing.T) {
		for _, to := range []OSStatus{OSStatusEmExecucao, OSStatusCancelada} {
			rule, ok := TransitionRuleFor(OSStatusAguardandoAprovacao, to)
			if !ok {
				t.Fatalf("expected AGUARDANDO_APROVACAO -> %s in the graph", to)
			}
			if !rule.System {
				t.Fatalf("expected AGUARDANDO_APROVACAO -> %s to be system-only", to)
			}
		}
	})

	t.Run("handover rule carries capability", func(t *testing.T) {
		rule, ok := TransitionRuleFor(OSStatusFinalizada, OSStatusEntregue)
		if !ok {
			t.Fatalf("expected FINALIZADA -> ENTREGUE in the graph")
		}
		if rule.Capability != CapabilityEntrega {
			t.Fatalf("expected capability %q, got %q", CapabilityEntrega, rule.Capability)
		}
	})
}
