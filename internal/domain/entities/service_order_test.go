package entities

import (
	"errors"
	"testing"
	"time"
)

func TestCalculateTotalValue(t *testing.T) {
	t.Run("nil order", func(t *testing.T) {
		if got := CalculateTotalValue(nil); got != 0 {
			t.Fatalf("expected 0, got %v", got)
		}
	})

	t.Run("nil item collections", func(t *testing.T) {
		o := &ServiceOrder{ServiceItems: nil, PartItems: []PartItem{{Quantity: 1, UnitPrice: 10}}}
		if got := CalculateTotalValue(o); got != 0 {
			t.Fatalf("expected 0 with nil service items, got %v", got)
		}
		o = &ServiceOrder{ServiceItems: []ServiceItem{{Price: 10}}, PartItems: nil}
		if got := CalculateTotalValue(o); got != 0 {
			t.Fatalf("expected 0 with nil part items, got %v", got)
		}
	})

	t.Run("empty collections", func(t *testing.T) {
		o := &ServiceOrder{ServiceItems: []ServiceItem{}, PartItems: []PartItem{}}
		if got := CalculateTotalValue(o); got != 0 {
			t.Fatalf("expected 0, got %v", got)
		}
	})

	t.Run("one part and one service", func(t *testing.T) {
		o := &ServiceOrder{
			ServiceItems: []ServiceItem{{ServiceID: "svc-1", Price: 100.00}},
			PartItems:    []PartItem{{PartID: "p-1", Quantity: 1, UnitPrice: 100.50}},
		}
		if got := CalculateTotalValue(o); got != 200.50 {
			t.Fatalf("expected 200.50, got %v", got)
		}
	})

	t.Run("negative lines contribute zero", func(t *testing.T) {
		o := &ServiceOrder{
			ServiceItems: []ServiceItem{{Price: -50}, {Price: 30}},
			PartItems:    []PartItem{{Quantity: 2, UnitPrice: -5}, {Quantity: -1, UnitPrice: 10}, {Quantity: 3, UnitPrice: 7}},
		}
		if got := CalculateTotalValue(o); got != 51 {
			t.Fatalf("expected 51, got %v", got)
		}
	})

	t.Run("deterministic on repeated calls", func(t *testing.T) {
		o := &ServiceOrder{
			ServiceItems: []ServiceItem{{Price: 12.5}},
			PartItems:    []PartItem{{Quantity: 4, UnitPrice: 2.25}},
		}
		first := CalculateTotalValue(o)
		for i := 0; i < 10; i++ {
			if got := CalculateTotalValue(o); got != first {
				t.Fatalf("expected %v on call %d, got %v", first, i, got)
			}
		}
	})
}

func TestNewServiceOrder(t *testing.T) {
	now := time.Now().UTC()
	o := NewServiceOrder("os-1", "c-1", "v-1", now)

	if o.Status != OSStatusRecebida {
		t.Fatalf("expected RECEBIDA, got %s", o.Status)
	}
	if o.ServiceItems == nil || o.PartItems == nil {
		t.Fatalf("expected non-nil item collections")
	}
	if o.TotalValue != 0 {
		t.Fatalf("expected total 0, got %v", o.TotalValue)
	}
	if !o.CreatedAt.Equal(now) || !o.UpdatedAt.Equal(now) {
		t.Fatalf("expected timestamps set to now")
	}
}

func TestServiceOrder_AddItemsRecomputesTotal(t *testing.T) {
	now := time.Now().UTC()
	o := NewServiceOrder("os-1", "c-1", "v-1", now)

	later := now.Add(time.Minute)
	o.AddPartItem(PartItem{PartID: "p-1", Name: "Filtro", Quantity: 2, UnitPrice: 25.00}, later)
	if o.TotalValue != 50.00 {
		t.Fatalf("expected total 50.00, got %v", o.TotalValue)
	}
	if !o.UpdatedAt.Equal(later) {
		t.Fatalf("expected UpdatedAt touched")
	}

	o.AddServiceItem(ServiceItem{ServiceID: "svc-1", Name: "Troca de óleo", Price: 80.00}, later.Add(time.Minute))
	if o.TotalValue != 130.00 {
		t.Fatalf("expected total 130.00, got %v", o.TotalValue)
	}
}

func TestServiceOrder_Transition(t *testing.T) {
	mecanico := &Actor{ID: "u-1", Role: RoleMecanico}
	admin := &Actor{ID: "u-2", Role: RoleAdmin}
	cliente := &Actor{ID: "u-3", Role: RoleCliente}
	now := time.Now().UTC()

	t.Run("happy path through the graph", func(t *testing.T) {
		o := NewServiceOrder("os-1", "c-1", "v-1", now)

		steps := []OSStatus{OSStatusEmDiagnostico, OSStatusAguardandoAprovacao}
		for _, target := range steps {
			if err := o.Transition(target, mecanico, now); err != nil {
				t.Fatalf("transition to %s failed: %v", target, err)
			}
			if o.Status != target {
				t.Fatalf("expected status %s, got %s", target, o.Status)
			}
		}

		if err := o.TransitionFromCallback(OSStatusEmExecucao, now); err != nil {
			t.Fatalf("callback transition failed: %v", err)
		}
		if err := o.Transition(OSStatusFinalizada, admin, now); err != nil {
			t.Fatalf("finish failed: %v", err)
		}
		if err := o.Transition(OSStatusEntregue, mecanico, now); err != nil {
			t.Fatalf("deliver failed: %v", err)
		}
	})

	t.Run("cliente cannot start diagnosis", func(t *testing.T) {
		o := NewServiceOrder("os-1", "c-1", "v-1", now)
		err := o.Transition(OSStatusEmDiagnostico, cliente, now)
		var denied *AccessDeniedError
		if !errors.As(err, &denied) {
			t.Fatalf("expected AccessDeniedError, got %v", err)
		}
		if denied.Actual != RoleCliente {
			t.Fatalf("expected actual perfil CLIENTE, got %s", denied.Actual)
		}
		if o.Status != OSStatusRecebida {
			t.Fatalf("order must be left untouched, got %s", o.Status)
		}
	})

	t.Run("unauthenticated actor", func(t *testing.T) {
		o := NewServiceOrder("os-1", "c-1", "v-1", now)
		if err := o.Transition(OSStatusEmDiagnostico, nil, now); !errors.Is(err, ErrUnauthenticated) {
			t.Fatalf("expected ErrUnauthenticated, got %v", err)
		}
	})

	t.Run("system transition is closed to actors", func(t *testing.T) {
		o := NewServiceOrder("os-1", "c-1", "v-1", now)
		o.Status = OSStatusAguardandoAprovacao
		err := o.Transition(OSStatusEmExecucao, admin, now)
		var denied *AccessDeniedError
		if !errors.As(err, &denied) {
			t.Fatalf("expected AccessDeniedError, got %v", err)
		}
		if o.Status != OSStatusAguardandoAprovacao {
			t.Fatalf("order must be left untouched, got %s", o.Status)
		}
	})

	t.Run("handover capability delivers without mecanico perfil", func(t *testing.T) {
		o := NewServiceOrder("os-1", "c-1", "v-1", now)
		o.Status = OSStatusFinalizada
		atendente := &Actor{ID: "u-4", Role: RoleCliente, Capabilities: []string{CapabilityEntrega}}
		if err := o.Transition(OSStatusEntregue, atendente, now); err != nil {
			t.Fatalf("expected handover capability to deliver, got %v", err)
		}
	})

	t.Run("every out-of-graph pair fails and leaves status unchanged", func(t *testing.T) {
		all := []OSStatus{
			OSStatusRecebida, OSStatusEmDiagnostico, OSStatusAguardandoAprovacao,
			OSStatusEmExecucao, OSStatusFinalizada, OSStatusEntregue, OSStatusCancelada,
		}
		for _, from := range all {
			for _, to := range all {
				if _, ok := TransitionRuleFor(from, to); ok {
					continue
				}
				o := NewServiceOrder("os-1", "c-1", "v-1", now)
				o.Status = from
				err := o.Transition(to, admin, now)
				var invalid *InvalidTransitionError
				if !errors.As(err, &invalid) {
					t.Fatalf("%s -> %s: expected InvalidTransitionError, got %v", from, to, err)
				}
				if invalid.From != from || invalid.To != to {
					t.Fatalf("error must name current and attempted status, got %+v", invalid)
				}
				if o.Status != from {
					t.Fatalf("%s -> %s: order must be left untouched, got %s", from, to, o.Status)
				}
			}
		}
	})
}

func TestServiceOrder_TransitionFromCallback(t *testing.T) {
	now := time.Now().UTC()

	t.Run("rejects non-system transitions", func(t *testing.T) {
		o := NewServiceOrder("os-1", "c-1", "v-1", now)
		err := o.TransitionFromCallback(OSStatusEmDiagnostico, now)
		var invalid *InvalidTransitionError
		if !errors.As(err, &invalid) {
			t.Fatalf("expected InvalidTransitionError, got %v", err)
		}
	})

	t.Run("rejects repeat once transitioned", func(t *testing.T) {
		o := NewServiceOrder("os-1", "c-1", "v-1", now)
		o.Status = OSStatusAguardandoAprovacao
		if err := o.TransitionFromCallback(OSStatusEmExecucao, now); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := o.TransitionFromCallback(OSStatusEmExecucao, now); err == nil {
			t.Fatalf("expected repeated callback to fail")
		}
		if o.Status != OSStatusEmExecucao {
			t.Fatalf("status must stay EM_EXECUCAO, got %s", o.Status)
		}
	})
}
