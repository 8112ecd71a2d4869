package response

import (
	"testing"
	"time"

	"mecanica_os/internal/domain/entities"
)

func TestFromServiceOrder(t *testing.T) {
	now := time.Now().UTC()
	o := entities.ServiceOrder{
		ID:         "os-1",
		CustomerID: "c-1",
		VehicleID:  "v-1",
		Status:     entities.OSStatusAguardandoAprovacao,
		ServiceItems: []entities.ServiceItem{
			{ServiceID: "svc-1", Name: "Alinhamento", Price: 100.00},
		},
		PartItems: []entities.PartItem{
			{PartID: "p-1", Name: "Filtro de ar", Quantity: 1, UnitPrice: 100.50},
		},
		TotalValue: 200.50,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	r := FromServiceOrder(o)
	if r.ID != "os-1" || r.Status != "AGUARDANDO_APROVACAO" || r.TotalValue != 200.50 {
		t.Fatalf("unexpected response: %+v", r)
	}
	if len(r.Services) != 1 || r.Services[0].Price != 100.00 {
		t.Fatalf("unexpected services: %+v", r.Services)
	}
	if len(r.PartsSupplies) != 1 || r.PartsSupplies[0].UnitPrice != 100.50 {
		t.Fatalf("unexpected parts: %+v", r.PartsSupplies)
	}
	if r.RejectionReason != "" {
		t.Fatalf("expected empty rejection reason")
	}
}

func TestFromServiceOrder_EmptyCollectionsStayArrays(t *testing.T) {
	r := FromServiceOrder(entities.ServiceOrder{ID: "os-1"})
	if r.Services == nil || r.PartsSupplies == nil {
		t.Fatalf("collections must serialize as [] not null")
	}
}

func TestFromServiceOrders_PreservesOrder(t *testing.T) {
	orders := []entities.ServiceOrder{{ID: "a"}, {ID: "b"}}
	out := FromServiceOrders(orders)
	if len(out) != 2 || out[0].ID != "a" || out[1].ID != "b" {
		t.Fatalf("unexpected projection: %+v", out)
	}
}

func TestFromPayment(t *testing.T) {
	p := entities.Payment{ID: "pay-1", ServiceOrderID: "os-1", Amount: 200.50, Status: entities.PaymentStatusAprovado}
	r := FromPayment(p)
	if r.ID != "pay-1" || r.ServiceOrderID != "os-1" || r.Status != "aprovado" {
		t.Fatalf("unexpected response: %+v", r)
	}
}
