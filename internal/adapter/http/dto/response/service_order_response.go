package response

import (
	"time"

	"mecanica_os/internal/domain/entities"
)

type ServiceItemResponse struct {
	ServiceID string  `json:"service_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
}

type PartItemResponse struct {
	PartID    string  `json:"part_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

type ServiceOrderResponse struct {
	ID              string                `json:"id"`
	CustomerID      string                `json:"customer_id"`
	VehicleID       string                `json:"vehicle_id"`
	Status          string                `json:"status"`
	Services        []ServiceItemResponse `json:"services"`
	PartsSupplies   []PartItemResponse    `json:"parts_supplies"`
	TotalValue      float64               `json:"total_value"`
	RejectionReason string                `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

func FromServiceOrder(o entities.ServiceOrder) ServiceOrderResponse {
	services := make([]ServiceItemResponse, 0, len(o.ServiceItems))
	for _, s := range o.ServiceItems {
		services = append(services, ServiceItemResponse{ServiceID: s.ServiceID, Name: s.Name, Price: s.Price})
	}
	parts := make([]PartItemResponse, 0, len(o.PartItems))
	for _, p := range o.PartItems {
		parts = append(parts, PartItemResponse{PartID: p.PartID, Name: p.Name, Quantity: p.Quantity, UnitPrice: p.UnitPrice})
	}
	return ServiceOrderResponse{
		ID:              o.ID,
		CustomerID:      o.CustomerID,
		VehicleID:       o.VehicleID,
		Status:          string(o.Status),
		Services:        services,
		PartsSupplies:   parts,
		TotalValue:      o.TotalValue,
		RejectionReason: o.RejectionReason,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

func FromServiceOrders(orders []entities.ServiceOrder) []ServiceOrderResponse {
	out := make([]ServiceOrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, FromServiceOrder(o))
	}
	return out
}

type PaymentResponse struct {
	ID             string    `json:"id"`
	ServiceOrderID string    `json:"service_order_id"`
	Amount         float64   `json:"amount"`
	Date           time.Time `json:"date"`
	Status         string    `json:"status"`
}

func FromPayment(p entities.Payment) PaymentResponse {
	return PaymentResponse{
		ID:             p.ID,
		ServiceOrderID: p.ServiceOrderID,
		Amount:         p.Amount,
		Date:           p.Date,
		Status:         string(p.Status),
	}
}

func FromPayments(payments []entities.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, FromPayment(p))
	}
	return out
}
