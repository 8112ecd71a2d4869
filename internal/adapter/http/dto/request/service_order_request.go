package request

import "strings"

type CreateServiceOrderRequest struct {
	CustomerID string `json:"customer_id" binding:"required"`
	VehicleID  string `json:"vehicle_id" binding:"required"`
}

type AddPartItemRequest struct {
	PartID   string `json:"part_id" binding:"required"`
	Quantity int    `json:"quantity" binding:"required"`
}

type AddServiceItemRequest struct {
	ServiceID string `json:"service_id" binding:"required"`
}

// ApprovalCallbackRequest is the payload posted by the external approval
// system once the customer decides on the budget. Field names follow the
// integration contract, not our own conventions.
type ApprovalCallbackRequest struct {
	OrdemServicoID string `json:"ordemServicoId" binding:"required"`
	Aprovado       *bool  `json:"aprovado" binding:"required"`
	MotivoRecusa   string `json:"motivoRecusa"`
}

func (r ApprovalCallbackRequest) ResolveOSID() string {
	return strings.TrimSpace(r.OrdemServicoID)
}

// Approved reports the verdict; an absent field never means "rejected", the
// binding above refuses the payload before we get here.
func (r ApprovalCallbackRequest) Approved() bool {
	return r.Aprovado != nil && *r.Aprovado
}
