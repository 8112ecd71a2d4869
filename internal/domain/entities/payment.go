package entities

import (
	"encoding/json"
	"time"
)

// PaymentStatus represents the charge outcome reported by the provider.

type PaymentStatus string

const (
	PaymentStatusPendente PaymentStatus = "pendente"
	PaymentStatusAprovado PaymentStatus = "aprovado"
	PaymentStatusNegado   PaymentStatus = "negado"
)

// Payment is the charge created when an OS is delivered.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (os_id-index): os_id
//
// ProviderPayloadRaw keeps the original provider response (JSON) for
// traceability; ProviderPayload is an optional parsed view for debugging.
type Payment struct {
	ID             string        `json:"id"`
	ServiceOrderID string        `json:"service_order_id"`
	Amount         float64       `json:"amount"`
	Date           time.Time     `json:"date"`
	Status         PaymentStatus `json:"status"`

	ProviderPayloadRaw json.RawMessage        `json:"provider_payload_raw,omitempty"`
	ProviderPayload    map[string]interface{} `json:"provider_payload,omitempty"`
}
