package entities

import "time"

// ServiceItem is a labor line attached to an OS. The price is snapshotted
// from the service catalog at add time so later catalog changes never alter
// a historical order.
type ServiceItem struct {
	ServiceID string  `json:"service_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
}

// LineTotal is the item's contribution to the order total. Services are a
// fixed unit; non-positive prices contribute zero, never subtract.
func (i ServiceItem) LineTotal() float64 {
	if i.Price > 0 {
		return i.Price
	}
	return 0
}

// PartItem is a parts line attached to an OS, with the unit price snapshotted
// from the parts catalog at add time.
type PartItem struct {
	PartID    string  `json:"part_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

func (i PartItem) LineTotal() float64 {
	if i.Quantity > 0 && i.UnitPrice > 0 {
		return float64(i.Quantity) * i.UnitPrice
	}
	return 0
}

// ServiceOrder is the OS tracked from intake through approval to delivery.
//
// Invariants:
//   - TotalValue always equals CalculateTotalValue over the current items;
//     it is recomputed on every item mutation and never set by callers.
//   - Status only changes through Transition/TransitionFromCallback, which
//     consult the transition table in os_status.go.
//
// Orders are never deleted; terminal statuses just drop them from the default
// active listing. Version backs the per-order conditional write in DynamoDB.
type ServiceOrder struct {
	ID              string        `json:"id"`
	CustomerID      string        `json:"customer_id"`
	VehicleID       string        `json:"vehicle_id"`
	Status          OSStatus      `json:"status"`
	ServiceItems    []ServiceItem `json:"service_items"`
	PartItems       []PartItem    `json:"part_items"`
	TotalValue      float64       `json:"total_value"`
	RejectionReason string        `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
	Version         int64         `json:"version"`
}

// CalculateTotalValue sums the order's line totals. Pure and reentrant:
// no side effects, same input always yields the same output.
//
// A nil order or a nil item collection yields zero (the order is not in a
// computable state yet). Negative line totals contribute zero.
func CalculateTotalValue(o *ServiceOrder) float64 {
	if o == nil || o.ServiceItems == nil || o.PartItems == nil {
		return 0
	}
	total := 0.0
	for _, s := range o.ServiceItems {
		if t := s.LineTotal(); t > 0 {
			total += t
		}
	}
	for _, p := range o.PartItems {
		if t := p.LineTotal(); t > 0 {
			total += t
		}
	}
	return total
}

// NewServiceOrder creates an OS at intake: status RECEBIDA, empty (non-nil)
// item collections, computed total zero.
func NewServiceOrder(id, customerID, vehicleID string, now time.Time) ServiceOrder {
	o := ServiceOrder{
		ID:           id,
		CustomerID:   customerID,
		VehicleID:    vehicleID,
		Status:       OSStatusRecebida,
		ServiceItems: []ServiceItem{},
		PartItems:    []PartItem{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	o.TotalValue = CalculateTotalValue(&o)
	return o
}

// AddServiceItem appends a labor line and recomputes the total.
func (o *ServiceOrder) AddServiceItem(item ServiceItem, now time.Time) {
	o.ServiceItems = append(o.ServiceItems, item)
	o.TotalValue = CalculateTotalValue(o)
	o.UpdatedAt = now
}

// AddPartItem appends a parts line and recomputes the total.
func (o *ServiceOrder) AddPartItem(item PartItem, now time.Time) {
	o.PartItems = append(o.PartItems, item)
	o.TotalValue = CalculateTotalValue(o)
	o.UpdatedAt = now
}

// Transition applies an actor-requested status change. The transition table
// is checked before the role gate, so an out-of-graph attempt surfaces as an
// InvalidTransitionError regardless of who asked. The order is left untouched
// on any failure.
func (o *ServiceOrder) Transition(to OSStatus, actor *Actor, now time.Time) error {
	rule, ok := TransitionRuleFor(o.Status, to)
	if !ok {
		return &InvalidTransitionError{From: o.Status, To: to}
	}
	if err := AuthorizeTransition(actor, rule); err != nil {
		return err
	}
	o.Status = to
	o.UpdatedAt = now
	return nil
}

// TransitionFromCallback applies a status change on behalf of the external
// budget-approval system. Only transitions marked System in the table are
// accepted; everything else fails as an invalid transition so a repeated or
// misdirected callback is visibly rejected, never silently absorbed.
func (o *ServiceOrder) TransitionFromCallback(to OSStatus, now time.Time) error {
	rule, ok := TransitionRuleFor(o.Status, to)
	if !ok || !rule.System {
		return &InvalidTransitionError{From: o.Status, To: to}
	}
	o.Status = to
	o.UpdatedAt = now
	return nil
}
