package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"mecanica_os/internal/domain/entities"
	"mecanica_os/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrServiceOrderNotFound   = errors.New("service order not found")
	ErrInvalidOSID            = errors.New("invalid os id")
	ErrInvalidCustomerID      = errors.New("invalid customer id")
	ErrInvalidVehicleID       = errors.New("invalid vehicle id")
	ErrInvalidQuantity        = errors.New("invalid quantity")
	ErrCustomerNotFound       = errors.New("customer not found")
	ErrVehicleNotFound        = errors.New("vehicle not found")
	ErrPartNotFound           = errors.New("part not found")
	ErrCatalogServiceNotFound = errors.New("catalog service not found")
	ErrOSNotInDiagnosis       = errors.New("service order is not in diagnosis")
	ErrOSWithoutItems         = errors.New("service order has no items to present")
	ErrConcurrentUpdate       = errors.New("service order was updated concurrently")
)

// IServiceOrderUseCase exposes the OS lifecycle.
//
// Every mutating operation except ProcessApproval is role-gated at entry;
// ProcessApproval is the single write path for the external budget verdict
// and carries no actor.

type IServiceOrderUseCase interface {
	Create(ctx context.Context, actor *entities.Actor, customerID, vehicleID string) (entities.ServiceOrder, error)
	StartDiagnosis(ctx context.Context, actor *entities.Actor, osID string) (entities.ServiceOrder, error)
	AddPartItem(ctx context.Context, actor *entities.Actor, osID, partID string, quantity int) (entities.ServiceOrder, error)
	AddServiceItem(ctx context.Context, actor *entities.Actor, osID, serviceID string) (entities.ServiceOrder, error)
	SubmitForApproval(ctx context.Context, actor *entities.Actor, osID string) (entities.ServiceOrder, error)
	ProcessApproval(ctx context.Context, osID string, approved bool, rejectionReason string) (entities.ServiceOrder, error)
	Finish(ctx context.Context, actor *entities.Actor, osID string) (entities.ServiceOrder, error)
	Deliver(ctx context.Context, actor *entities.Actor, osID string) (entities.ServiceOrder, error)
	Cancel(ctx context.Context, actor *entities.Actor, osID string) (entities.ServiceOrder, error)
	GetByID(ctx context.Context, id string) (entities.ServiceOrder, error)
	ListActive(ctx context.Context) ([]entities.ServiceOrder, error)
	ListPayments(ctx context.Context, osID string) ([]entities.Payment, error)
}

type ServiceOrderUseCase struct {
	repo         interfaces.IServiceOrderRepository
	customerRepo interfaces.ICustomerRepository
	vehicleRepo  interfaces.IVehicleRepository
	partRepo     interfaces.IPartRepository
	serviceRepo  interfaces.IServiceRepository
	paymentRepo  interfaces.IPaymentRepository
	notifier     interfaces.INotificationGateway
	gateway      interfaces.IPaymentGateway
}

var _ IServiceOrderUseCase = (*ServiceOrderUseCase)(nil)

func NewServiceOrderUseCase(
	repo interfaces.IServiceOrderRepository,
	customerRepo interfaces.ICustomerRepository,
	vehicleRepo interfaces.IVehicleRepository,
	partRepo interfaces.IPartRepository,
	serviceRepo interfaces.IServiceRepository,
	paymentRepo interfaces.IPaymentRepository,
	notifier interfaces.INotificationGateway,
	gateway interfaces.IPaymentGateway,
) *ServiceOrderUseCase {
	return &ServiceOrderUseCase{
		repo:         repo,
		customerRepo: customerRepo,
		vehicleRepo:  vehicleRepo,
		partRepo:     partRepo,
		serviceRepo:  serviceRepo,
		paymentRepo:  paymentRepo,
		notifier:     notifier,
		gateway:      gateway,
	}
}

func (u *ServiceOrderUseCase) Create(ctx context.Context, actor *entities.Actor, customerID, vehicleID string) (entities.ServiceOrder, error) {
	if err := entities.Authorize(actor, entities.RoleCliente, entities.RoleMecanico, entities.RoleAdmin); err != nil {
		return entities.ServiceOrder{}, err
	}

	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		return entities.ServiceOrder{}, ErrInvalidCustomerID
	}
	vehicleID = strings.TrimSpace(vehicleID)
	if vehicleID == "" {
		return entities.ServiceOrder{}, ErrInvalidVehicleID
	}

	customer, err := u.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	if customer.ID == "" {
		return entities.ServiceOrder{}, ErrCustomerNotFound
	}

	vehicle, err := u.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	if vehicle.ID == "" {
		return entities.ServiceOrder{}, ErrVehicleNotFound
	}

	o := entities.NewServiceOrder(uuid.NewString(), customerID, vehicleID, time.Now().UTC())
	created, err := u.repo.Create(ctx, o)
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	log.Printf("[os][usecase] created os_id=%s customer_id=%s vehicle_id=%s", created.ID, customerID, vehicleID)
	return created, nil
}

func (u *ServiceOrderUseCase) StartDiagnosis(ctx context.Context, actor *entities.Actor, osID string) (entities.ServiceOrder, error) {
	return u.transition(ctx, actor, osID, entities.OSStatusEmDiagnostico)
}

func (u *ServiceOrderUseCase) SubmitForApproval(ctx context.Context, actor *entities.Actor, osID string) (entities.ServiceOrder, error) {
	osID = strings.TrimSpace(osID)
	if osID == "" {
		return entities.ServiceOrder{}, ErrInvalidOSID
	}

	o, err := u.load(ctx, osID)
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	if len(o.ServiceItems) == 0 && len(o.PartItems) == 0 {
		return entities.ServiceOrder{}, ErrOSWithoutItems
	}
	if err := o.Transition(entities.OSStatusAguardandoAprovacao, actor, time.Now().UTC()); err != nil {
		return entities.ServiceOrder{}, err
	}

	updated, err := u.persist(ctx, o)
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	log.Printf("[os][usecase] budget presented os_id=%s total=%.2f", updated.ID, updated.TotalValue)
	u.notify(ctx, updated)
	return updated, nil
}

func (u *ServiceOrderUseCase) Finish(ctx context.Context, actor *entities.Actor, osID string) (entities.ServiceOrder, error) {
	o, err := u.transition(ctx, actor, osID, entities.OSStatusFinalizada)
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	u.notify(ctx, o)
	return o, nil
}

func (u *ServiceOrderUseCase) Deliver(ctx context.Context, actor *entities.Actor, osID string) (entities.ServiceOrder, error) {
	o, err := u.transition(ctx, actor, osID, entities.OSStatusEntregue)
	if err != nil {
		return entities.ServiceOrder{}, err
	}

	// Charging is best effort: the handover already happened, so a provider
	// failure must not undo the delivery. The pending charge stays visible
	// through the payments listing.
	if err := u.charge(ctx, o); err != nil {
		log.Printf("[os][usecase] charge failed os_id=%s err=%v", o.ID, err)
	}
	u.notify(ctx, o)
	return o, nil
}

func (u *ServiceOrderUseCase) Cancel(ctx context.Context, actor *entities.Actor, osID string) (entities.ServiceOrder, error) {
	o, err := u.transition(ctx, actor, osID, entities.OSStatusCancelada)
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	u.notify(ctx, o)
	return o, nil
}

// ProcessApproval applies the external budget verdict. The order must be
// AGUARDANDO_APROVACAO: a verdict for an order in any other status fails with
// an invalid-transition error so the external system sees the rejection. That
// covers repeated deliveries of the same verdict as well.
func (u *ServiceOrderUseCase) ProcessApproval(ctx context.Context, osID string, approved bool, rejectionReason string) (entities.ServiceOrder, error) {
	osID = strings.TrimSpace(osID)
	if osID == "" {
		return entities.ServiceOrder{}, ErrInvalidOSID
	}

	o, err := u.load(ctx, osID)
	if err != nil {
		return entities.ServiceOrder{}, err
	}

	now := time.Now().UTC()
	if approved {
		if err := o.TransitionFromCallback(entities.OSStatusEmExecucao, now); err != nil {
			return entities.ServiceOrder{}, err
		}
		o.RejectionReason = ""
	} else {
		if err := o.TransitionFromCallback(entities.OSStatusCancelada, now); err != nil {
			return entities.ServiceOrder{}, err
		}
		o.RejectionReason = rejectionReason
	}

	updated, err := u.persist(ctx, o)
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	log.Printf("[os][usecase] approval processed os_id=%s approved=%t status=%s", updated.ID, approved, updated.Status)
	u.notify(ctx, updated)
	return updated, nil
}

func (u *ServiceOrderUseCase) AddPartItem(ctx context.Context, actor *entities.Actor, osID, partID string, quantity int) (entities.ServiceOrder, error) {
	if err := entities.Authorize(actor, entities.RoleMecanico, entities.RoleAdmin); err != nil {
		return entities.ServiceOrder{}, err
	}
	osID = strings.TrimSpace(osID)
	if osID == "" {
		return entities.ServiceOrder{}, ErrInvalidOSID
	}
	partID = strings.TrimSpace(partID)
	if partID == "" {
		return entities.ServiceOrder{}, ErrPartNotFound
	}
	if quantity <= 0 {
		return entities.ServiceOrder{}, ErrInvalidQuantity
	}

	o, err := u.load(ctx, osID)
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	if o.Status != entities.OSStatusEmDiagnostico {
		return entities.ServiceOrder{}, ErrOSNotInDiagnosis
	}

	part, err := u.partRepo.GetByID(ctx, partID)
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	if part.ID == "" {
		return entities.ServiceOrder{}, ErrPartNotFound
	}

	// Unit price snapshotted here; later catalog changes never touch this OS.
	o.AddPartItem(entities.PartItem{
		PartID:    part.ID,
		Name:      part.Name,
		Quantity:  quantity,
		UnitPrice: part.Price,
	}, time.Now().UTC())

	return u.persist(ctx, o)
}

func (u *ServiceOrderUseCase) AddServiceItem(ctx context.Context, actor *entities.Actor, osID, serviceID string) (entities.ServiceOrder, error) {
	if err := entities.Authorize(actor, entities.RoleMecanico, entities.RoleAdmin); err != nil {
		return entities.ServiceOrder{}, err
	}
	osID = strings.TrimSpace(osID)
	if osID == "" {
		return entities.ServiceOrder{}, ErrInvalidOSID
	}
	serviceID = strings.TrimSpace(serviceID)
	if serviceID == "" {
		return entities.ServiceOrder{}, ErrCatalogServiceNotFound
	}

	o, err := u.load(ctx, osID)
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	if o.Status != entities.OSStatusEmDiagnostico {
		return entities.ServiceOrder{}, ErrOSNotInDiagnosis
	}

	svc, err := u.serviceRepo.GetByID(ctx, serviceID)
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	if svc.ID == "" {
		return entities.ServiceOrder{}, ErrCatalogServiceNotFound
	}

	o.AddServiceItem(entities.ServiceItem{
		ServiceID: svc.ID,
		Name:      svc.Name,
		Price:     svc.Price,
	}, time.Now().UTC())

	return u.persist(ctx, o)
}

func (u *ServiceOrderUseCase) GetByID(ctx context.Context, id string) (entities.ServiceOrder, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.ServiceOrder{}, ErrInvalidOSID
	}
	return u.load(ctx, id)
}

// ListActive returns the default open-orders view: terminal-for-the-shop
// statuses (FINALIZADA, ENTREGUE) excluded, remaining orders sorted by triage
// priority then creation time.
func (u *ServiceOrderUseCase) ListActive(ctx context.Context) ([]entities.ServiceOrder, error) {
	orders, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	active := make([]entities.ServiceOrder, 0, len(orders))
	for _, o := range orders {
		if o.Status == entities.OSStatusFinalizada || o.Status == entities.OSStatusEntregue {
			continue
		}
		active = append(active, o)
	}

	sort.SliceStable(active, func(i, j int) bool {
		ri, rj := active[i].Status.ListPriority(), active[j].Status.ListPriority()
		if ri != rj {
			return ri < rj
		}
		return active[i].CreatedAt.Before(active[j].CreatedAt)
	})
	return active, nil
}

func (u *ServiceOrderUseCase) ListPayments(ctx context.Context, osID string) ([]entities.Payment, error) {
	osID = strings.TrimSpace(osID)
	if osID == "" {
		return nil, ErrInvalidOSID
	}
	return u.paymentRepo.ListByServiceOrderID(ctx, osID)
}

// transition is the shared load -> gate -> apply -> persist path for the
// single-step role-gated transitions.
func (u *ServiceOrderUseCase) transition(ctx context.Context, actor *entities.Actor, osID string, target entities.OSStatus) (entities.ServiceOrder, error) {
	osID = strings.TrimSpace(osID)
	if osID == "" {
		return entities.ServiceOrder{}, ErrInvalidOSID
	}

	o, err := u.load(ctx, osID)
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	if err := o.Transition(target, actor, time.Now().UTC()); err != nil {
		return entities.ServiceOrder{}, err
	}

	updated, err := u.persist(ctx, o)
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	log.Printf("[os][usecase] transition os_id=%s status=%s", updated.ID, updated.Status)
	return updated, nil
}

func (u *ServiceOrderUseCase) load(ctx context.Context, osID string) (entities.ServiceOrder, error) {
	o, err := u.repo.GetByID(ctx, osID)
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	if o.ID == "" {
		return entities.ServiceOrder{}, ErrServiceOrderNotFound
	}
	return o, nil
}

func (u *ServiceOrderUseCase) persist(ctx context.Context, o entities.ServiceOrder) (entities.ServiceOrder, error) {
	updated, err := u.repo.Update(ctx, o)
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	if updated.ID == "" {
		// Another writer committed between our read and this write. The caller
		// re-reads and sees the new status instead of overwriting it.
		return entities.ServiceOrder{}, ErrConcurrentUpdate
	}
	return updated, nil
}

func (u *ServiceOrderUseCase) notify(ctx context.Context, o entities.ServiceOrder) {
	if u.notifier == nil {
		return
	}
	customer, err := u.customerRepo.GetByID(ctx, o.CustomerID)
	if err != nil {
		log.Printf("[os][usecase] notify skipped os_id=%s err=%v", o.ID, err)
		return
	}
	if err := u.notifier.NotifyStatusChange(ctx, o, customer); err != nil {
		log.Printf("[os][usecase] notify failed os_id=%s err=%v", o.ID, err)
	}
}

// charge creates the provider payment for a delivered OS and records it.
func (u *ServiceOrderUseCase) charge(ctx context.Context, o entities.ServiceOrder) error {
	if u.gateway == nil || u.paymentRepo == nil {
		return errors.New("payment gateway not configured")
	}

	payload, err := json.Marshal(map[string]any{
		"transaction_amount": o.TotalValue,
		"description":        fmt.Sprintf("OS %s", o.ID),
		"external_reference": o.ID,
	})
	if err != nil {
		return err
	}

	providerID, providerStatus, providerResp, err := u.gateway.CreatePayment(ctx, payload)
	if err != nil {
		return err
	}

	status := entities.PaymentStatusPendente
	switch providerStatus {
	case "approved":
		status = entities.PaymentStatusAprovado
	case "rejected", "cancelled":
		status = entities.PaymentStatusNegado
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal(providerResp, &parsed); err != nil {
		log.Printf("[os][usecase] provider response unmarshal failed os_id=%s err=%v", o.ID, err)
	}

	p := entities.Payment{
		ID:                 providerID,
		ServiceOrderID:     o.ID,
		Amount:             o.TotalValue,
		Date:               time.Now().UTC(),
		Status:             status,
		ProviderPayloadRaw: providerResp,
		ProviderPayload:    parsed,
	}
	if _, err := u.paymentRepo.Create(ctx, p); err != nil {
		return err
	}
	log.Printf("[os][usecase] charge recorded os_id=%s payment_id=%s status=%s", o.ID, p.ID, p.Status)
	return nil
}
