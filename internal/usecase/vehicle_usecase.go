package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"mecanica_os/internal/domain/entities"
	"mecanica_os/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrInvalidVehicle       = errors.New("invalid vehicle data")
	ErrVehicleAlreadyExists = errors.New("vehicle already exists")
)

// IVehicleUseCase exposes vehicle registry operations.

type IVehicleUseCase interface {
	Create(ctx context.Context, actor *entities.Actor, customerID, plate, brand, model string, year int) (entities.Vehicle, error)
	GetByID(ctx context.Context, id string) (entities.Vehicle, error)
	ListByCustomerID(ctx context.Context, customerID string) ([]entities.Vehicle, error)
}

type VehicleUseCase struct {
	repo         interfaces.IVehicleRepository
	customerRepo interfaces.ICustomerRepository
}

var _ IVehicleUseCase = (*VehicleUseCase)(nil)

func NewVehicleUseCase(repo interfaces.IVehicleRepository, customerRepo interfaces.ICustomerRepository) *VehicleUseCase {
	return &VehicleUseCase{repo: repo, customerRepo: customerRepo}
}

func (u *VehicleUseCase) Create(ctx context.Context, actor *entities.Actor, customerID, plate, brand, model string, year int) (entities.Vehicle, error) {
	if err := entities.Authorize(actor, entities.RoleMecanico, entities.RoleAdmin); err != nil {
		return entities.Vehicle{}, err
	}

	customerID = strings.TrimSpace(customerID)
	plate = strings.ToUpper(strings.TrimSpace(plate))
	if customerID == "" || plate == "" {
		return entities.Vehicle{}, ErrInvalidVehicle
	}

	customer, err := u.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return entities.Vehicle{}, err
	}
	if customer.ID == "" {
		return entities.Vehicle{}, ErrCustomerNotFound
	}

	if existing, err := u.repo.GetByPlate(ctx, plate); err != nil {
		return entities.Vehicle{}, err
	} else if existing.ID != "" {
		return entities.Vehicle{}, ErrVehicleAlreadyExists
	}

	now := time.Now().UTC()
	v := entities.Vehicle{
		ID:         uuid.NewString(),
		CustomerID: customerID,
		Plate:      plate,
		Brand:      strings.TrimSpace(brand),
		Model:      strings.TrimSpace(model),
		Year:       year,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	return u.repo.Create(ctx, v)
}

func (u *VehicleUseCase) GetByID(ctx context.Context, id string) (entities.Vehicle, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Vehicle{}, ErrInvalidVehicleID
	}

	v, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Vehicle{}, err
	}
	if v.ID == "" {
		return entities.Vehicle{}, ErrVehicleNotFound
	}
	return v, nil
}

func (u *VehicleUseCase) ListByCustomerID(ctx context.Context, customerID string) ([]entities.Vehicle, error) {
	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		return nil, ErrInvalidCustomerID
	}
	return u.repo.ListByCustomerID(ctx, customerID)
}
