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
	ErrInvalidCatalogEntry = errors.New("invalid catalog entry")
)

// ICatalogUseCase exposes the parts and labor catalogs that feed the price
// snapshots taken when items are attached to an OS.

type ICatalogUseCase interface {
	CreatePart(ctx context.Context, actor *entities.Actor, name, description string, price float64) (entities.Part, error)
	GetPartByID(ctx context.Context, id string) (entities.Part, error)
	ListParts(ctx context.Context) ([]entities.Part, error)

	CreateService(ctx context.Context, actor *entities.Actor, name, description string, price float64) (entities.Service, error)
	GetServiceByID(ctx context.Context, id string) (entities.Service, error)
	ListServices(ctx context.Context) ([]entities.Service, error)
}

type CatalogUseCase struct {
	partRepo    interfaces.IPartRepository
	serviceRepo interfaces.IServiceRepository
}

var _ ICatalogUseCase = (*CatalogUseCase)(nil)

func NewCatalogUseCase(partRepo interfaces.IPartRepository, serviceRepo interfaces.IServiceRepository) *CatalogUseCase {
	return &CatalogUseCase{partRepo: partRepo, serviceRepo: serviceRepo}
}

func (u *CatalogUseCase) CreatePart(ctx context.Context, actor *entities.Actor, name, description string, price float64) (entities.Part, error) {
	if err := entities.Authorize(actor, entities.RoleAdmin); err != nil {
		return entities.Part{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" || price <= 0 {
		return entities.Part{}, ErrInvalidCatalogEntry
	}

	now := time.Now().UTC()
	p := entities.Part{
		ID:          uuid.NewString(),
		Name:        name,
		Description: strings.TrimSpace(description),
		Price:       price,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return u.partRepo.Create(ctx, p)
}

func (u *CatalogUseCase) GetPartByID(ctx context.Context, id string) (entities.Part, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Part{}, ErrPartNotFound
	}

	p, err := u.partRepo.GetByID(ctx, id)
	if err != nil {
		return entities.Part{}, err
	}
	if p.ID == "" {
		return entities.Part{}, ErrPartNotFound
	}
	return p, nil
}

func (u *CatalogUseCase) ListParts(ctx context.Context) ([]entities.Part, error) {
	return u.partRepo.List(ctx)
}

func (u *CatalogUseCase) CreateService(ctx context.Context, actor *entities.Actor, name, description string, price float64) (entities.Service, error) {
	if err := entities.Authorize(actor, entities.RoleAdmin); err != nil {
		return entities.Service{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" || price <= 0 {
		return entities.Service{}, ErrInvalidCatalogEntry
	}

	now := time.Now().UTC()
	s := entities.Service{
		ID:          uuid.NewString(),
		Name:        name,
		Description: strings.TrimSpace(description),
		Price:       price,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return u.serviceRepo.Create(ctx, s)
}

func (u *CatalogUseCase) GetServiceByID(ctx context.Context, id string) (entities.Service, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Service{}, ErrCatalogServiceNotFound
	}

	s, err := u.serviceRepo.GetByID(ctx, id)
	if err != nil {
		return entities.Service{}, err
	}
	if s.ID == "" {
		return entities.Service{}, ErrCatalogServiceNotFound
	}
	return s, nil
}

func (u *CatalogUseCase) ListServices(ctx context.Context) ([]entities.Service, error) {
	return u.serviceRepo.List(ctx)
}
