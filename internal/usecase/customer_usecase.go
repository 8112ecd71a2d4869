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
	ErrInvalidCustomer       = errors.New("invalid customer data")
	ErrCustomerAlreadyExists = errors.New("customer already exists")
)

// ICustomerUseCase exposes customer registry operations.

type ICustomerUseCase interface {
	Create(ctx context.Context, actor *entities.Actor, name, document, email, phone string) (entities.Customer, error)
	GetByID(ctx context.Context, id string) (entities.Customer, error)
	GetByDocument(ctx context.Context, document string) (entities.Customer, error)
	List(ctx context.Context) ([]entities.Customer, error)
}

type CustomerUseCase struct {
	repo interfaces.ICustomerRepository
}

var _ ICustomerUseCase = (*CustomerUseCase)(nil)

func NewCustomerUseCase(repo interfaces.ICustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

func (u *CustomerUseCase) Create(ctx context.Context, actor *entities.Actor, name, document, email, phone string) (entities.Customer, error) {
	if err := entities.Authorize(actor, entities.RoleMecanico, entities.RoleAdmin); err != nil {
		return entities.Customer{}, err
	}

	name = strings.TrimSpace(name)
	document = strings.TrimSpace(document)
	email = strings.TrimSpace(email)
	phone = strings.TrimSpace(phone)
	if name == "" || document == "" || email == "" {
		return entities.Customer{}, ErrInvalidCustomer
	}

	// Document and email are unique identity keys.
	if existing, err := u.repo.GetByDocument(ctx, document); err != nil {
		return entities.Customer{}, err
	} else if existing.ID != "" {
		return entities.Customer{}, ErrCustomerAlreadyExists
	}
	if existing, err := u.repo.GetByEmail(ctx, email); err != nil {
		return entities.Customer{}, err
	} else if existing.ID != "" {
		return entities.Customer{}, ErrCustomerAlreadyExists
	}

	now := time.Now().UTC()
	c := entities.Customer{
		ID:        uuid.NewString(),
		Name:      name,
		Document:  document,
		Email:     email,
		Phone:     phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return u.repo.Create(ctx, c)
}

func (u *CustomerUseCase) GetByID(ctx context.Context, id string) (entities.Customer, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Customer{}, ErrInvalidCustomerID
	}

	c, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Customer{}, err
	}
	if c.ID == "" {
		return entities.Customer{}, ErrCustomerNotFound
	}
	return c, nil
}

func (u *CustomerUseCase) GetByDocument(ctx context.Context, document string) (entities.Customer, error) {
	document = strings.TrimSpace(document)
	if document == "" {
		return entities.Customer{}, ErrInvalidCustomer
	}

	c, err := u.repo.GetByDocument(ctx, document)
	if err != nil {
		return entities.Customer{}, err
	}
	if c.ID == "" {
		return entities.Customer{}, ErrCustomerNotFound
	}
	return c, nil
}

func (u *CustomerUseCase) List(ctx context.Context) ([]entities.Customer, error) {
	return u.repo.List(ctx)
}
