package interfaces

import (
	"context"
	"mecanica_os/internal/domain/entities"
)

// ICustomerRepository abstracts DynamoDB persistence for Customer.
// Lookups by document and email back the uniqueness checks at creation.

type ICustomerRepository interface {
	Create(ctx context.Context, c entities.Customer) (entities.Customer, error)
	GetByID(ctx context.Context, id string) (entities.Customer, error)
	GetByDocument(ctx context.Context, document string) (entities.Customer, error)
	GetByEmail(ctx context.Context, email string) (entities.Customer, error)
	List(ctx context.Context) ([]entities.Customer, error)
}
