package interfaces

import (
	"context"
	"mecanica_os/internal/domain/entities"
)

// IUserRepository abstracts DynamoDB persistence for User.
// Document is the login key (CPF/CNPJ).

type IUserRepository interface {
	Create(ctx context.Context, u entities.User) (entities.User, error)
	GetByID(ctx context.Context, id string) (entities.User, error)
	GetByDocument(ctx context.Context, document string) (entities.User, error)
}
