package interfaces

import (
	"context"
	"mecanica_os/internal/domain/entities"
)

// IPartRepository abstracts DynamoDB persistence for the parts catalog.

type IPartRepository interface {
	Create(ctx context.Context, p entities.Part) (entities.Part, error)
	GetByID(ctx context.Context, id string) (entities.Part, error)
	List(ctx context.Context) ([]entities.Part, error)
}

// IServiceRepository abstracts DynamoDB persistence for the labor catalog.

type IServiceRepository interface {
	Create(ctx context.Context, s entities.Service) (entities.Service, error)
	GetByID(ctx context.Context, id string) (entities.Service, error)
	List(ctx context.Context) ([]entities.Service, error)
}
