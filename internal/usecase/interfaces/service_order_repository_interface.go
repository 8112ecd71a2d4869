package interfaces

import (
	"context"
	"mecanica_os/internal/domain/entities"
)

// IServiceOrderRepository abstracts DynamoDB persistence for ServiceOrder.
//
// Update is a conditional write on the order's version: when another writer
// committed first, the repository returns a zero-value order (no error) and
// the usecase surfaces the conflict to the caller. This is how concurrent
// transition attempts on the same OS are serialized.

type IServiceOrderRepository interface {
	Create(ctx context.Context, o entities.ServiceOrder) (entities.ServiceOrder, error)
	GetByID(ctx context.Context, id string) (entities.ServiceOrder, error)
	Update(ctx context.Context, o entities.ServiceOrder) (entities.ServiceOrder, error)
	List(ctx context.Context) ([]entities.ServiceOrder, error)
}
