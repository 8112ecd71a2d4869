package interfaces

import (
	"context"
	"mecanica_os/internal/domain/entities"
)

// IPaymentRepository abstracts DynamoDB persistence for Payment.

type IPaymentRepository interface {
	Create(ctx context.Context, p entities.Payment) (entities.Payment, error)
	GetByID(ctx context.Context, id string) (entities.Payment, error)
	ListByServiceOrderID(ctx context.Context, osID string) ([]entities.Payment, error)
}
