package interfaces

import (
	"context"
	"mecanica_os/internal/domain/entities"
)

// INotificationGateway abstracts the external notification channel.
//
// The OS service only reports that an order's status changed, passing the
// order and its customer so the channel can compose the message; content and
// delivery are out of scope here. Failures are logged, never fatal.
type INotificationGateway interface {
	NotifyStatusChange(ctx context.Context, order entities.ServiceOrder, customer entities.Customer) error
}
