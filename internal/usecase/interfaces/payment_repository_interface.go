package interfaces

import (
	"context"

	"github.com/seha3/repair-orders/internal/domain/entities"
)

// IPaymentRepository abstracts persistence for delivery payments.

type IPaymentRepository interface {
	Create(ctx context.Context, p entities.Payment) (entities.Payment, error)
	GetByID(ctx context.Context, id string) (entities.Payment, error)
	ListByOrderID(ctx context.Context, orderID string) ([]entities.Payment, error)
}
