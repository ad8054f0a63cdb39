package memory

import (
	"context"
	"sync"

	"github.com/seha3/repair-orders/internal/domain/entities"
	"github.com/seha3/repair-orders/internal/usecase/interfaces"
)

// PaymentMemoryRepository keeps payments in memory, newest first.
type PaymentMemoryRepository struct {
	mu       sync.RWMutex
	payments []entities.Payment
}

var _ interfaces.IPaymentRepository = (*PaymentMemoryRepository)(nil)

func NewPaymentMemoryRepository() *PaymentMemoryRepository {
	return &PaymentMemoryRepository{}
}

func (r *PaymentMemoryRepository) Create(_ context.Context, p entities.Payment) (entities.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := make([]entities.Payment, 0, len(r.payments)+1)
	next = append(next, p)
	next = append(next, r.payments...)
	r.payments = next
	return p, nil
}

func (r *PaymentMemoryRepository) GetByID(_ context.Context, id string) (entities.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.payments {
		if p.ID == id {
			return p, nil
		}
	}
	return entities.Payment{}, nil
}

func (r *PaymentMemoryRepository) ListByOrderID(_ context.Context, orderID string) ([]entities.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entities.Payment, 0)
	for _, p := range r.payments {
		if p.OrderID == orderID {
			out = append(out, p)
		}
	}
	return out, nil
}
