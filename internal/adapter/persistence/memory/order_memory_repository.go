// Package memory provides in-memory repository implementations for tests and
// local runs without a DynamoDB endpoint (ORDERS_STORE=memory).
package memory

import (
	"context"
	"sync"

	"github.com/seha3/repair-orders/internal/domain/entities"
	"github.com/seha3/repair-orders/internal/usecase/interfaces"
)

// OrderMemoryRepository keeps the order collection in process memory,
// most recent first. All reads and writes copy, so callers never alias
// stored state.
type OrderMemoryRepository struct {
	mu     sync.RWMutex
	orders []entities.RepairOrder
	folio  int
}

var _ interfaces.IOrderRepository = (*OrderMemoryRepository)(nil)

func NewOrderMemoryRepository() *OrderMemoryRepository {
	return &OrderMemoryRepository{}
}

func (r *OrderMemoryRepository) LoadAll(_ context.Context) ([]entities.RepairOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entities.RepairOrder, len(r.orders))
	for i, o := range r.orders {
		out[i] = o.Clone()
	}
	return out, nil
}

func (r *OrderMemoryRepository) LoadByID(_ context.Context, id string) (entities.RepairOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, o := range r.orders {
		if o.ID == id {
			return o.Clone(), nil
		}
	}
	return entities.RepairOrder{}, nil
}

func (r *OrderMemoryRepository) SaveAll(_ context.Context, orders []entities.RepairOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := make([]entities.RepairOrder, len(orders))
	for i, o := range orders {
		next[i] = o.Clone()
	}
	r.orders = next
	return nil
}

func (r *OrderMemoryRepository) Upsert(_ context.Context, order entities.RepairOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, o := range r.orders {
		if o.ID == order.ID {
			r.orders[i] = order.Clone()
			return nil
		}
	}

	// New orders are prepended, keeping the collection most-recent-first.
	next := make([]entities.RepairOrder, 0, len(r.orders)+1)
	next = append(next, order.Clone())
	next = append(next, r.orders...)
	r.orders = next
	return nil
}

func (r *OrderMemoryRepository) NextFolio(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.folio++
	return r.folio, nil
}
