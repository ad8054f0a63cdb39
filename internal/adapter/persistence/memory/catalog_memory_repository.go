package memory

import (
	"context"
	"sync"

	"github.com/seha3/repair-orders/internal/domain/entities"
	"github.com/seha3/repair-orders/internal/usecase/interfaces"
)

// CatalogMemoryRepository keeps the customer/vehicle catalog in memory.
type CatalogMemoryRepository struct {
	mu        sync.RWMutex
	customers []entities.Customer
	vehicles  []entities.Vehicle
}

var _ interfaces.ICatalogRepository = (*CatalogMemoryRepository)(nil)

func NewCatalogMemoryRepository() *CatalogMemoryRepository {
	return &CatalogMemoryRepository{}
}

func (r *CatalogMemoryRepository) ListCustomers(_ context.Context) ([]entities.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entities.Customer, len(r.customers))
	copy(out, r.customers)
	return out, nil
}

func (r *CatalogMemoryRepository) ListVehicles(_ context.Context) ([]entities.Vehicle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entities.Vehicle, len(r.vehicles))
	copy(out, r.vehicles)
	return out, nil
}

func (r *CatalogMemoryRepository) SaveCustomers(_ context.Context, customers []entities.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.customers = make([]entities.Customer, len(customers))
	copy(r.customers, customers)
	return nil
}

func (r *CatalogMemoryRepository) SaveVehicles(_ context.Context, vehicles []entities.Vehicle) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.vehicles = make([]entities.Vehicle, len(vehicles))
	copy(r.vehicles, vehicles)
	return nil
}
