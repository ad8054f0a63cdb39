package interfaces

import (
	"context"

	"github.com/seha3/repair-orders/internal/domain/entities"
)

// ICatalogRepository abstracts persistence for customer/vehicle reference
// data. The catalog is written only by the demo seed; the core reads it.

type ICatalogRepository interface {
	ListCustomers(ctx context.Context) ([]entities.Customer, error)
	ListVehicles(ctx context.Context) ([]entities.Vehicle, error)
	SaveCustomers(ctx context.Context, customers []entities.Customer) error
	SaveVehicles(ctx context.Context, vehicles []entities.Vehicle) error
}
