package interfaces

import (
	"context"

	"github.com/seha3/repair-orders/internal/domain/entities"
)

// IOrderRepository abstracts persistence for the repair-order collection.
//
// Contract:
//   - LoadAll returns the full collection, most recent first; an empty store
//     yields an empty slice, never an error.
//   - LoadByID returns a zero-value order (ID == "") when the id does not
//     resolve.
//   - SaveAll replaces the whole collection (last write wins).
//   - Upsert replaces by id when present, else prepends.
//   - NextFolio advances a durable monotonic sequence used for display ids;
//     folios are assigned once and never reused, even across deletions.
//
// Implementations must return copies: a caller mutating a loaded order must
// not affect stored state until it is saved back.

type IOrderRepository interface {
	LoadAll(ctx context.Context) ([]entities.RepairOrder, error)
	LoadByID(ctx context.Context, id string) (entities.RepairOrder, error)
	SaveAll(ctx context.Context, orders []entities.RepairOrder) error
	Upsert(ctx context.Context, order entities.RepairOrder) error
	NextFolio(ctx context.Context) (int, error)
}
