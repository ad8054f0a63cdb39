package usecase

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/seha3/repair-orders/internal/domain/entities"
	"github.com/seha3/repair-orders/internal/usecase/interfaces"
)

// Helpers shared by the lifecycle, line-item and real-cost use cases.
// Every mutating operation follows the same read-modify-write pass: load a
// copy, reject cancelled orders, apply the change, persist through Upsert.

func nowUTC() time.Time {
	return time.Now().UTC()
}

// numOrZero coerces non-finite numeric input to 0, mirroring the lenient
// handling of malformed amounts at the capture boundary.
func numOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func loadOrder(ctx context.Context, repo interfaces.IOrderRepository, orderID string) (entities.RepairOrder, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return entities.RepairOrder{}, ErrInvalidOrderID
	}

	order, err := repo.LoadByID(ctx, orderID)
	if err != nil {
		return entities.RepairOrder{}, err
	}
	if order.ID == "" {
		return entities.RepairOrder{}, ErrOrderNotFound
	}
	return order, nil
}

func newEvent(ids interfaces.IDGenerator, orderID string, t entities.EventType) entities.Event {
	return entities.Event{
		ID:        ids.NewID("evt"),
		OrderID:   orderID,
		Type:      t,
		Timestamp: nowUTC(),
	}
}

func newStatusEvent(ids interfaces.IDGenerator, orderID string, t entities.EventType, from, to entities.OrderStatus) entities.Event {
	e := newEvent(ids, orderID, t)
	e.FromStatus = from
	e.ToStatus = to
	return e
}

func newBusinessError(ids interfaces.IDGenerator, orderID string, code entities.ErrorCode, message string) entities.BusinessError {
	return entities.BusinessError{
		ID:        ids.NewID("err"),
		OrderID:   orderID,
		Code:      code,
		Message:   message,
		CreatedAt: nowUTC(),
	}
}

// rejectCancelled enforces the terminal sink: when the order is cancelled the
// attempt is recorded on the audit log and the operation fails. The error
// append is the only mutation permitted on a cancelled order.
func rejectCancelled(ctx context.Context, repo interfaces.IOrderRepository, ids interfaces.IDGenerator, order entities.RepairOrder, message string) error {
	if order.Status != entities.StatusCancelled {
		return nil
	}
	next := order.PushError(newBusinessError(ids, order.ID, entities.ErrCodeOrderCancelled, message))
	if err := repo.Upsert(ctx, next); err != nil {
		return err
	}
	return ErrOrderCancelled
}
