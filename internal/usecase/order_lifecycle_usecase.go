package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/seha3/repair-orders/internal/domain/entities"
	"github.com/seha3/repair-orders/internal/usecase/interfaces"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrServiceNotFound   = errors.New("service not found")
	ErrComponentNotFound = errors.New("component not found")
	ErrOrderCancelled    = errors.New("order is cancelled")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNoServices        = errors.New("order has no services")
	ErrInvalidOrderID    = errors.New("invalid order id")
	ErrInvalidCustomerID = errors.New("invalid customer_id")
	ErrInvalidVehicleID  = errors.New("invalid vehicle_id")
	ErrInvalidSource     = errors.New("invalid source")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrInvalidAmount     = errors.New("invalid amount")
)

// CreateOrderParams carries the immutable intake data of a new order.
type CreateOrderParams struct {
	CustomerID string
	VehicleID  string
	Source     entities.OrderSource
}

// IOrderLifecycleUseCase drives the order status state machine and the
// authorization/reauthorization protocol.
//
// Every mutating operation persists the audit trail of its own rejection:
// attempts on cancelled orders and illegal transitions are recorded on the
// order before the operation fails.

type IOrderLifecycleUseCase interface {
	CreateOrder(ctx context.Context, params CreateOrderParams) (entities.RepairOrder, error)
	ListOrders(ctx context.Context) ([]entities.RepairOrder, error)
	ListOrdersForCustomer(ctx context.Context, customerID string) ([]entities.RepairOrder, error)
	GetOrder(ctx context.Context, orderID string) (entities.RepairOrder, error)
	Transition(ctx context.Context, orderID string, to entities.OrderStatus) (entities.RepairOrder, error)
	Authorize(ctx context.Context, orderID string) (entities.RepairOrder, error)
	RegisterReauthorization(ctx context.Context, orderID string, amount float64, comment string) (entities.RepairOrder, error)
	RecalcRealAndCheckOvercost(ctx context.Context, orderID string) (entities.RepairOrder, error)
}

type OrderLifecycleUseCase struct {
	repo interfaces.IOrderRepository
	ids  interfaces.IDGenerator
}

var _ IOrderLifecycleUseCase = (*OrderLifecycleUseCase)(nil)

func NewOrderLifecycleUseCase(repo interfaces.IOrderRepository, ids interfaces.IDGenerator) *OrderLifecycleUseCase {
	return &OrderLifecycleUseCase{repo: repo, ids: ids}
}

// CreateOrder opens a new order in CREATED with zeroed totals, a sequential
// folio and the creation event already on the trail.
func (u *OrderLifecycleUseCase) CreateOrder(ctx context.Context, params CreateOrderParams) (entities.RepairOrder, error) {
	customerID := strings.TrimSpace(params.CustomerID)
	if customerID == "" {
		return entities.RepairOrder{}, ErrInvalidCustomerID
	}
	vehicleID := strings.TrimSpace(params.VehicleID)
	if vehicleID == "" {
		return entities.RepairOrder{}, ErrInvalidVehicleID
	}
	if params.Source != entities.SourceTaller && params.Source != entities.SourceCliente {
		return entities.RepairOrder{}, ErrInvalidSource
	}

	// The folio comes from a durable counter, not from the collection
	// length, so deletions or interleaved creations can never reuse one.
	folio, err := u.repo.NextFolio(ctx)
	if err != nil {
		return entities.RepairOrder{}, err
	}

	order := entities.RepairOrder{
		ID:             u.ids.NewID("order"),
		DisplayID:      fmt.Sprintf("RO-%03d", folio),
		CustomerID:     customerID,
		VehicleID:      vehicleID,
		Status:         entities.StatusCreated,
		Authorizations: []entities.Authorization{},
		Services:       []entities.Service{},
		Events:         []entities.Event{},
		Errors:         []entities.BusinessError{},
		Source:         params.Source,
	}
	order = order.PushEvent(newEvent(u.ids, order.ID, entities.EventOrderCreated))

	if err := u.repo.Upsert(ctx, order); err != nil {
		return entities.RepairOrder{}, err
	}
	return order, nil
}

func (u *OrderLifecycleUseCase) ListOrders(ctx context.Context) ([]entities.RepairOrder, error) {
	return u.repo.LoadAll(ctx)
}

func (u *OrderLifecycleUseCase) ListOrdersForCustomer(ctx context.Context, customerID string) ([]entities.RepairOrder, error) {
	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		return nil, ErrInvalidCustomerID
	}

	orders, err := u.repo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]entities.RepairOrder, 0, len(orders))
	for _, o := range orders {
		if o.CustomerID == customerID {
			filtered = append(filtered, o)
		}
	}
	return filtered, nil
}

func (u *OrderLifecycleUseCase) GetOrder(ctx context.Context, orderID string) (entities.RepairOrder, error) {
	return loadOrder(ctx, u.repo, orderID)
}

// Transition performs a generic status change along the transition table.
func (u *OrderLifecycleUseCase) Transition(ctx context.Context, orderID string, to entities.OrderStatus) (entities.RepairOrder, error) {
	if !entities.IsValidStatus(to) {
		return entities.RepairOrder{}, ErrInvalidStatus
	}

	order, err := loadOrder(ctx, u.repo, orderID)
	if err != nil {
		return entities.RepairOrder{}, err
	}
	if err := rejectCancelled(ctx, u.repo, u.ids, order, "La orden está cancelada. No se puede modificar."); err != nil {
		return entities.RepairOrder{}, err
	}

	if !entities.CanTransition(order.Status, to) {
		next := order.PushError(newBusinessError(u.ids, order.ID, entities.ErrCodeInvalidTransition,
			fmt.Sprintf("Transición inválida: %s → %s", order.Status, to)))
		if err := u.repo.Upsert(ctx, next); err != nil {
			return entities.RepairOrder{}, err
		}
		return entities.RepairOrder{}, ErrInvalidTransition
	}

	from := order.Status
	order.Status = to
	order = order.PushEvent(newStatusEvent(u.ids, order.ID, entities.EventForStatus(to), from, to))

	if err := u.repo.Upsert(ctx, order); err != nil {
		return entities.RepairOrder{}, err
	}
	return order, nil
}

// Authorize is the only path from DIAGNOSED to AUTHORIZED. The monetary
// recompute runs before the status check, so an attempt from the wrong
// status still persists refreshed totals.
func (u *OrderLifecycleUseCase) Authorize(ctx context.Context, orderID string) (entities.RepairOrder, error) {
	order, err := loadOrder(ctx, u.repo, orderID)
	if err != nil {
		return entities.RepairOrder{}, err
	}
	if err := rejectCancelled(ctx, u.repo, u.ids, order, "La orden está cancelada. No se puede autorizar."); err != nil {
		return entities.RepairOrder{}, err
	}

	if len(order.Services) == 0 {
		next := order.PushError(newBusinessError(u.ids, order.ID, entities.ErrCodeNoServices,
			"No se puede autorizar sin servicios."))
		if err := u.repo.Upsert(ctx, next); err != nil {
			return entities.RepairOrder{}, err
		}
		return entities.RepairOrder{}, ErrNoServices
	}

	order = order.RecomputeEstimates()

	if order.Status != entities.StatusDiagnosed {
		next := order.PushError(newBusinessError(u.ids, order.ID, entities.ErrCodeInvalidTransition,
			"Solo se puede autorizar desde DIAGNOSED."))
		if err := u.repo.Upsert(ctx, next); err != nil {
			return entities.RepairOrder{}, err
		}
		return entities.RepairOrder{}, ErrInvalidTransition
	}

	order.Status = entities.StatusAuthorized
	order = order.PushEvent(newStatusEvent(u.ids, order.ID, entities.EventOrderAuthorized,
		entities.StatusDiagnosed, entities.StatusAuthorized))
	order = order.PrependAuthorization(entities.Authorization{
		ID:        u.ids.NewID("auth"),
		OrderID:   order.ID,
		Amount:    order.AuthorizedAmount,
		CreatedAt: nowUTC(),
		Comment:   "Autorización inicial",
	})

	if err := u.repo.Upsert(ctx, order); err != nil {
		return entities.RepairOrder{}, err
	}
	return order, nil
}

// RegisterReauthorization resolves an overcost hold in one step: it records
// the newly approved amount and moves the order from WAITING_FOR_APPROVAL
// back to AUTHORIZED.
func (u *OrderLifecycleUseCase) RegisterReauthorization(ctx context.Context, orderID string, amount float64, comment string) (entities.RepairOrder, error) {
	if numOrZero(amount) <= 0 {
		return entities.RepairOrder{}, ErrInvalidAmount
	}

	order, err := loadOrder(ctx, u.repo, orderID)
	if err != nil {
		return entities.RepairOrder{}, err
	}
	if err := rejectCancelled(ctx, u.repo, u.ids, order, "La orden está cancelada. No se puede reautorizar."); err != nil {
		return entities.RepairOrder{}, err
	}

	if order.Status != entities.StatusWaitingForApproval {
		next := order.PushError(newBusinessError(u.ids, order.ID, entities.ErrCodeInvalidTransition,
			"Solo se puede reautorizar desde WAITING_FOR_APPROVAL."))
		if err := u.repo.Upsert(ctx, next); err != nil {
			return entities.RepairOrder{}, err
		}
		return entities.RepairOrder{}, ErrInvalidTransition
	}

	order.AuthorizedAmount = amount
	order = order.PrependAuthorization(entities.Authorization{
		ID:        u.ids.NewID("auth"),
		OrderID:   order.ID,
		Amount:    amount,
		CreatedAt: nowUTC(),
		Comment:   strings.TrimSpace(comment),
	})

	order.Status = entities.StatusAuthorized
	order = order.PushEvent(newStatusEvent(u.ids, order.ID, entities.EventReauthorized,
		entities.StatusWaitingForApproval, entities.StatusAuthorized))

	if err := u.repo.Upsert(ctx, order); err != nil {
		return entities.RepairOrder{}, err
	}
	return order, nil
}

// RecalcRealAndCheckOvercost refreshes the real total and forces the order
// into WAITING_FOR_APPROVAL when it exceeds 110% of the authorized amount.
// The overcost condition is advisory: the operation still succeeds and the
// REQUIRES_REAUTH record documents it.
func (u *OrderLifecycleUseCase) RecalcRealAndCheckOvercost(ctx context.Context, orderID string) (entities.RepairOrder, error) {
	order, err := loadOrder(ctx, u.repo, orderID)
	if err != nil {
		return entities.RepairOrder{}, err
	}
	if err := rejectCancelled(ctx, u.repo, u.ids, order, "La orden está cancelada. No se puede modificar."); err != nil {
		return entities.RepairOrder{}, err
	}

	order = order.RecomputeReal()

	if order.AuthorizedAmount > 0 && order.RealTotal > entities.Limit110(order.AuthorizedAmount) {
		from := order.Status
		order.Status = entities.StatusWaitingForApproval
		order = order.PushError(newBusinessError(u.ids, order.ID, entities.ErrCodeRequiresReauth,
			"Se excedió el 110%. Requiere reautorización."))
		order = order.PushEvent(newStatusEvent(u.ids, order.ID, entities.EventReauthorized,
			from, entities.StatusWaitingForApproval))
	}

	if err := u.repo.Upsert(ctx, order); err != nil {
		return entities.RepairOrder{}, err
	}
	return order, nil
}
