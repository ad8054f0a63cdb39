package usecase

import (
	"context"

	"github.com/seha3/repair-orders/internal/domain/entities"
	"github.com/seha3/repair-orders/internal/usecase/interfaces"
)

// IRealCostUseCase captures real labor/part costs while the repair runs
// (IN_PROGRESS only). Every capture recomputes the real total and checks it
// against 110% of the authorized amount: exceeding the ceiling forces the
// order into WAITING_FOR_APPROVAL with an EXCESO_COSTO_DETECTADO event.

type IRealCostUseCase interface {
	UpdateLaborReal(ctx context.Context, orderID, serviceID string, value float64) (entities.RepairOrder, error)
	UpdateComponentReal(ctx context.Context, orderID, serviceID, componentID string, value float64) (entities.RepairOrder, error)
}

type RealCostUseCase struct {
	repo interfaces.IOrderRepository
	ids  interfaces.IDGenerator
}

var _ IRealCostUseCase = (*RealCostUseCase)(nil)

func NewRealCostUseCase(repo interfaces.IOrderRepository, ids interfaces.IDGenerator) *RealCostUseCase {
	return &RealCostUseCase{repo: repo, ids: ids}
}

func (u *RealCostUseCase) loadInProgress(ctx context.Context, orderID string) (entities.RepairOrder, error) {
	order, err := loadOrder(ctx, u.repo, orderID)
	if err != nil {
		return entities.RepairOrder{}, err
	}
	if err := rejectCancelled(ctx, u.repo, u.ids, order, "La orden está cancelada. No se puede modificar."); err != nil {
		return entities.RepairOrder{}, err
	}
	if order.Status != entities.StatusInProgress {
		return entities.RepairOrder{}, ErrInvalidTransition
	}
	return order, nil
}

// saveWithOvercostCheck persists the capture, flipping the order into
// WAITING_FOR_APPROVAL when the fresh real total exceeds the 110% ceiling.
func (u *RealCostUseCase) saveWithOvercostCheck(ctx context.Context, order entities.RepairOrder) (entities.RepairOrder, error) {
	order = order.RecomputeReal()

	if order.RealTotal > entities.Limit110(order.AuthorizedAmount) {
		order.Status = entities.StatusWaitingForApproval
		order = order.PushEvent(newEvent(u.ids, order.ID, entities.EventOvercostDetected))
	} else {
		order = order.PushEvent(newEvent(u.ids, order.ID, entities.EventRealCostUpdated))
	}

	if err := u.repo.Upsert(ctx, order); err != nil {
		return entities.RepairOrder{}, err
	}
	return order, nil
}

func (u *RealCostUseCase) UpdateLaborReal(ctx context.Context, orderID, serviceID string, value float64) (entities.RepairOrder, error) {
	order, err := u.loadInProgress(ctx, orderID)
	if err != nil {
		return entities.RepairOrder{}, err
	}

	idx := order.FindService(serviceID)
	if idx < 0 {
		return entities.RepairOrder{}, ErrServiceNotFound
	}

	services := make([]entities.Service, len(order.Services))
	copy(services, order.Services)
	services[idx].LaborReal = numOrZero(value)

	return u.saveWithOvercostCheck(ctx, order.WithServices(services))
}

func (u *RealCostUseCase) UpdateComponentReal(ctx context.Context, orderID, serviceID, componentID string, value float64) (entities.RepairOrder, error) {
	order, err := u.loadInProgress(ctx, orderID)
	if err != nil {
		return entities.RepairOrder{}, err
	}

	sIdx := order.FindService(serviceID)
	if sIdx < 0 {
		return entities.RepairOrder{}, ErrServiceNotFound
	}
	cIdx := order.Services[sIdx].FindComponent(componentID)
	if cIdx < 0 {
		return entities.RepairOrder{}, ErrComponentNotFound
	}

	services := make([]entities.Service, len(order.Services))
	copy(services, order.Services)
	components := make([]entities.Component, len(services[sIdx].Components))
	copy(components, services[sIdx].Components)
	components[cIdx].Real = numOrZero(value)
	services[sIdx].Components = components

	return u.saveWithOvercostCheck(ctx, order.WithServices(services))
}
