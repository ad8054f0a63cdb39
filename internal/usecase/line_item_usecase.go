package usecase

import (
	"context"
	"strings"

	"github.com/seha3/repair-orders/internal/domain/entities"
	"github.com/seha3/repair-orders/internal/usecase/interfaces"
)

const (
	defaultServiceName   = "Servicio"
	defaultComponentName = "Componente"
)

// ServiceInput carries the fields of a new service.
type ServiceInput struct {
	Name           string
	Description    string
	LaborEstimated float64
}

// ServicePatch is a partial update; nil fields retain their prior value.
type ServicePatch struct {
	Name           *string
	Description    *string
	LaborEstimated *float64
}

// ComponentInput carries the fields of a new component.
type ComponentInput struct {
	Name        string
	Description string
	Estimated   float64
}

// ComponentPatch is a partial update; nil fields retain their prior value.
type ComponentPatch struct {
	Name      *string
	Estimated *float64
}

// ILineItemUseCase edits an order's services and components while the order
// is still quotable (CREATED or DIAGNOSED). Every structural change
// recomputes the estimated totals and appends a descriptive event before
// persisting the whole order.

type ILineItemUseCase interface {
	AddService(ctx context.Context, orderID string, input ServiceInput) (entities.RepairOrder, error)
	UpdateService(ctx context.Context, orderID, serviceID string, patch ServicePatch) (entities.RepairOrder, error)
	DeleteService(ctx context.Context, orderID, serviceID string) (entities.RepairOrder, error)
	AddComponent(ctx context.Context, orderID, serviceID string, input ComponentInput) (entities.RepairOrder, error)
	UpdateComponent(ctx context.Context, orderID, serviceID, componentID string, patch ComponentPatch) (entities.RepairOrder, error)
	DeleteComponent(ctx context.Context, orderID, serviceID, componentID string) (entities.RepairOrder, error)
}

type LineItemUseCase struct {
	repo interfaces.IOrderRepository
	ids  interfaces.IDGenerator
}

var _ ILineItemUseCase = (*LineItemUseCase)(nil)

func NewLineItemUseCase(repo interfaces.IOrderRepository, ids interfaces.IDGenerator) *LineItemUseCase {
	return &LineItemUseCase{repo: repo, ids: ids}
}

func canEditLineItems(order entities.RepairOrder) bool {
	return order.Status == entities.StatusCreated || order.Status == entities.StatusDiagnosed
}

// loadEditable repeats the guard sequence shared by every editor operation:
// resolve the order, reject the cancelled sink (persisting the audit error),
// then require an editable status. Status-gate failures do not mutate.
func (u *LineItemUseCase) loadEditable(ctx context.Context, orderID string) (entities.RepairOrder, error) {
	order, err := loadOrder(ctx, u.repo, orderID)
	if err != nil {
		return entities.RepairOrder{}, err
	}
	if err := rejectCancelled(ctx, u.repo, u.ids, order, "La orden está cancelada. No se puede modificar."); err != nil {
		return entities.RepairOrder{}, err
	}
	if !canEditLineItems(order) {
		return entities.RepairOrder{}, ErrInvalidTransition
	}
	return order, nil
}

func (u *LineItemUseCase) save(ctx context.Context, order entities.RepairOrder, evt entities.EventType) (entities.RepairOrder, error) {
	order = order.RecomputeEstimates()
	order = order.PushEvent(newEvent(u.ids, order.ID, evt))
	if err := u.repo.Upsert(ctx, order); err != nil {
		return entities.RepairOrder{}, err
	}
	return order, nil
}

func (u *LineItemUseCase) AddService(ctx context.Context, orderID string, input ServiceInput) (entities.RepairOrder, error) {
	order, err := u.loadEditable(ctx, orderID)
	if err != nil {
		return entities.RepairOrder{}, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = defaultServiceName
	}

	service := entities.Service{
		ID:             u.ids.NewID("svc"),
		OrderID:        order.ID,
		Name:           name,
		Description:    strings.TrimSpace(input.Description),
		LaborEstimated: numOrZero(input.LaborEstimated),
		LaborReal:      0,
		Components:     []entities.Component{},
	}

	return u.save(ctx, order.PrependService(service), entities.EventServiceAdded)
}

func (u *LineItemUseCase) UpdateService(ctx context.Context, orderID, serviceID string, patch ServicePatch) (entities.RepairOrder, error) {
	order, err := u.loadEditable(ctx, orderID)
	if err != nil {
		return entities.RepairOrder{}, err
	}

	idx := order.FindService(serviceID)
	if idx < 0 {
		return entities.RepairOrder{}, ErrServiceNotFound
	}

	services := make([]entities.Service, len(order.Services))
	copy(services, order.Services)

	if patch.Name != nil {
		services[idx].Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Description != nil {
		services[idx].Description = strings.TrimSpace(*patch.Description)
	}
	if patch.LaborEstimated != nil {
		services[idx].LaborEstimated = numOrZero(*patch.LaborEstimated)
	}

	return u.save(ctx, order.WithServices(services), entities.EventServiceEdited)
}

func (u *LineItemUseCase) DeleteService(ctx context.Context, orderID, serviceID string) (entities.RepairOrder, error) {
	order, err := u.loadEditable(ctx, orderID)
	if err != nil {
		return entities.RepairOrder{}, err
	}

	idx := order.FindService(serviceID)
	if idx < 0 {
		return entities.RepairOrder{}, ErrServiceNotFound
	}

	services := make([]entities.Service, 0, len(order.Services)-1)
	services = append(services, order.Services[:idx]...)
	services = append(services, order.Services[idx+1:]...)

	return u.save(ctx, order.WithServices(services), entities.EventServiceDeleted)
}

func (u *LineItemUseCase) AddComponent(ctx context.Context, orderID, serviceID string, input ComponentInput) (entities.RepairOrder, error) {
	order, err := u.loadEditable(ctx, orderID)
	if err != nil {
		return entities.RepairOrder{}, err
	}

	idx := order.FindService(serviceID)
	if idx < 0 {
		return entities.RepairOrder{}, ErrServiceNotFound
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = defaultComponentName
	}

	component := entities.Component{
		ID:          u.ids.NewID("cmp"),
		ServiceID:   order.Services[idx].ID,
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		Estimated:   numOrZero(input.Estimated),
		Real:        0,
	}

	services := make([]entities.Service, len(order.Services))
	copy(services, order.Services)

	components := make([]entities.Component, 0, len(services[idx].Components)+1)
	components = append(components, component)
	components = append(components, services[idx].Components...)
	services[idx].Components = components

	return u.save(ctx, order.WithServices(services), entities.EventComponentAdded)
}

func (u *LineItemUseCase) UpdateComponent(ctx context.Context, orderID, serviceID, componentID string, patch ComponentPatch) (entities.RepairOrder, error) {
	order, err := u.loadEditable(ctx, orderID)
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
	services[sIdx].Components = components

	if patch.Name != nil {
		components[cIdx].Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Estimated != nil {
		components[cIdx].Estimated = numOrZero(*patch.Estimated)
	}

	return u.save(ctx, order.WithServices(services), entities.EventComponentEdited)
}

func (u *LineItemUseCase) DeleteComponent(ctx context.Context, orderID, serviceID, componentID string) (entities.RepairOrder, error) {
	order, err := u.loadEditable(ctx, orderID)
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

	components := make([]entities.Component, 0, len(services[sIdx].Components)-1)
	components = append(components, services[sIdx].Components[:cIdx]...)
	components = append(components, services[sIdx].Components[cIdx+1:]...)
	services[sIdx].Components = components

	return u.save(ctx, order.WithServices(services), entities.EventComponentDeleted)
}
