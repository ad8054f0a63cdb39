package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/seha3/repair-orders/internal/adapter/persistence/memory"
	"github.com/seha3/repair-orders/internal/domain/entities"
)

func newLineItemFixture() (*LineItemUseCase, *memory.OrderMemoryRepository) {
	repo := memory.NewOrderMemoryRepository()
	return NewLineItemUseCase(repo, &seqIDs{}), repo
}

func ptrString(s string) *string  { return &s }
func ptrFloat(f float64) *float64 { return &f }

func TestLineItemUseCase_AddService(t *testing.T) {
	t.Run("order not found", func(t *testing.T) {
		uc, _ := newLineItemFixture()
		_, err := uc.AddService(context.Background(), "missing", ServiceInput{Name: "Oil change"})
		if !errors.Is(err, ErrOrderNotFound) {
			t.Fatalf("expected ErrOrderNotFound, got %v", err)
		}
	})

	t.Run("prepends and recomputes estimates", func(t *testing.T) {
		uc, repo := newLineItemFixture()
		seedOrder(t, repo, entities.RepairOrder{
			ID:       "order-1",
			Status:   entities.StatusCreated,
			Services: []entities.Service{{ID: "svc-old", Name: "Brakes", LaborEstimated: 200}},
		})

		order, err := uc.AddService(context.Background(), "order-1", ServiceInput{Name: "  Oil change  ", LaborEstimated: 500})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(order.Services) != 2 || order.Services[0].Name != "Oil change" || order.Services[1].ID != "svc-old" {
			t.Fatalf("expected new service first: %+v", order.Services)
		}
		if order.Services[0].Components == nil {
			t.Fatal("components must initialize to an empty slice")
		}
		if order.SubtotalEstimated != 700 || order.AuthorizedAmount != 812 {
			t.Fatalf("unexpected totals: subtotal=%v authorized=%v", order.SubtotalEstimated, order.AuthorizedAmount)
		}
		if order.Events[0].Type != entities.EventServiceAdded {
			t.Fatalf("expected SERVICIO_AGREGADO event, got %s", order.Events[0].Type)
		}
	})

	t.Run("blank name falls back to the default", func(t *testing.T) {
		uc, repo := newLineItemFixture()
		seedOrder(t, repo, entities.RepairOrder{ID: "order-1", Status: entities.StatusDiagnosed})

		order, err := uc.AddService(context.Background(), "order-1", ServiceInput{Name: "   "})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if order.Services[0].Name != "Servicio" {
			t.Fatalf("expected default name, got %q", order.Services[0].Name)
		}
	})

	t.Run("rejected outside CREATED and DIAGNOSED without mutating", func(t *testing.T) {
		uc, repo := newLineItemFixture()
		seedOrder(t, repo, entities.RepairOrder{ID: "order-1", Status: entities.StatusAuthorized})

		_, err := uc.AddService(context.Background(), "order-1", ServiceInput{Name: "Oil change"})
		if !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}

		stored := storedOrder(t, repo, "order-1")
		if len(stored.Services) != 0 || len(stored.Errors) != 0 || len(stored.Events) != 0 {
			t.Fatalf("status-gate failure must not mutate: %+v", stored)
		}
	})

	t.Run("cancelled order records the attempt", func(t *testing.T) {
		uc, repo := newLineItemFixture()
		seedOrder(t, repo, entities.RepairOrder{ID: "order-1", Status: entities.StatusCancelled})

		_, err := uc.AddService(context.Background(), "order-1", ServiceInput{Name: "Oil change"})
		if !errors.Is(err, ErrOrderCancelled) {
			t.Fatalf("expected ErrOrderCancelled, got %v", err)
		}

		stored := storedOrder(t, repo, "order-1")
		if len(stored.Errors) != 1 || stored.Errors[0].Code != entities.ErrCodeOrderCancelled {
			t.Fatalf("expected persisted ORDER_CANCELLED error: %+v", stored.Errors)
		}
		if len(stored.Services) != 0 {
			t.Fatalf("no service may be added to a cancelled order: %+v", stored.Services)
		}
	})
}

func TestLineItemUseCase_UpdateService(t *testing.T) {
	uc, repo := newLineItemFixture()
	seedOrder(t, repo, entities.RepairOrder{
		ID:     "order-1",
		Status: entities.StatusDiagnosed,
		Services: []entities.Service{
			{ID: "svc-1", Name: "Brakes", Description: "front", LaborEstimated: 200},
		},
	})

	t.Run("service not found", func(t *testing.T) {
		_, err := uc.UpdateService(context.Background(), "order-1", "svc-missing", ServicePatch{})
		if !errors.Is(err, ErrServiceNotFound) {
			t.Fatalf("expected ErrServiceNotFound, got %v", err)
		}
	})

	t.Run("patches only the provided fields", func(t *testing.T) {
		order, err := uc.UpdateService(context.Background(), "order-1", "svc-1", ServicePatch{LaborEstimated: ptrFloat(350)})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		svc := order.Services[0]
		if svc.Name != "Brakes" || svc.Description != "front" || svc.LaborEstimated != 350 {
			t.Fatalf("unexpected service after patch: %+v", svc)
		}
		if order.SubtotalEstimated != 350 || order.AuthorizedAmount != 406 {
			t.Fatalf("unexpected totals: %+v", order)
		}
		if order.Events[0].Type != entities.EventServiceEdited {
			t.Fatalf("expected SERVICIO_EDITADO event, got %s", order.Events[0].Type)
		}
	})
}

func TestLineItemUseCase_DeleteService(t *testing.T) {
	uc, repo := newLineItemFixture()
	seedOrder(t, repo, entities.RepairOrder{
		ID:     "order-1",
		Status: entities.StatusCreated,
		Services: []entities.Service{
			{ID: "svc-1", LaborEstimated: 200},
			{ID: "svc-2", LaborEstimated: 300},
		},
	})

	order, err := uc.DeleteService(context.Background(), "order-1", "svc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(order.Services) != 1 || order.Services[0].ID != "svc-2" {
		t.Fatalf("expected only svc-2 to remain: %+v", order.Services)
	}
	if order.SubtotalEstimated != 300 {
		t.Fatalf("subtotal must drop to 300, got %v", order.SubtotalEstimated)
	}
	if order.Events[0].Type != entities.EventServiceDeleted {
		t.Fatalf("expected SERVICIO_ELIMINADO event, got %s", order.Events[0].Type)
	}

	if _, err := uc.DeleteService(context.Background(), "order-1", "svc-1"); !errors.Is(err, ErrServiceNotFound) {
		t.Fatalf("expected ErrServiceNotFound on second delete, got %v", err)
	}
}

func TestLineItemUseCase_Components(t *testing.T) {
	seedComponents := func(t *testing.T) (*LineItemUseCase, *memory.OrderMemoryRepository) {
		uc, repo := newLineItemFixture()
		seedOrder(t, repo, entities.RepairOrder{
			ID:     "order-1",
			Status: entities.StatusDiagnosed,
			Services: []entities.Service{
				{
					ID:             "svc-1",
					LaborEstimated: 500,
					Components:     []entities.Component{{ID: "cmp-1", ServiceID: "svc-1", Name: "Filter", Estimated: 250}},
				},
			},
		})
		return uc, repo
	}

	t.Run("add prepends within the service", func(t *testing.T) {
		uc, _ := seedComponents(t)

		order, err := uc.AddComponent(context.Background(), "order-1", "svc-1", ComponentInput{Name: "Oil", Estimated: 100})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		components := order.Services[0].Components
		if len(components) != 2 || components[0].Name != "Oil" || components[1].ID != "cmp-1" {
			t.Fatalf("expected new component first: %+v", components)
		}
		if components[0].ServiceID != "svc-1" {
			t.Fatalf("component must link to its service, got %q", components[0].ServiceID)
		}
		if order.SubtotalEstimated != 850 {
			t.Fatalf("subtotal must include components, got %v", order.SubtotalEstimated)
		}
		if order.Events[0].Type != entities.EventComponentAdded {
			t.Fatalf("expected COMPONENTE_AGREGADO event, got %s", order.Events[0].Type)
		}
	})

	t.Run("add into a missing service", func(t *testing.T) {
		uc, _ := seedComponents(t)
		_, err := uc.AddComponent(context.Background(), "order-1", "svc-missing", ComponentInput{Name: "Oil"})
		if !errors.Is(err, ErrServiceNotFound) {
			t.Fatalf("expected ErrServiceNotFound, got %v", err)
		}
	})

	t.Run("update patches the component", func(t *testing.T) {
		uc, _ := seedComponents(t)

		order, err := uc.UpdateComponent(context.Background(), "order-1", "svc-1", "cmp-1", ComponentPatch{
			Name:      ptrString(" Premium filter "),
			Estimated: ptrFloat(300),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		cmp := order.Services[0].Components[0]
		if cmp.Name != "Premium filter" || cmp.Estimated != 300 {
			t.Fatalf("unexpected component: %+v", cmp)
		}
		if order.SubtotalEstimated != 800 {
			t.Fatalf("expected subtotal 800, got %v", order.SubtotalEstimated)
		}
	})

	t.Run("update a missing component", func(t *testing.T) {
		uc, _ := seedComponents(t)
		_, err := uc.UpdateComponent(context.Background(), "order-1", "svc-1", "cmp-missing", ComponentPatch{})
		if !errors.Is(err, ErrComponentNotFound) {
			t.Fatalf("expected ErrComponentNotFound, got %v", err)
		}
	})

	t.Run("delete removes only the targeted component", func(t *testing.T) {
		uc, repo := seedComponents(t)

		order, err := uc.DeleteComponent(context.Background(), "order-1", "svc-1", "cmp-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(order.Services[0].Components) != 0 {
			t.Fatalf("expected no components, got %+v", order.Services[0].Components)
		}
		if order.SubtotalEstimated != 500 {
			t.Fatalf("expected subtotal 500, got %v", order.SubtotalEstimated)
		}

		stored := storedOrder(t, repo, "order-1")
		if len(stored.Services[0].Components) != 0 {
			t.Fatalf("delete not persisted: %+v", stored.Services[0].Components)
		}
	})
}
