package usecase

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/seha3/repair-orders/internal/adapter/persistence/memory"
	"github.com/seha3/repair-orders/internal/domain/entities"
)

func newRealCostFixture() (*RealCostUseCase, *memory.OrderMemoryRepository) {
	repo := memory.NewOrderMemoryRepository()
	return NewRealCostUseCase(repo, &seqIDs{}), repo
}

// inProgressOrder mirrors the canonical quote: 500 labor + 250 part,
// authorized at 870 with a 957 overcost ceiling.
func inProgressOrder() entities.RepairOrder {
	return entities.RepairOrder{
		ID:                "order-1",
		Status:            entities.StatusInProgress,
		SubtotalEstimated: 750,
		AuthorizedAmount:  870,
		Services: []entities.Service{
			{
				ID:             "svc-oil",
				OrderID:        "order-1",
				LaborEstimated: 500,
				Components:     []entities.Component{{ID: "cmp-filter", ServiceID: "svc-oil", Estimated: 250}},
			},
		},
	}
}

func TestRealCostUseCase_UpdateLaborReal(t *testing.T) {
	t.Run("requires IN_PROGRESS without mutating", func(t *testing.T) {
		uc, repo := newRealCostFixture()
		order := inProgressOrder()
		order.Status = entities.StatusAuthorized
		seedOrder(t, repo, order)

		_, err := uc.UpdateLaborReal(context.Background(), "order-1", "svc-oil", 900)
		if !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}

		stored := storedOrder(t, repo, "order-1")
		if stored.RealTotal != 0 || len(stored.Events) != 0 || len(stored.Errors) != 0 {
			t.Fatalf("status-gate failure must not mutate: %+v", stored)
		}
	})

	t.Run("cancelled order records the attempt", func(t *testing.T) {
		uc, repo := newRealCostFixture()
		order := inProgressOrder()
		order.Status = entities.StatusCancelled
		seedOrder(t, repo, order)

		_, err := uc.UpdateLaborReal(context.Background(), "order-1", "svc-oil", 900)
		if !errors.Is(err, ErrOrderCancelled) {
			t.Fatalf("expected ErrOrderCancelled, got %v", err)
		}

		stored := storedOrder(t, repo, "order-1")
		if len(stored.Errors) != 1 || stored.Errors[0].Code != entities.ErrCodeOrderCancelled {
			t.Fatalf("expected persisted ORDER_CANCELLED error: %+v", stored.Errors)
		}
	})

	t.Run("service not found", func(t *testing.T) {
		uc, repo := newRealCostFixture()
		seedOrder(t, repo, inProgressOrder())

		_, err := uc.UpdateLaborReal(context.Background(), "order-1", "svc-missing", 900)
		if !errors.Is(err, ErrServiceNotFound) {
			t.Fatalf("expected ErrServiceNotFound, got %v", err)
		}
	})
}

func TestRealCostUseCase_OvercostCheck(t *testing.T) {
	t.Run("under the ceiling stays IN_PROGRESS", func(t *testing.T) {
		uc, repo := newRealCostFixture()
		seedOrder(t, repo, inProgressOrder())

		order, err := uc.UpdateLaborReal(context.Background(), "order-1", "svc-oil", 900)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// 900 labor + 0 part real = 900 <= 957
		if order.RealTotal != 900 {
			t.Fatalf("expected real total 900, got %v", order.RealTotal)
		}
		if order.Status != entities.StatusInProgress {
			t.Fatalf("expected IN_PROGRESS, got %s", order.Status)
		}
		if order.Events[0].Type != entities.EventRealCostUpdated {
			t.Fatalf("expected COSTO_REAL_ACTUALIZADO event, got %s", order.Events[0].Type)
		}
	})

	t.Run("over the ceiling forces WAITING_FOR_APPROVAL", func(t *testing.T) {
		uc, repo := newRealCostFixture()
		seedOrder(t, repo, inProgressOrder())

		// 1100 > ceiling110(870) = 957
		order, err := uc.UpdateLaborReal(context.Background(), "order-1", "svc-oil", 1100)
		if err != nil {
			t.Fatalf("excess is recorded, not rejected: %v", err)
		}
		if order.RealTotal != 1100 {
			t.Fatalf("expected real total 1100, got %v", order.RealTotal)
		}
		if order.Status != entities.StatusWaitingForApproval {
			t.Fatalf("expected WAITING_FOR_APPROVAL, got %s", order.Status)
		}
		if order.Events[0].Type != entities.EventOvercostDetected {
			t.Fatalf("expected EXCESO_COSTO_DETECTADO event, got %s", order.Events[0].Type)
		}

		stored := storedOrder(t, repo, "order-1")
		if stored.Status != entities.StatusWaitingForApproval {
			t.Fatalf("hold not persisted: %s", stored.Status)
		}
	})

	t.Run("component capture sums into the real total", func(t *testing.T) {
		uc, repo := newRealCostFixture()
		order := inProgressOrder()
		order.Services[0].LaborReal = 600
		seedOrder(t, repo, order)

		updated, err := uc.UpdateComponentReal(context.Background(), "order-1", "svc-oil", "cmp-filter", 260)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated.RealTotal != 860 {
			t.Fatalf("expected real total 860, got %v", updated.RealTotal)
		}
		if updated.Services[0].Components[0].Real != 260 {
			t.Fatalf("component real not captured: %+v", updated.Services[0].Components[0])
		}
		if updated.Status != entities.StatusInProgress {
			t.Fatalf("expected IN_PROGRESS, got %s", updated.Status)
		}
	})

	t.Run("component not found", func(t *testing.T) {
		uc, repo := newRealCostFixture()
		seedOrder(t, repo, inProgressOrder())

		_, err := uc.UpdateComponentReal(context.Background(), "order-1", "svc-oil", "cmp-missing", 260)
		if !errors.Is(err, ErrComponentNotFound) {
			t.Fatalf("expected ErrComponentNotFound, got %v", err)
		}
	})

	t.Run("non-finite capture coerces to zero", func(t *testing.T) {
		uc, repo := newRealCostFixture()
		order := inProgressOrder()
		order.Services[0].LaborReal = 400
		seedOrder(t, repo, order)

		updated, err := uc.UpdateLaborReal(context.Background(), "order-1", "svc-oil", math.NaN())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated.Services[0].LaborReal != 0 || updated.RealTotal != 0 {
			t.Fatalf("NaN must coerce to 0: %+v", updated)
		}
	})
}
