package memory

import (
	"context"
	"testing"

	"github.com/seha3/repair-orders/internal/domain/entities"
)

func TestOrderMemoryRepository_NextFolio(t *testing.T) {
	repo := NewOrderMemoryRepository()

	for want := 1; want <= 3; want++ {
		got, err := repo.NextFolio(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != want {
			t.Fatalf("expected folio %d, got %d", want, got)
		}
	}
}

func TestOrderMemoryRepository_Upsert(t *testing.T) {
	repo := NewOrderMemoryRepository()
	ctx := context.Background()

	if err := repo.Upsert(ctx, entities.RepairOrder{ID: "a", Status: entities.StatusCreated}); err != nil {
		t.Fatal(err)
	}
	if err := repo.Upsert(ctx, entities.RepairOrder{ID: "b", Status: entities.StatusCreated}); err != nil {
		t.Fatal(err)
	}

	all, err := repo.LoadAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 || all[0].ID != "b" {
		t.Fatalf("expected newest first, got %+v", all)
	}

	// Replaces in place, no duplication.
	if err := repo.Upsert(ctx, entities.RepairOrder{ID: "a", Status: entities.StatusDiagnosed}); err != nil {
		t.Fatal(err)
	}
	all, err = repo.LoadAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(all))
	}
	got, err := repo.LoadByID(ctx, "a")
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != entities.StatusDiagnosed {
		t.Fatalf("expected replaced order, got %+v", got)
	}
}

func TestOrderMemoryRepository_LoadByIDMissing(t *testing.T) {
	repo := NewOrderMemoryRepository()

	got, err := repo.LoadByID(context.Background(), "missing")
	if err != nil {
		t.Fatalf("missing id must not error: %v", err)
	}
	if got.ID != "" {
		t.Fatalf("expected zero-value order, got %+v", got)
	}
}

func TestOrderMemoryRepository_ReturnsCopies(t *testing.T) {
	repo := NewOrderMemoryRepository()
	ctx := context.Background()

	seed := entities.RepairOrder{
		ID:       "a",
		Status:   entities.StatusCreated,
		Services: []entities.Service{{ID: "svc-1", Name: "Frenos", LaborEstimated: 200}},
	}
	if err := repo.Upsert(ctx, seed); err != nil {
		t.Fatal(err)
	}

	loaded, err := repo.LoadByID(ctx, "a")
	if err != nil {
		t.Fatal(err)
	}
	loaded.Services[0].Name = "mutated"
	loaded.Status = entities.StatusCancelled

	reloaded, err := repo.LoadByID(ctx, "a")
	if err != nil {
		t.Fatal(err)
	}
	if reloaded.Services[0].Name != "Frenos" || reloaded.Status != entities.StatusCreated {
		t.Fatalf("stored state leaked a mutation: %+v", reloaded)
	}
}
