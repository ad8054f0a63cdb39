package seed

import (
	"context"
	"log"
	"time"

	"github.com/seha3/repair-orders/internal/domain/entities"
	"github.com/seha3/repair-orders/internal/usecase/interfaces"
)

// Load populates the stores with the demo workshop dataset: two customers,
// their vehicles and four orders spread across the lifecycle. It only runs
// when the order store is empty so restarts never duplicate data.
func Load(ctx context.Context, orders interfaces.IOrderRepository, catalog interfaces.ICatalogRepository) error {
	existing, err := orders.LoadAll(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		log.Printf("[seed] store not empty, skipping (orders=%d)", len(existing))
		return nil
	}

	if err := catalog.SaveCustomers(ctx, demoCustomers()); err != nil {
		return err
	}
	if err := catalog.SaveVehicles(ctx, demoVehicles()); err != nil {
		return err
	}

	demo := demoOrders()
	for i := 0; i < len(demo); i++ {
		if _, err := orders.NextFolio(ctx); err != nil {
			return err
		}
	}
	if err := orders.SaveAll(ctx, demo); err != nil {
		return err
	}

	log.Printf("[seed] loaded demo dataset customers=%d vehicles=%d orders=%d", len(demoCustomers()), len(demoVehicles()), len(demo))
	return nil
}

func demoCustomers() []entities.Customer {
	return []entities.Customer{
		{ID: "c1", Name: "Juan Pérez", Phone: "555-1234", Email: "juan@example.com"},
		{ID: "c2", Name: "María García", Phone: "555-5678", Email: "maria@example.com"},
	}
}

func demoVehicles() []entities.Vehicle {
	return []entities.Vehicle{
		{ID: "v1", Plate: "ABC-123", Model: "Nissan Versa 2020", CustomerID: "c1"},
		{ID: "v2", Plate: "XYZ-789", Model: "Mazda 3 2022", CustomerID: "c2"},
	}
}

func demoOrders() []entities.RepairOrder {
	now := time.Now().UTC()

	created := entities.RepairOrder{
		ID:         "os1",
		DisplayID:  "RO-001",
		CustomerID: "c1",
		VehicleID:  "v1",
		Status:     entities.StatusCreated,
		Source:     entities.SourceTaller,
		Services:   []entities.Service{},
		Events: []entities.Event{
			{ID: "e1", OrderID: "os1", Type: entities.EventOrderCreated, Timestamp: now.Add(-72 * time.Hour)},
		},
		Authorizations: []entities.Authorization{},
		Errors:         []entities.BusinessError{},
	}

	diagnosed := entities.RepairOrder{
		ID:         "os2",
		DisplayID:  "RO-002",
		CustomerID: "c2",
		VehicleID:  "v2",
		Status:     entities.StatusDiagnosed,
		Source:     entities.SourceCliente,
		Services: []entities.Service{
			{
				ID:             "s1",
				OrderID:        "os2",
				Name:           "Cambio de aceite",
				Description:    "Aceite sintético y filtro",
				LaborEstimated: 500,
				Components: []entities.Component{
					{ID: "p1", ServiceID: "s1", Name: "Filtro de aceite", Estimated: 250},
				},
			},
		},
		Events: []entities.Event{
			{ID: "e3", OrderID: "os2", Type: entities.EventOrderDiagnosed, Timestamp: now.Add(-24 * time.Hour), FromStatus: entities.StatusCreated, ToStatus: entities.StatusDiagnosed},
			{ID: "e2", OrderID: "os2", Type: entities.EventOrderCreated, Timestamp: now.Add(-48 * time.Hour)},
		},
		Authorizations: []entities.Authorization{},
		Errors:         []entities.BusinessError{},
	}
	diagnosed = diagnosed.RecomputeEstimates()

	waiting := entities.RepairOrder{
		ID:               "os3",
		DisplayID:        "RO-003",
		CustomerID:       "c1",
		VehicleID:        "v1",
		Status:           entities.StatusWaitingForApproval,
		Source:           entities.SourceTaller,
		AuthorizedAmount: 870,
		Services: []entities.Service{
			{
				ID:             "s2",
				OrderID:        "os3",
				Name:           "Frenos delanteros",
				LaborEstimated: 500,
				LaborReal:      1100,
				Components: []entities.Component{
					{ID: "p2", ServiceID: "s2", Name: "Balatas", Estimated: 250, Real: 0},
				},
			},
		},
		Events: []entities.Event{
			{ID: "e6", OrderID: "os3", Type: entities.EventOvercostDetected, Timestamp: now.Add(-2 * time.Hour)},
			{ID: "e5", OrderID: "os3", Type: entities.EventOrderAuthorized, Timestamp: now.Add(-20 * time.Hour), FromStatus: entities.StatusDiagnosed, ToStatus: entities.StatusAuthorized},
			{ID: "e4", OrderID: "os3", Type: entities.EventOrderCreated, Timestamp: now.Add(-36 * time.Hour)},
		},
		Authorizations: []entities.Authorization{
			{ID: "a1", OrderID: "os3", Amount: 870, CreatedAt: now.Add(-20 * time.Hour), Comment: "Autorización inicial"},
		},
		Errors: []entities.BusinessError{
			{ID: "be1", OrderID: "os3", Code: entities.ErrCodeRequiresReauth, Message: "Se excedió el 110%. Requiere reautorización.", CreatedAt: now.Add(-2 * time.Hour)},
		},
	}
	waiting = waiting.RecomputeEstimates().RecomputeReal()

	cancelled := entities.RepairOrder{
		ID:         "os4",
		DisplayID:  "RO-004",
		CustomerID: "c2",
		VehicleID:  "v2",
		Status:     entities.StatusCancelled,
		Source:     entities.SourceCliente,
		Services:   []entities.Service{},
		Events: []entities.Event{
			{ID: "e8", OrderID: "os4", Type: entities.EventOrderCancelled, Timestamp: now.Add(-90 * time.Hour), FromStatus: entities.StatusCreated, ToStatus: entities.StatusCancelled},
			{ID: "e7", OrderID: "os4", Type: entities.EventOrderCreated, Timestamp: now.Add(-96 * time.Hour)},
		},
		Authorizations: []entities.Authorization{},
		Errors:         []entities.BusinessError{},
	}

	// SaveAll keeps order; newest first mirrors how the UI lists them.
	return []entities.RepairOrder{cancelled, waiting, diagnosed, created}
}
