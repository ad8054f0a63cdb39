package response

import (
	"time"

	"github.com/seha3/repair-orders/internal/domain/entities"
)

type ComponentResponse struct {
	ID          string  `json:"id"`
	ServiceID   string  `json:"service_id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Estimated   float64 `json:"estimated"`
	Real        float64 `json:"real"`
}

type ServiceResponse struct {
	ID             string              `json:"id"`
	OrderID        string              `json:"order_id"`
	Name           string              `json:"name"`
	Description    string              `json:"description,omitempty"`
	LaborEstimated float64             `json:"labor_estimated"`
	LaborReal      float64             `json:"labor_real"`
	Components     []ComponentResponse `json:"components"`
}

type EventResponse struct {
	ID         string    `json:"id"`
	OrderID    string    `json:"order_id"`
	Type       string    `json:"type"`
	FromStatus string    `json:"from_status,omitempty"`
	ToStatus   string    `json:"to_status,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

type BusinessErrorResponse struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"order_id"`
	Code      string    `json:"code"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

type AuthorizationResponse struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"order_id"`
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
	Comment   string    `json:"comment,omitempty"`
}

type OrderResponse struct {
	ID                string                  `json:"id"`
	DisplayID         string                  `json:"display_id"`
	CustomerID        string                  `json:"customer_id"`
	VehicleID         string                  `json:"vehicle_id"`
	Status            string                  `json:"status"`
	Source            string                  `json:"source"`
	SubtotalEstimated float64                 `json:"subtotal_estimated"`
	AuthorizedAmount  float64                 `json:"authorized_amount"`
	RealTotal         float64                 `json:"real_total"`
	Services          []ServiceResponse       `json:"services"`
	Authorizations    []AuthorizationResponse `json:"authorizations"`
	Events            []EventResponse         `json:"events"`
	Errors            []BusinessErrorResponse `json:"errors"`
}

func FromRepairOrder(o entities.RepairOrder) OrderResponse {
	services := make([]ServiceResponse, 0, len(o.Services))
	for _, s := range o.Services {
		components := make([]ComponentResponse, 0, len(s.Components))
		for _, c := range s.Components {
			components = append(components, ComponentResponse{
				ID:          c.ID,
				ServiceID:   c.ServiceID,
				Name:        c.Name,
				Description: c.Description,
				Estimated:   c.Estimated,
				Real:        c.Real,
			})
		}
		services = append(services, ServiceResponse{
			ID:             s.ID,
			OrderID:        s.OrderID,
			Name:           s.Name,
			Description:    s.Description,
			LaborEstimated: s.LaborEstimated,
			LaborReal:      s.LaborReal,
			Components:     components,
		})
	}

	authorizations := make([]AuthorizationResponse, 0, len(o.Authorizations))
	for _, a := range o.Authorizations {
		authorizations = append(authorizations, AuthorizationResponse{
			ID:        a.ID,
			OrderID:   a.OrderID,
			Amount:    a.Amount,
			CreatedAt: a.CreatedAt,
			Comment:   a.Comment,
		})
	}

	events := make([]EventResponse, 0, len(o.Events))
	for _, e := range o.Events {
		events = append(events, EventResponse{
			ID:         e.ID,
			OrderID:    e.OrderID,
			Type:       string(e.Type),
			FromStatus: string(e.FromStatus),
			ToStatus:   string(e.ToStatus),
			Timestamp:  e.Timestamp,
		})
	}

	businessErrors := make([]BusinessErrorResponse, 0, len(o.Errors))
	for _, be := range o.Errors {
		businessErrors = append(businessErrors, BusinessErrorResponse{
			ID:        be.ID,
			OrderID:   be.OrderID,
			Code:      string(be.Code),
			Message:   be.Message,
			CreatedAt: be.CreatedAt,
		})
	}

	return OrderResponse{
		ID:                o.ID,
		DisplayID:         o.DisplayID,
		CustomerID:        o.CustomerID,
		VehicleID:         o.VehicleID,
		Status:            string(o.Status),
		Source:            string(o.Source),
		SubtotalEstimated: o.SubtotalEstimated,
		AuthorizedAmount:  o.AuthorizedAmount,
		RealTotal:         o.RealTotal,
		Services:          services,
		Authorizations:    authorizations,
		Events:            events,
		Errors:            businessErrors,
	}
}

func FromRepairOrders(orders []entities.RepairOrder) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, FromRepairOrder(o))
	}
	return out
}
