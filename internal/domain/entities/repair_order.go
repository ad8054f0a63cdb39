package entities

import "time"

// OrderStatus is the lifecycle state of a repair order (ordem de serviço).
//
// Domain notes:
//   - Transitions are restricted to the edges in AllowedTransitions (transitions.go).
//   - CANCELLED is terminal: no further domain mutation is permitted, except
//     appending the audit error that records the rejected attempt.

type OrderStatus string

const (
	StatusCreated            OrderStatus = "CREATED"
	StatusDiagnosed          OrderStatus = "DIAGNOSED"
	StatusAuthorized         OrderStatus = "AUTHORIZED"
	StatusInProgress         OrderStatus = "IN_PROGRESS"
	StatusWaitingForApproval OrderStatus = "WAITING_FOR_APPROVAL"
	StatusCompleted          OrderStatus = "COMPLETED"
	StatusDelivered          OrderStatus = "DELIVERED"
	StatusCancelled          OrderStatus = "CANCELLED"
)

// OrderSource records who opened the order.

type OrderSource string

const (
	SourceTaller  OrderSource = "TALLER"
	SourceCliente OrderSource = "CLIENTE"
)

// EventType enumerates the domain events appended to an order's audit trail.

type EventType string

const (
	EventOrderCreated       EventType = "ORDEN_CREADA"
	EventOrderDiagnosed     EventType = "ORDEN_DIAGNOSTICADA"
	EventOrderAuthorized    EventType = "ORDEN_AUTORIZADA"
	EventReauthorized       EventType = "REAUTORIZADA"
	EventRepairStarted      EventType = "REPARACION_INICIADA"
	EventRepairCompleted    EventType = "REPARACION_COMPLETADA"
	EventOrderDelivered     EventType = "ORDEN_ENTREGADA"
	EventOrderCancelled     EventType = "ORDEN_CANCELADA"
	EventClientRejected     EventType = "CLIENTE_RECHAZO"
	EventClientAskedChanges EventType = "CLIENTE_SOLICITO_CAMBIOS"
	EventServiceAdded       EventType = "SERVICIO_AGREGADO"
	EventServiceEdited      EventType = "SERVICIO_EDITADO"
	EventServiceDeleted     EventType = "SERVICIO_ELIMINADO"
	EventComponentAdded     EventType = "COMPONENTE_AGREGADO"
	EventComponentEdited    EventType = "COMPONENTE_EDITADO"
	EventComponentDeleted   EventType = "COMPONENTE_ELIMINADO"
	EventOvercostDetected   EventType = "EXCESO_COSTO_DETECTADO"
	EventRealCostUpdated    EventType = "COSTO_REAL_ACTUALIZADO"
	EventPaymentRegistered  EventType = "PAGO_REGISTRADO"
)

// ErrorCode enumerates the recorded business-error conditions.

type ErrorCode string

const (
	ErrCodeNoServices          ErrorCode = "NO_SERVICES"
	ErrCodeRequiresReauth      ErrorCode = "REQUIRES_REAUTH"
	ErrCodeNotAllowedAfterAuth ErrorCode = "NOT_ALLOWED_AFTER_AUTHORIZATION"
	ErrCodeOrderCancelled      ErrorCode = "ORDER_CANCELLED"
	ErrCodeInvalidTransition   ErrorCode = "INVALID_STATUS_TRANSITION"
)

// Event is an immutable audit record of a domain occurrence.
// FromStatus/ToStatus are set only for status-changing events.
type Event struct {
	ID         string      `json:"id"`
	OrderID    string      `json:"order_id"`
	Type       EventType   `json:"type"`
	FromStatus OrderStatus `json:"from_status,omitempty"`
	ToStatus   OrderStatus `json:"to_status,omitempty"`
	Timestamp  time.Time   `json:"timestamp"`
}

// BusinessError is an immutable audit record of a rejected or advisory
// condition. An order keeps at most the 10 most recent entries.
type BusinessError struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"order_id"`
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Authorization is an immutable record of an amount the customer approved.
type Authorization struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"order_id"`
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
	Comment   string    `json:"comment,omitempty"`
}

// Component is a billable part/material owned by exactly one service.
type Component struct {
	ID          string  `json:"id"`
	ServiceID   string  `json:"service_id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Estimated   float64 `json:"estimated"`
	Real        float64 `json:"real"`
}

// Service is a billable unit of labor owned by exactly one order.
type Service struct {
	ID             string      `json:"id"`
	OrderID        string      `json:"order_id"`
	Name           string      `json:"name"`
	Description    string      `json:"description,omitempty"`
	LaborEstimated float64     `json:"labor_estimated"`
	LaborReal      float64     `json:"labor_real"`
	Components     []Component `json:"components"`
}

// RepairOrder is the aggregate root of the order lifecycle.
//
// Domain notes:
//   - ID is the opaque storage key, assigned once at creation.
//   - DisplayID is the human folio (RO-003), sequential and never reused.
//   - SubtotalEstimated/AuthorizedAmount/RealTotal are derived by the money
//     rules (money.go) and never hand-edited.
//   - Services, Authorizations, Events and Errors are ordered
//     most-recent-first; new entries are prepended.
//   - Updates are copy-on-write: operations build a new order value via the
//     helpers in mutations.go and persist it through the repository. Stored
//     orders are never mutated in place.
type RepairOrder struct {
	ID         string      `json:"id"`
	DisplayID  string      `json:"display_id"`
	CustomerID string      `json:"customer_id"`
	VehicleID  string      `json:"vehicle_id"`
	Status     OrderStatus `json:"status"`

	SubtotalEstimated float64 `json:"subtotal_estimated"`
	AuthorizedAmount  float64 `json:"authorized_amount"`
	RealTotal         float64 `json:"real_total"`

	Authorizations []Authorization `json:"authorizations"`
	Services       []Service       `json:"services"`
	Events         []Event         `json:"events"`
	Errors         []BusinessError `json:"errors"`
	Source         OrderSource     `json:"source"`
}
