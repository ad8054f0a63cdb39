package request

import "strings"

// CreateOrderRequest opens a new repair order.
type CreateOrderRequest struct {
	CustomerID string `json:"customer_id" binding:"required"`
	VehicleID  string `json:"vehicle_id" binding:"required"`
	Source     string `json:"source" binding:"required"`
}

func (r CreateOrderRequest) ResolveSource() string {
	return strings.ToUpper(strings.TrimSpace(r.Source))
}

// TransitionRequest moves an order to a new lifecycle status.
type TransitionRequest struct {
	ToStatus string `json:"to_status" binding:"required"`
}

func (r TransitionRequest) ResolveStatus() string {
	return strings.ToUpper(strings.TrimSpace(r.ToStatus))
}

// ReauthorizeRequest records the amount the customer approved after an
// overcost hold. Amount must be strictly positive.
type ReauthorizeRequest struct {
	Amount  float64 `json:"amount" binding:"required,gt=0"`
	Comment string  `json:"comment"`
}
