package entities

import (
	"encoding/json"
	"time"
)

// PaymentStatus represents the payment processing outcome.

type PaymentStatus string

const (
	PaymentStatusPendiente PaymentStatus = "pendiente"
	PaymentStatusAprobado  PaymentStatus = "aprobado"
	PaymentStatusNegado    PaymentStatus = "negado"
)

// Payment is the charge collected when a delivered order is settled.
//
// Provider payload:
//   - ProviderRaw keeps the original provider response (JSON) for
//     traceability/audit.
//   - ProviderParsed is an optional parsed representation, useful for
//     querying/debugging.
type Payment struct {
	ID      string        `json:"id"`
	OrderID string        `json:"order_id"`
	Amount  float64       `json:"amount"`
	Date    time.Time     `json:"date"`
	Status  PaymentStatus `json:"status"`

	ProviderRaw    json.RawMessage        `json:"provider_raw,omitempty"`
	ProviderParsed map[string]interface{} `json:"provider_parsed,omitempty"`
}
