package interfaces

import (
	"context"
	"encoding/json"
)

// IPaymentGateway abstracts external payment providers (e.g. Mercado Pago).
//
// The order service uses it to collect the real total of a delivered order
// and persists the provider response payload for traceability.
type IPaymentGateway interface {
	CreatePayment(ctx context.Context, amount float64, description string) (providerPaymentID string, providerStatus string, providerResponse json.RawMessage, err error)
}
