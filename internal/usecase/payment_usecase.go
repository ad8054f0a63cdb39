package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/seha3/repair-orders/internal/domain/entities"
	"github.com/seha3/repair-orders/internal/usecase/interfaces"
)

var (
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrOrderNotDelivered    = errors.New("order not delivered")
	ErrNothingToCharge      = errors.New("order has no real total to charge")
	ErrGatewayNotConfigured = errors.New("payment gateway not configured")
)

// IPaymentUseCase settles a delivered order: it charges the real total
// through the payment provider, persists the payment and records a
// PAGO_REGISTRADO event on the order's audit trail.

type IPaymentUseCase interface {
	CreateForOrder(ctx context.Context, orderID string) (entities.Payment, error)
	ListByOrderID(ctx context.Context, orderID string) ([]entities.Payment, error)
}

type PaymentUseCase struct {
	repo      interfaces.IPaymentRepository
	orderRepo interfaces.IOrderRepository
	ids       interfaces.IDGenerator
	gateway   interfaces.IPaymentGateway
}

var _ IPaymentUseCase = (*PaymentUseCase)(nil)

func NewPaymentUseCase(repo interfaces.IPaymentRepository, orderRepo interfaces.IOrderRepository, ids interfaces.IDGenerator, gateway interfaces.IPaymentGateway) *PaymentUseCase {
	return &PaymentUseCase{repo: repo, orderRepo: orderRepo, ids: ids, gateway: gateway}
}

func (u *PaymentUseCase) CreateForOrder(ctx context.Context, orderID string) (entities.Payment, error) {
	log.Printf("[payment][usecase] create start order_id=%q", orderID)

	order, err := loadOrder(ctx, u.orderRepo, orderID)
	if err != nil {
		return entities.Payment{}, err
	}
	if order.Status != entities.StatusDelivered {
		log.Printf("[payment][usecase] order not delivered order_id=%s status=%s", order.ID, order.Status)
		return entities.Payment{}, ErrOrderNotDelivered
	}
	if order.RealTotal <= 0 {
		log.Printf("[payment][usecase] nothing to charge order_id=%s real_total=%.2f", order.ID, order.RealTotal)
		return entities.Payment{}, ErrNothingToCharge
	}
	if u.gateway == nil {
		return entities.Payment{}, ErrGatewayNotConfigured
	}

	description := fmt.Sprintf("Orden %s", order.DisplayID)
	providerPaymentID, providerStatus, providerResp, err := u.gateway.CreatePayment(ctx, order.RealTotal, description)
	if err != nil {
		log.Printf("[payment][usecase] payment gateway failed order_id=%s err=%v", order.ID, err)
		return entities.Payment{}, err
	}
	log.Printf("[payment][usecase] payment gateway success order_id=%s provider_payment_id=%s provider_status=%s",
		order.ID, providerPaymentID, providerStatus)

	var parsed map[string]interface{}
	if err := json.Unmarshal(providerResp, &parsed); err != nil {
		log.Printf("[payment][usecase] provider response unmarshal failed order_id=%s err=%v", order.ID, err)
	}

	payment := entities.Payment{
		ID:             providerPaymentID,
		OrderID:        order.ID,
		Amount:         order.RealTotal,
		Date:           nowUTC(),
		Status:         entities.PaymentStatusAprobado,
		ProviderRaw:    providerResp,
		ProviderParsed: parsed,
	}

	created, err := u.repo.Create(ctx, payment)
	if err != nil {
		log.Printf("[payment][usecase] payment repository create failed order_id=%s payment_id=%s err=%v", order.ID, payment.ID, err)
		return entities.Payment{}, err
	}

	// The order keeps its own trace of the settlement.
	order = order.PushEvent(newEvent(u.ids, order.ID, entities.EventPaymentRegistered))
	if err := u.orderRepo.Upsert(ctx, order); err != nil {
		return entities.Payment{}, err
	}

	log.Printf("[payment][usecase] create success order_id=%s payment_id=%s status=%s", order.ID, created.ID, created.Status)
	return created, nil
}

func (u *PaymentUseCase) ListByOrderID(ctx context.Context, orderID string) ([]entities.Payment, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return nil, ErrInvalidOrderID
	}
	return u.repo.ListByOrderID(ctx, orderID)
}
