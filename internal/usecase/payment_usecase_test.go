package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/seha3/repair-orders/internal/adapter/persistence/memory"
	"github.com/seha3/repair-orders/internal/domain/entities"
	mock_interfaces "github.com/seha3/repair-orders/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestPaymentUseCase_CreateForOrder(t *testing.T) {
	deliveredOrder := func() entities.RepairOrder {
		return entities.RepairOrder{
			ID:        "order-1",
			DisplayID: "RO-001",
			Status:    entities.StatusDelivered,
			RealTotal: 870,
		}
	}

	t.Run("order not found", func(t *testing.T) {
		orderRepo := memory.NewOrderMemoryRepository()
		uc := NewPaymentUseCase(memory.NewPaymentMemoryRepository(), orderRepo, &seqIDs{}, nil)

		_, err := uc.CreateForOrder(context.Background(), "missing")
		if !errors.Is(err, ErrOrderNotFound) {
			t.Fatalf("expected ErrOrderNotFound, got %v", err)
		}
	})

	t.Run("order must be delivered", func(t *testing.T) {
		orderRepo := memory.NewOrderMemoryRepository()
		order := deliveredOrder()
		order.Status = entities.StatusInProgress
		seedOrder(t, orderRepo, order)
		uc := NewPaymentUseCase(memory.NewPaymentMemoryRepository(), orderRepo, &seqIDs{}, nil)

		_, err := uc.CreateForOrder(context.Background(), "order-1")
		if !errors.Is(err, ErrOrderNotDelivered) {
			t.Fatalf("expected ErrOrderNotDelivered, got %v", err)
		}
	})

	t.Run("zero real total has nothing to charge", func(t *testing.T) {
		orderRepo := memory.NewOrderMemoryRepository()
		order := deliveredOrder()
		order.RealTotal = 0
		seedOrder(t, orderRepo, order)
		uc := NewPaymentUseCase(memory.NewPaymentMemoryRepository(), orderRepo, &seqIDs{}, nil)

		_, err := uc.CreateForOrder(context.Background(), "order-1")
		if !errors.Is(err, ErrNothingToCharge) {
			t.Fatalf("expected ErrNothingToCharge, got %v", err)
		}
	})

	t.Run("missing gateway", func(t *testing.T) {
		orderRepo := memory.NewOrderMemoryRepository()
		seedOrder(t, orderRepo, deliveredOrder())
		uc := NewPaymentUseCase(memory.NewPaymentMemoryRepository(), orderRepo, &seqIDs{}, nil)

		_, err := uc.CreateForOrder(context.Background(), "order-1")
		if !errors.Is(err, ErrGatewayNotConfigured) {
			t.Fatalf("expected ErrGatewayNotConfigured, got %v", err)
		}
	})

	t.Run("charges the real total and records the event", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		orderRepo := memory.NewOrderMemoryRepository()
		seedOrder(t, orderRepo, deliveredOrder())
		payRepo := memory.NewPaymentMemoryRepository()

		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		raw := json.RawMessage(`{"id":"mp-123","status":"approved"}`)
		gateway.EXPECT().
			CreatePayment(gomock.Any(), 870.0, "Orden RO-001").
			Return("mp-123", "approved", raw, nil)

		uc := NewPaymentUseCase(payRepo, orderRepo, &seqIDs{}, gateway)

		payment, err := uc.CreateForOrder(context.Background(), "order-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if payment.ID != "mp-123" || payment.OrderID != "order-1" || payment.Amount != 870 {
			t.Fatalf("unexpected payment: %+v", payment)
		}
		if payment.Status != entities.PaymentStatusAprobado {
			t.Fatalf("expected aprobado, got %s", payment.Status)
		}
		if payment.ProviderParsed["id"] != "mp-123" {
			t.Fatalf("provider response not parsed: %+v", payment.ProviderParsed)
		}

		stored := storedOrder(t, orderRepo, "order-1")
		if len(stored.Events) != 1 || stored.Events[0].Type != entities.EventPaymentRegistered {
			t.Fatalf("expected PAGO_REGISTRADO on the order trail: %+v", stored.Events)
		}

		listed, err := uc.ListByOrderID(context.Background(), "order-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(listed) != 1 || listed[0].ID != "mp-123" {
			t.Fatalf("expected the stored payment: %+v", listed)
		}
	})

	t.Run("gateway failure leaves no payment and no event", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		orderRepo := memory.NewOrderMemoryRepository()
		seedOrder(t, orderRepo, deliveredOrder())
		payRepo := memory.NewPaymentMemoryRepository()

		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		gateway.EXPECT().
			CreatePayment(gomock.Any(), gomock.Any(), gomock.Any()).
			Return("", "", nil, errors.New("provider down"))

		uc := NewPaymentUseCase(payRepo, orderRepo, &seqIDs{}, gateway)

		if _, err := uc.CreateForOrder(context.Background(), "order-1"); err == nil {
			t.Fatal("expected gateway error")
		}

		stored := storedOrder(t, orderRepo, "order-1")
		if len(stored.Events) != 0 {
			t.Fatalf("no event may be recorded on gateway failure: %+v", stored.Events)
		}
		if listed, _ := payRepo.ListByOrderID(context.Background(), "order-1"); len(listed) != 0 {
			t.Fatalf("no payment may be stored on gateway failure: %+v", listed)
		}
	})

	t.Run("repository failure propagates", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		orderRepo := memory.NewOrderMemoryRepository()
		seedOrder(t, orderRepo, deliveredOrder())

		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		gateway.EXPECT().
			CreatePayment(gomock.Any(), gomock.Any(), gomock.Any()).
			Return("mp-123", "approved", json.RawMessage(`{}`), nil)

		payRepo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		payRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Payment{}, errors.New("db"))

		uc := NewPaymentUseCase(payRepo, orderRepo, &seqIDs{}, gateway)

		if _, err := uc.CreateForOrder(context.Background(), "order-1"); err == nil || err.Error() != "db" {
			t.Fatalf("expected db error, got %v", err)
		}
	})
}

func TestPaymentUseCase_ListByOrderID(t *testing.T) {
	uc := NewPaymentUseCase(memory.NewPaymentMemoryRepository(), memory.NewOrderMemoryRepository(), &seqIDs{}, nil)

	if _, err := uc.ListByOrderID(context.Background(), "  "); !errors.Is(err, ErrInvalidOrderID) {
		t.Fatalf("expected ErrInvalidOrderID, got %v", err)
	}

	listed, err := uc.ListByOrderID(context.Background(), "order-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(listed) != 0 {
		t.Fatalf("expected no payments, got %+v", listed)
	}
}
