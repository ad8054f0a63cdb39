package handlers

import (
	"errors"
	"net/http"

	response "github.com/seha3/repair-orders/internal/adapter/http/dto/response"
	"github.com/seha3/repair-orders/internal/usecase"
	"github.com/seha3/repair-orders/pkg"

	"github.com/gin-gonic/gin"
)

// PaymentHandler handles HTTP requests that settle delivered orders through
// the payment provider.

type PaymentHandler struct {
	usecase usecase.IPaymentUseCase
}

func NewPaymentHandler(uc usecase.IPaymentUseCase) *PaymentHandler {
	return &PaymentHandler{usecase: uc}
}

// CreatePayment godoc
//
//	@Summary	Charge a delivered order's real total
//	@Tags		payments
//	@Produce	json
//	@Param		id	path		string	true	"Order id"
//	@Success	201	{object}	response.PaymentResponse
//	@Failure	409	{object}	pkg.HTTPError
//	@Failure	503	{object}	pkg.HTTPError
//	@Router		/v1/orders/{id}/payments [post]
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	payment, err := h.usecase.CreateForOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromPayment(payment))
}

// ListPayments godoc
//
//	@Summary	List the payments recorded for an order
//	@Tags		payments
//	@Produce	json
//	@Param		id	path		string	true	"Order id"
//	@Success	200	{array}		response.PaymentResponse
//	@Failure	400	{object}	pkg.HTTPError
//	@Router		/v1/orders/{id}/payments [get]
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	payments, err := h.usecase.ListByOrderID(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromPayments(payments))
}

func mapPaymentError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrOrderNotDelivered):
		return pkg.NewDomainErrorSimple("ORDER_NOT_DELIVERED", "Only delivered orders can be charged", http.StatusConflict)
	case errors.Is(err, usecase.ErrNothingToCharge):
		return pkg.NewDomainErrorSimple("NOTHING_TO_CHARGE", "Order has no real total to charge", http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrGatewayNotConfigured):
		return pkg.NewDomainErrorSimple("PAYMENT_GATEWAY_UNAVAILABLE", "Payment gateway not configured", http.StatusServiceUnavailable)
	case errors.Is(err, usecase.ErrPaymentNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
	default:
		return MapOrderError(err)
	}
}
