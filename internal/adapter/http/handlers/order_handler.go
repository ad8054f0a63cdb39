package handlers

import (
	"errors"
	"net/http"
	"strings"

	request "github.com/seha3/repair-orders/internal/adapter/http/dto/request"
	response "github.com/seha3/repair-orders/internal/adapter/http/dto/response"
	"github.com/seha3/repair-orders/internal/domain/entities"
	"github.com/seha3/repair-orders/internal/usecase"
	"github.com/seha3/repair-orders/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidOrderPayload = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request payload", http.StatusBadRequest)

// OrderHandler handles HTTP requests for the repair-order lifecycle: creation,
// status transitions, authorization, reauthorization and the real-cost
// reconciliation trigger.

type OrderHandler struct {
	usecase usecase.IOrderLifecycleUseCase
}

func NewOrderHandler(uc usecase.IOrderLifecycleUseCase) *OrderHandler {
	return &OrderHandler{usecase: uc}
}

// CreateOrder godoc
//
//	@Summary	Open a new repair order
//	@Tags		orders
//	@Accept		json
//	@Produce	json
//	@Param		order	body		request.CreateOrderRequest	true	"Order to open"
//	@Success	201		{object}	response.OrderResponse
//	@Failure	400		{object}	pkg.HTTPError
//	@Router		/v1/orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var payload request.CreateOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidOrderPayload.HTTPStatus, errInvalidOrderPayload.ToHTTPError())
		return
	}

	order, err := h.usecase.CreateOrder(c.Request.Context(), usecase.CreateOrderParams{
		CustomerID: payload.CustomerID,
		VehicleID:  payload.VehicleID,
		Source:     entities.OrderSource(payload.ResolveSource()),
	})
	if err != nil {
		appErr := MapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromRepairOrder(order))
}

// ListOrders godoc
//
//	@Summary	List repair orders, newest first
//	@Tags		orders
//	@Produce	json
//	@Param		customer_id	query		string	false	"Filter by customer"
//	@Success	200			{array}		response.OrderResponse
//	@Failure	500			{object}	pkg.HTTPError
//	@Router		/v1/orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	var (
		orders []entities.RepairOrder
		err    error
	)

	if customerID := strings.TrimSpace(c.Query("customer_id")); customerID != "" {
		orders, err = h.usecase.ListOrdersForCustomer(c.Request.Context(), customerID)
	} else {
		orders, err = h.usecase.ListOrders(c.Request.Context())
	}
	if err != nil {
		appErr := MapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromRepairOrders(orders))
}

// GetOrder godoc
//
//	@Summary	Fetch one repair order
//	@Tags		orders
//	@Produce	json
//	@Param		id	path		string	true	"Order id"
//	@Success	200	{object}	response.OrderResponse
//	@Failure	404	{object}	pkg.HTTPError
//	@Router		/v1/orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.usecase.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := MapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromRepairOrder(order))
}

// TransitionOrder godoc
//
//	@Summary	Move an order to a new lifecycle status
//	@Tags		orders
//	@Accept		json
//	@Produce	json
//	@Param		id			path		string						true	"Order id"
//	@Param		transition	body		request.TransitionRequest	true	"Target status"
//	@Success	200			{object}	response.OrderResponse
//	@Failure	409			{object}	pkg.HTTPError
//	@Router		/v1/orders/{id}/transition [post]
func (h *OrderHandler) TransitionOrder(c *gin.Context) {
	var payload request.TransitionRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidOrderPayload.HTTPStatus, errInvalidOrderPayload.ToHTTPError())
		return
	}

	order, err := h.usecase.Transition(c.Request.Context(), c.Param("id"), entities.OrderStatus(payload.ResolveStatus()))
	if err != nil {
		appErr := MapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromRepairOrder(order))
}

// AuthorizeOrder godoc
//
//	@Summary	Authorize a diagnosed order at the tax-inclusive estimate
//	@Tags		orders
//	@Produce	json
//	@Param		id	path		string	true	"Order id"
//	@Success	200	{object}	response.OrderResponse
//	@Failure	409	{object}	pkg.HTTPError
//	@Failure	422	{object}	pkg.HTTPError
//	@Router		/v1/orders/{id}/authorize [post]
func (h *OrderHandler) AuthorizeOrder(c *gin.Context) {
	order, err := h.usecase.Authorize(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := MapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromRepairOrder(order))
}

// ReauthorizeOrder godoc
//
//	@Summary	Register a reauthorization after an overcost hold
//	@Tags		orders
//	@Accept		json
//	@Produce	json
//	@Param		id				path		string						true	"Order id"
//	@Param		reauthorization	body		request.ReauthorizeRequest	true	"Approved amount"
//	@Success	200				{object}	response.OrderResponse
//	@Failure	409				{object}	pkg.HTTPError
//	@Router		/v1/orders/{id}/reauthorize [post]
func (h *OrderHandler) ReauthorizeOrder(c *gin.Context) {
	var payload request.ReauthorizeRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidOrderPayload.HTTPStatus, errInvalidOrderPayload.ToHTTPError())
		return
	}

	order, err := h.usecase.RegisterReauthorization(c.Request.Context(), c.Param("id"), payload.Amount, payload.Comment)
	if err != nil {
		appErr := MapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromRepairOrder(order))
}

// RecalcRealCosts godoc
//
//	@Summary	Recompute the real total and flag overcost
//	@Tags		orders
//	@Produce	json
//	@Param		id	path		string	true	"Order id"
//	@Success	200	{object}	response.OrderResponse
//	@Failure	404	{object}	pkg.HTTPError
//	@Router		/v1/orders/{id}/recalc-real [post]
func (h *OrderHandler) RecalcRealCosts(c *gin.Context) {
	order, err := h.usecase.RecalcRealAndCheckOvercost(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := MapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromRepairOrder(order))
}

// MapOrderError translates use-case sentinels into transport errors. Shared
// by every handler that touches orders.
func MapOrderError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidOrderID),
		errors.Is(err, usecase.ErrInvalidCustomerID),
		errors.Is(err, usecase.ErrInvalidVehicleID),
		errors.Is(err, usecase.ErrInvalidSource),
		errors.Is(err, usecase.ErrInvalidStatus),
		errors.Is(err, usecase.ErrInvalidAmount):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrOrderNotFound):
		return pkg.NewDomainErrorSimple("ORDER_NOT_FOUND", "Order not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrServiceNotFound):
		return pkg.NewDomainErrorSimple("SERVICE_NOT_FOUND", "Service not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrComponentNotFound):
		return pkg.NewDomainErrorSimple("COMPONENT_NOT_FOUND", "Component not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrOrderCancelled):
		return pkg.NewDomainErrorSimple("ORDER_CANCELLED", "Order is cancelled and cannot be modified", http.StatusConflict)
	case errors.Is(err, usecase.ErrInvalidTransition):
		return pkg.NewDomainErrorSimple("INVALID_STATUS_TRANSITION", "Operation not allowed in the current status", http.StatusConflict)
	case errors.Is(err, usecase.ErrNoServices):
		return pkg.NewDomainErrorSimple("NO_SERVICES", "Cannot authorize an order without services", http.StatusUnprocessableEntity)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
