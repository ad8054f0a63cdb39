package handlers

import (
	"net/http"

	request "github.com/seha3/repair-orders/internal/adapter/http/dto/request"
	response "github.com/seha3/repair-orders/internal/adapter/http/dto/response"
	"github.com/seha3/repair-orders/internal/usecase"

	"github.com/gin-gonic/gin"
)

// LineItemHandler handles HTTP requests that edit an order's services and
// components, and the real-cost captures made during the repair.

type LineItemHandler struct {
	lineItems usecase.ILineItemUseCase
	realCosts usecase.IRealCostUseCase
}

func NewLineItemHandler(lineItems usecase.ILineItemUseCase, realCosts usecase.IRealCostUseCase) *LineItemHandler {
	return &LineItemHandler{lineItems: lineItems, realCosts: realCosts}
}

// AddService godoc
//
//	@Summary	Add a service line to an order
//	@Tags		services
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string							true	"Order id"
//	@Param		service	body		request.ServiceCreateRequest	true	"Service to add"
//	@Success	201		{object}	response.OrderResponse
//	@Failure	409		{object}	pkg.HTTPError
//	@Router		/v1/orders/{id}/services [post]
func (h *LineItemHandler) AddService(c *gin.Context) {
	var payload request.ServiceCreateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidOrderPayload.HTTPStatus, errInvalidOrderPayload.ToHTTPError())
		return
	}

	order, err := h.lineItems.AddService(c.Request.Context(), c.Param("id"), usecase.ServiceInput{
		Name:           payload.Name,
		Description:    payload.Description,
		LaborEstimated: payload.LaborEstimated,
	})
	if err != nil {
		appErr := MapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromRepairOrder(order))
}

// UpdateService godoc
//
//	@Summary	Patch a service line
//	@Tags		services
//	@Accept		json
//	@Produce	json
//	@Param		id			path		string						true	"Order id"
//	@Param		service_id	path		string						true	"Service id"
//	@Param		patch		body		request.ServicePatchRequest	true	"Fields to change"
//	@Success	200			{object}	response.OrderResponse
//	@Failure	404			{object}	pkg.HTTPError
//	@Router		/v1/orders/{id}/services/{service_id} [patch]
func (h *LineItemHandler) UpdateService(c *gin.Context) {
	var payload request.ServicePatchRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidOrderPayload.HTTPStatus, errInvalidOrderPayload.ToHTTPError())
		return
	}

	order, err := h.lineItems.UpdateService(c.Request.Context(), c.Param("id"), c.Param("service_id"), usecase.ServicePatch{
		Name:           payload.Name,
		Description:    payload.Description,
		LaborEstimated: payload.LaborEstimated,
	})
	if err != nil {
		appErr := MapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromRepairOrder(order))
}

// DeleteService godoc
//
//	@Summary	Remove a service line
//	@Tags		services
//	@Produce	json
//	@Param		id			path		string	true	"Order id"
//	@Param		service_id	path		string	true	"Service id"
//	@Success	200			{object}	response.OrderResponse
//	@Failure	404			{object}	pkg.HTTPError
//	@Router		/v1/orders/{id}/services/{service_id} [delete]
func (h *LineItemHandler) DeleteService(c *gin.Context) {
	order, err := h.lineItems.DeleteService(c.Request.Context(), c.Param("id"), c.Param("service_id"))
	if err != nil {
		appErr := MapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromRepairOrder(order))
}

// AddComponent godoc
//
//	@Summary	Add a component to a service line
//	@Tags		services
//	@Accept		json
//	@Produce	json
//	@Param		id			path		string							true	"Order id"
//	@Param		service_id	path		string							true	"Service id"
//	@Param		component	body		request.ComponentCreateRequest	true	"Component to add"
//	@Success	201			{object}	response.OrderResponse
//	@Failure	404			{object}	pkg.HTTPError
//	@Router		/v1/orders/{id}/services/{service_id}/components [post]
func (h *LineItemHandler) AddComponent(c *gin.Context) {
	var payload request.ComponentCreateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidOrderPayload.HTTPStatus, errInvalidOrderPayload.ToHTTPError())
		return
	}

	order, err := h.lineItems.AddComponent(c.Request.Context(), c.Param("id"), c.Param("service_id"), usecase.ComponentInput{
		Name:        payload.Name,
		Description: payload.Description,
		Estimated:   payload.Estimated,
	})
	if err != nil {
		appErr := MapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromRepairOrder(order))
}

// UpdateComponent godoc
//
//	@Summary	Patch a component
//	@Tags		services
//	@Accept		json
//	@Produce	json
//	@Param		id				path		string							true	"Order id"
//	@Param		service_id		path		string							true	"Service id"
//	@Param		component_id	path		string							true	"Component id"
//	@Param		patch			body		request.ComponentPatchRequest	true	"Fields to change"
//	@Success	200				{object}	response.OrderResponse
//	@Failure	404				{object}	pkg.HTTPError
//	@Router		/v1/orders/{id}/services/{service_id}/components/{component_id} [patch]
func (h *LineItemHandler) UpdateComponent(c *gin.Context) {
	var payload request.ComponentPatchRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidOrderPayload.HTTPStatus, errInvalidOrderPayload.ToHTTPError())
		return
	}

	order, err := h.lineItems.UpdateComponent(c.Request.Context(), c.Param("id"), c.Param("service_id"), c.Param("component_id"), usecase.ComponentPatch{
		Name:      payload.Name,
		Estimated: payload.Estimated,
	})
	if err != nil {
		appErr := MapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromRepairOrder(order))
}

// DeleteComponent godoc
//
//	@Summary	Remove a component
//	@Tags		services
//	@Produce	json
//	@Param		id				path		string	true	"Order id"
//	@Param		service_id		path		string	true	"Service id"
//	@Param		component_id	path		string	true	"Component id"
//	@Success	200				{object}	response.OrderResponse
//	@Failure	404				{object}	pkg.HTTPError
//	@Router		/v1/orders/{id}/services/{service_id}/components/{component_id} [delete]
func (h *LineItemHandler) DeleteComponent(c *gin.Context) {
	order, err := h.lineItems.DeleteComponent(c.Request.Context(), c.Param("id"), c.Param("service_id"), c.Param("component_id"))
	if err != nil {
		appErr := MapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromRepairOrder(order))
}

// UpdateLaborReal godoc
//
//	@Summary	Capture the real labor cost of a service
//	@Tags		real-costs
//	@Accept		json
//	@Produce	json
//	@Param		id			path		string					true	"Order id"
//	@Param		service_id	path		string					true	"Service id"
//	@Param		capture		body		request.RealCostRequest	true	"Real cost"
//	@Success	200			{object}	response.OrderResponse
//	@Failure	409			{object}	pkg.HTTPError
//	@Router		/v1/orders/{id}/services/{service_id}/labor-real [patch]
func (h *LineItemHandler) UpdateLaborReal(c *gin.Context) {
	var payload request.RealCostRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidOrderPayload.HTTPStatus, errInvalidOrderPayload.ToHTTPError())
		return
	}

	order, err := h.realCosts.UpdateLaborReal(c.Request.Context(), c.Param("id"), c.Param("service_id"), *payload.Value)
	if err != nil {
		appErr := MapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromRepairOrder(order))
}

// UpdateComponentReal godoc
//
//	@Summary	Capture the real cost of a component
//	@Tags		real-costs
//	@Accept		json
//	@Produce	json
//	@Param		id				path		string					true	"Order id"
//	@Param		service_id		path		string					true	"Service id"
//	@Param		component_id	path		string					true	"Component id"
//	@Param		capture			body		request.RealCostRequest	true	"Real cost"
//	@Success	200				{object}	response.OrderResponse
//	@Failure	409				{object}	pkg.HTTPError
//	@Router		/v1/orders/{id}/services/{service_id}/components/{component_id}/real [patch]
func (h *LineItemHandler) UpdateComponentReal(c *gin.Context) {
	var payload request.RealCostRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidOrderPayload.HTTPStatus, errInvalidOrderPayload.ToHTTPError())
		return
	}

	order, err := h.realCosts.UpdateComponentReal(c.Request.Context(), c.Param("id"), c.Param("service_id"), c.Param("component_id"), *payload.Value)
	if err != nil {
		appErr := MapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromRepairOrder(order))
}
