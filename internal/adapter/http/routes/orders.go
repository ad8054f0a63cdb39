package routes

import (
	"github.com/seha3/repair-orders/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathOrders    = "/orders"
	PathCustomers = "/customers"
	PathVehicles  = "/vehicles"
)

func addOrderRoutes(rg *gin.RouterGroup, orderHandler *handlers.OrderHandler, lineItemHandler *handlers.LineItemHandler, paymentHandler *handlers.PaymentHandler) {
	orders := rg.Group(PathOrders)
	{
		orders.POST("", orderHandler.CreateOrder)
		orders.GET("", orderHandler.ListOrders)
		orders.GET("/:id", orderHandler.GetOrder)

		// Lifecycle
		orders.POST("/:id/transition", orderHandler.TransitionOrder)
		orders.POST("/:id/authorize", orderHandler.AuthorizeOrder)
		orders.POST("/:id/reauthorize", orderHandler.ReauthorizeOrder)
		orders.POST("/:id/recalc-real", orderHandler.RecalcRealCosts)

		// Quote editor
		orders.POST("/:id/services", lineItemHandler.AddService)
		orders.PATCH("/:id/services/:service_id", lineItemHandler.UpdateService)
		orders.DELETE("/:id/services/:service_id", lineItemHandler.DeleteService)
		orders.POST("/:id/services/:service_id/components", lineItemHandler.AddComponent)
		orders.PATCH("/:id/services/:service_id/components/:component_id", lineItemHandler.UpdateComponent)
		orders.DELETE("/:id/services/:service_id/components/:component_id", lineItemHandler.DeleteComponent)

		// Real-cost capture
		orders.PATCH("/:id/services/:service_id/labor-real", lineItemHandler.UpdateLaborReal)
		orders.PATCH("/:id/services/:service_id/components/:component_id/real", lineItemHandler.UpdateComponentReal)

		// Settlement
		orders.POST("/:id/payments", paymentHandler.CreatePayment)
		orders.GET("/:id/payments", paymentHandler.ListPayments)
	}
}

func addCatalogRoutes(rg *gin.RouterGroup, catalogHandler *handlers.CatalogHandler) {
	rg.GET(PathCustomers, catalogHandler.ListCustomers)
	rg.GET(PathVehicles, catalogHandler.ListVehicles)
}
