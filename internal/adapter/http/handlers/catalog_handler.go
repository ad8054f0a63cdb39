package handlers

import (
	"net/http"

	response "github.com/seha3/repair-orders/internal/adapter/http/dto/response"
	"github.com/seha3/repair-orders/internal/usecase/interfaces"
	"github.com/seha3/repair-orders/pkg"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the customer/vehicle reference data. The catalog is
// read-only over HTTP; it is written only by the demo seed.

type CatalogHandler struct {
	catalog interfaces.ICatalogRepository
}

func NewCatalogHandler(catalog interfaces.ICatalogRepository) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// ListCustomers godoc
//
//	@Summary	List customers
//	@Tags		catalog
//	@Produce	json
//	@Success	200	{array}		response.CustomerResponse
//	@Failure	500	{object}	pkg.HTTPError
//	@Router		/v1/customers [get]
func (h *CatalogHandler) ListCustomers(c *gin.Context) {
	customers, err := h.catalog.ListCustomers(c.Request.Context())
	if err != nil {
		appErr := pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromCustomers(customers))
}

// ListVehicles godoc
//
//	@Summary	List vehicles
//	@Tags		catalog
//	@Produce	json
//	@Success	200	{array}		response.VehicleResponse
//	@Failure	500	{object}	pkg.HTTPError
//	@Router		/v1/vehicles [get]
func (h *CatalogHandler) ListVehicles(c *gin.Context) {
	vehicles, err := h.catalog.ListVehicles(c.Request.Context())
	if err != nil {
		appErr := pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromVehicles(vehicles))
}
