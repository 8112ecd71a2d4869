package routes

import (
	"mecanica_os/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathCustomers = "/customers"
	PathVehicles  = "/vehicles"
	PathParts     = "/parts"
	PathServices  = "/services"
)

func addRegistryRoutes(
	rg *gin.RouterGroup,
	requireAuth gin.HandlerFunc,
	customerHandler *handlers.CustomerHandler,
	vehicleHandler *handlers.VehicleHandler,
	catalogHandler *handlers.CatalogHandler,
) {
	customers := rg.Group(PathCustomers, requireAuth)
	{
		customers.POST("", customerHandler.Create)
		customers.GET("", customerHandler.List)
		customers.GET("/:customer_id", customerHandler.GetByID)
		customers.GET("/:customer_id/vehicles", vehicleHandler.ListByCustomer)
	}

	vehicles := rg.Group(PathVehicles, requireAuth)
	{
		vehicles.POST("", vehicleHandler.Create)
		vehicles.GET("/:vehicle_id", vehicleHandler.GetByID)
	}

	parts := rg.Group(PathParts, requireAuth)
	{
		parts.POST("", catalogHandler.CreatePart)
		parts.GET("", catalogHandler.ListParts)
		parts.GET("/:part_id", catalogHandler.GetPartByID)
	}

	services := rg.Group(PathServices, requireAuth)
	{
		services.POST("", catalogHandler.CreateService)
		services.GET("", catalogHandler.ListServices)
		services.GET("/:service_id", catalogHandler.GetServiceByID)
	}
}
