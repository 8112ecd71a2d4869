package routes

import (
	"mecanica_os/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const PathServiceOrders = "/service-orders"

func addServiceOrderRoutes(rg *gin.RouterGroup, requireAuth gin.HandlerFunc, h *handlers.ServiceOrderHandler) {
	os := rg.Group(PathServiceOrders)
	{
		// The approval callback is the only open write path: it is called by
		// the external approval system, not by a logged-in user.
		os.POST("/approval-callback", h.ApprovalCallback)

		authed := os.Group("", requireAuth)
		{
			authed.POST("", h.Create)
			authed.GET("", h.ListActive)
			authed.GET("/:os_id", h.GetByID)
			authed.GET("/:os_id/payments", h.ListPayments)

			authed.PATCH("/:os_id/diagnose", h.StartDiagnosis)
			authed.POST("/:os_id/parts", h.AddPartItem)
			authed.POST("/:os_id/services", h.AddServiceItem)
			authed.PATCH("/:os_id/submit", h.SubmitForApproval)
			authed.PATCH("/:os_id/finish", h.Finish)
			authed.PATCH("/:os_id/deliver", h.Deliver)
			authed.PATCH("/:os_id/cancel", h.Cancel)
		}
	}
}
