package routes

import (
	"mecanica_os/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const PathAuth = "/auth"

func addAuthRoutes(rg *gin.RouterGroup, requireAuth gin.HandlerFunc, h *handlers.AuthHandler) {
	auth := rg.Group(PathAuth)
	{
		auth.POST("/login", h.Login)
		auth.POST("/users", requireAuth, h.CreateUser)
	}
}
