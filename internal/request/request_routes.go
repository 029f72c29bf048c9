package request

import (
	"smg-portal/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	auth gin.HandlerFunc,
	authorize func(resource, action string) gin.HandlerFunc,
	idempotent gin.HandlerFunc,
) {
	requests := r.Group("/requests")
	requests.Use(auth)
	{
		requests.POST("", authorize(rbac.ResourceRequest, rbac.ActionCreate), idempotent, handler.Create)
		requests.GET("", authorize(rbac.ResourceRequest, rbac.ActionRead), handler.List)
		requests.GET("/:id", authorize(rbac.ResourceRequest, rbac.ActionRead), handler.GetByID)
		requests.PATCH("/:id/status", authorize(rbac.ResourceRequest, rbac.ActionApprove), handler.UpdateStatus)
	}
}
