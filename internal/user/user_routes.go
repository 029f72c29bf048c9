package user

import (
	"smg-portal/internal/rbac"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the privileged user calls. authorize gates routes on
// the caller's role claim; the service re-checks the stored profile.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, auth gin.HandlerFunc, authorize func(resource, action string) gin.HandlerFunc) {
	users := r.Group("/users")
	users.Use(auth, authorize(rbac.ResourceUser, rbac.ActionManage))
	{
		users.POST("", handler.Provision)
		users.GET("/:id", handler.GetByID)
		users.PATCH("/:id/role", handler.UpdateRole)
	}
}
