package attendance

import (
	"smg-portal/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, auth gin.HandlerFunc, authorize func(resource, action string) gin.HandlerFunc) {
	attendance := r.Group("/attendance")
	attendance.Use(auth)
	{
		attendance.GET("/summary/:month", authorize(rbac.ResourceAttendance, rbac.ActionRead), h.GetSummary)
	}
}
