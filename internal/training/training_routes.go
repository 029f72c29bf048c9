package training

import (
	"smg-portal/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, auth gin.HandlerFunc, authorize func(resource, action string) gin.HandlerFunc) {
	enrollments := r.Group("/training/enrollments")
	enrollments.Use(auth)
	{
		enrollments.PATCH("/:id", authorize(rbac.ResourceEnrollment, rbac.ActionUpdate), handler.UpdateEnrollment)
	}
}
