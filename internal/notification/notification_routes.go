package notification

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, auth gin.HandlerFunc) {
	notifications := r.Group("/notifications")
	notifications.Use(auth)
	{
		notifications.GET("", handler.List)
		notifications.PATCH("/:id/read", handler.MarkRead)
	}
}
