package training

import (
	"net/http"

	"smg-portal/internal/shared/apperror"
	"smg-portal/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("training.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("training.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) UpdateEnrollment(c *gin.Context) {
	var req UpdateEnrollmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http update enrollment validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", apperror.MapValidationError(err).Error())
		return
	}

	resp, err := h.service.UpdateEnrollment(c.Request.Context(), c.GetString("user_id"), c.Param("id"), req)
	if err != nil {
		httpErr := response.FromError(c, err)
		h.logger.Warn("training request failed",
			zap.String("path", c.FullPath()),
			zap.Int("status", httpErr.Status),
			zap.String("code", httpErr.Code),
			zap.Error(err),
		)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
