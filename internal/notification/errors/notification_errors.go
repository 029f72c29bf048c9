package notificationerrors

import (
	"net/http"

	"smg-portal/internal/shared/apperror"
)

var (
	ErrNotificationNotFound = apperror.New(
		apperror.CodeNotFound,
		"notification not found",
		http.StatusNotFound,
	)
	ErrInvalidNotificationID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid notification id",
		http.StatusBadRequest,
	)
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid user id",
		http.StatusBadRequest,
	)
	ErrMissingIdempotencyKey = apperror.New(
		apperror.CodeInvalidInput,
		"notification idempotency key is required",
		http.StatusBadRequest,
	)
)
