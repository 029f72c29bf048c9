package requesterrors

import (
	"net/http"

	"smg-portal/internal/shared/apperror"
)

var (
	ErrRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"Request not found",
		http.StatusNotFound,
	)

	ErrInvalidRequestID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid request ID",
		http.StatusBadRequest,
	)

	ErrInvalidTransition = apperror.New(
		apperror.CodeInvalidState,
		"Request cannot move to the requested status",
		http.StatusConflict,
	)

	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"Unknown request status",
		http.StatusBadRequest,
	)

	ErrRequestForbidden = apperror.New(
		apperror.CodeForbidden,
		"You can only access your own requests",
		http.StatusForbidden,
	)

	ErrInvalidApprover = apperror.New(
		apperror.CodeInvalidInput,
		"Approver user_id must be a valid UUID",
		http.StatusBadRequest,
	)
)
