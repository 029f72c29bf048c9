package trainingerrors

import (
	"net/http"

	"smg-portal/internal/shared/apperror"
)

var (
	ErrEnrollmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Enrollment not found",
		http.StatusNotFound,
	)

	ErrInvalidEnrollmentID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid enrollment ID",
		http.StatusBadRequest,
	)

	ErrInvalidCompletionDate = apperror.New(
		apperror.CodeInvalidInput,
		"completion_date must be RFC3339 or YYYY-MM-DD",
		http.StatusBadRequest,
	)

	ErrNothingToUpdate = apperror.New(
		apperror.CodeInvalidInput,
		"No enrollment fields to update",
		http.StatusBadRequest,
	)
)
