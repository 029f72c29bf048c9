package attendanceerrors

import (
	"net/http"

	"smg-portal/internal/shared/apperror"
)

var (
	ErrSummaryNotFound = apperror.New(
		apperror.CodeNotFound,
		"No attendance summary for this month",
		http.StatusNotFound,
	)

	ErrInvalidMonth = apperror.New(
		apperror.CodeInvalidInput,
		"Month must be formatted as YYYY-MM",
		http.StatusBadRequest,
	)
)
