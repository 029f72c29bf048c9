package attendance_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"smg-portal/internal/attendance"
	attendanceerrors "smg-portal/internal/attendance/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	getSummaryFn func(ctx context.Context, userID, month string) (attendance.SummaryResponse, error)
}

func (f *fakeService) GetSummary(ctx context.Context, userID, month string) (attendance.SummaryResponse, error) {
	return f.getSummaryFn(ctx, userID, month)
}

func TestHandler_GetSummary(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "found", want: http.StatusOK},
		{name: "missing", err: attendanceerrors.ErrSummaryNotFound, want: http.StatusNotFound},
		{name: "bad month", err: attendanceerrors.ErrInvalidMonth, want: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{getSummaryFn: func(ctx context.Context, userID, month string) (attendance.SummaryResponse, error) {
				assert.Equal(t, "u-1", userID)
				assert.Equal(t, "2026-03", month)
				return attendance.SummaryResponse{Month: month, TotalDays: 4}, tt.err
			}}

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/attendance/summary/2026-03", nil)
			c.Params = gin.Params{{Key: "month", Value: "2026-03"}}
			c.Set("user_id", "u-1")

			attendance.NewHandler(svc).GetSummary(c)

			assert.Equal(t, tt.want, w.Code)
		})
	}
}
