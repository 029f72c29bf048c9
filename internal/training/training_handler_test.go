package training_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"smg-portal/internal/training"
	trainingerrors "smg-portal/internal/training/errors"
	trainingMock "smg-portal/internal/training/mock"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newContext(body string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPatch, "/training/enrollments/e-1", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: "e-1"}}
	c.Set("user_id", "u-1")
	return c, w
}

func TestTrainingHandler_UpdateEnrollment(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("updated", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := trainingMock.NewMockService(ctrl)
		svc.EXPECT().UpdateEnrollment(gomock.Any(), "u-1", "e-1", gomock.Any()).
			Return(training.EnrollmentResponse{ID: "e-1", EnrollmentStatus: "completed"}, nil)

		c, w := newContext(`{"enrollment_status":"completed","passed":true}`)
		training.NewHandler(svc).UpdateEnrollment(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"completed"`)
	})

	t.Run("unknown status", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := trainingMock.NewMockService(ctrl)

		c, w := newContext(`{"enrollment_status":"graduated"}`)
		training.NewHandler(svc).UpdateEnrollment(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := trainingMock.NewMockService(ctrl)
		svc.EXPECT().UpdateEnrollment(gomock.Any(), "u-1", "e-1", gomock.Any()).
			Return(training.EnrollmentResponse{}, trainingerrors.ErrEnrollmentNotFound)

		c, w := newContext(`{"passed":true}`)
		training.NewHandler(svc).UpdateEnrollment(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
