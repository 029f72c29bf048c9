package request_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"smg-portal/internal/request"
	requesterrors "smg-portal/internal/request/errors"
	requestMock "smg-portal/internal/request/mock"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newContext(method, target, body, role string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("user_id", "u-1")
	c.Set("role", role)
	return c, w
}

func TestRequestHandler_Create(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("created", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := requestMock.NewMockService(ctrl)
		svc.EXPECT().Create(gomock.Any(), "u-1", gomock.Any()).Return(request.RequestResponse{ID: "r-1", Status: "pending"}, nil)

		c, w := newContext(http.MethodPost, "/requests",
			`{"employee_name":"Asha","request_type":"leave","title":"Annual","approvers":[{"user_id":"a-1"}]}`, "employee")
		request.NewHandler(svc).Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"r-1"`)
	})

	t.Run("missing title", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := requestMock.NewMockService(ctrl)

		c, w := newContext(http.MethodPost, "/requests", `{"employee_name":"Asha","request_type":"leave"}`, "employee")
		request.NewHandler(svc).Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRequestHandler_List(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("employee scope=all falls back to own", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := requestMock.NewMockService(ctrl)
		svc.EXPECT().List(gomock.Any(), "u-1", false).Return([]request.RequestResponse{}, nil)

		c, w := newContext(http.MethodGet, "/requests?scope=all", "", "employee")
		request.NewHandler(svc).List(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("admin scope=all", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := requestMock.NewMockService(ctrl)
		svc.EXPECT().List(gomock.Any(), "u-1", true).Return([]request.RequestResponse{{ID: "r-1"}}, nil)

		c, w := newContext(http.MethodGet, "/requests?scope=all", "", "admin")
		request.NewHandler(svc).List(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRequestHandler_UpdateStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid transition is conflict", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := requestMock.NewMockService(ctrl)
		svc.EXPECT().
			UpdateStatus(gomock.Any(), "u-1", "r-1", request.UpdateStatusRequest{Status: "approved"}).
			Return(request.RequestResponse{}, requesterrors.ErrInvalidTransition)

		c, w := newContext(http.MethodPatch, "/requests/r-1/status", `{"status":"approved"}`, "admin")
		c.Params = gin.Params{{Key: "id", Value: "r-1"}}
		request.NewHandler(svc).UpdateStatus(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_STATE")
	})

	t.Run("unknown status rejected by binding", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := requestMock.NewMockService(ctrl)

		c, w := newContext(http.MethodPatch, "/requests/r-1/status", `{"status":"archived"}`, "admin")
		c.Params = gin.Params{{Key: "id", Value: "r-1"}}
		request.NewHandler(svc).UpdateStatus(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
