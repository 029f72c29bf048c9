package notification_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"smg-portal/internal/notification"
	notificationerrors "smg-portal/internal/notification/errors"
	"smg-portal/internal/notification/mock"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	assert.NoError(t, json.Unmarshal(body, &env))
	return env
}

func TestNotificationHandler_List(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	svc := mock.NewMockService(ctrl)

	svc.EXPECT().
		List(gomock.Any(), "u-1", true).
		Return([]notification.NotificationResponse{{ID: "n-1"}, {ID: "n-2"}}, nil)

	h := notification.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/notifications?unread=true&page_size=1", nil)
	c.Set("user_id", "u-1")

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w.Body.Bytes())
	assert.True(t, env.Ok)
	var got []notification.NotificationResponse
	assert.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Len(t, got, 1)
	assert.Equal(t, "n-1", got[0].ID)
}

func TestNotificationHandler_MarkRead(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := mock.NewMockService(ctrl)
		svc.EXPECT().MarkRead(gomock.Any(), "u-1", "n-1").Return(nil)

		h := notification.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPatch, "/notifications/n-1/read", nil)
		c.Params = gin.Params{{Key: "id", Value: "n-1"}}
		c.Set("user_id", "u-1")

		h.MarkRead(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := mock.NewMockService(ctrl)
		svc.EXPECT().MarkRead(gomock.Any(), "u-1", "n-9").Return(notificationerrors.ErrNotificationNotFound)

		h := notification.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPatch, "/notifications/n-9/read", nil)
		c.Params = gin.Params{{Key: "id", Value: "n-9"}}
		c.Set("user_id", "u-1")

		h.MarkRead(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "NOT_FOUND", env.Error.Code)
	})
}
