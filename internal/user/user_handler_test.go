package user_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"smg-portal/internal/user"
	usererrors "smg-portal/internal/user/errors"
	userMock "smg-portal/internal/user/mock"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code string `json:"code"`
	} `json:"error"`
}

func newContext(method, path, body string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, path, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("user_id", "caller-1")
	return c, w
}

func TestUserHandler_Provision(t *testing.T) {
	gin.SetMode(gin.TestMode)
	body := `{"email":"new@smg.com","password":"secret123","user_data":{"full_name":"New Hire","role":"employee","department":"IT"}}`

	t.Run("created", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := userMock.NewMockService(ctrl)
		svc.EXPECT().
			Provision(gomock.Any(), "caller-1", gomock.Any()).
			DoAndReturn(func(_ any, _ string, req user.ProvisionRequest) (user.ProvisionResponse, error) {
				assert.Equal(t, "new@smg.com", req.Email)
				assert.Equal(t, "IT", req.UserData.Department)
				return user.ProvisionResponse{UID: "uid-1"}, nil
			})

		c, w := newContext(http.MethodPost, "/users", body)
		user.NewHandler(svc).Provision(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		var env apiEnvelope
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.JSONEq(t, `{"uid":"uid-1"}`, string(env.Data))
	})

	t.Run("invalid role rejected by binding", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := userMock.NewMockService(ctrl)

		c, w := newContext(http.MethodPost, "/users",
			`{"email":"new@smg.com","password":"secret123","user_data":{"full_name":"X","role":"root"}}`)
		user.NewHandler(svc).Provision(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("forbidden", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := userMock.NewMockService(ctrl)
		svc.EXPECT().Provision(gomock.Any(), "caller-1", gomock.Any()).
			Return(user.ProvisionResponse{}, usererrors.ErrNotSuperAdmin)

		c, w := newContext(http.MethodPost, "/users", body)
		user.NewHandler(svc).Provision(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
		var env apiEnvelope
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.Equal(t, "FORBIDDEN", env.Error.Code)
	})
}

func TestUserHandler_UpdateRole(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := userMock.NewMockService(ctrl)
		svc.EXPECT().UpdateRole(gomock.Any(), "caller-1", user.UpdateRoleRequest{
			UserID:           "target-1",
			Role:             "admin",
			AdminDepartments: []string{"HR"},
		}).Return(nil)

		c, w := newContext(http.MethodPatch, "/users/target-1/role", `{"role":"admin","admin_departments":["HR"]}`)
		c.Params = gin.Params{{Key: "id", Value: "target-1"}}
		user.NewHandler(svc).UpdateRole(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"success":true`)
	})

	t.Run("unknown user", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := userMock.NewMockService(ctrl)
		svc.EXPECT().UpdateRole(gomock.Any(), "caller-1", gomock.Any()).Return(usererrors.ErrUserNotFound)

		c, w := newContext(http.MethodPatch, "/users/missing/role", `{"role":"admin"}`)
		c.Params = gin.Params{{Key: "id", Value: "missing"}}
		user.NewHandler(svc).UpdateRole(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
