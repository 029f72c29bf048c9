package response_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"smg-portal/internal/shared/apperror"
	"smg-portal/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	page, meta := response.Paginate(items, 2, 2)
	assert.Equal(t, []int{3, 4}, page)
	assert.Equal(t, int64(5), meta.Total)
	assert.Equal(t, 3, meta.TotalPages)

	page, _ = response.Paginate(items, 9, 2)
	assert.Empty(t, page)

	page, meta = response.Paginate(items, 0, 0)
	assert.Len(t, page, 5)
	assert.Equal(t, 10, meta.PageSize)
}

func TestFromError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	got := response.FromError(c, apperror.ErrForbidden)

	assert.Equal(t, http.StatusForbidden, got.Status)
	assert.Equal(t, http.StatusForbidden, w.Code)

	var env struct {
		Ok    bool `json:"ok"`
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.False(t, env.Ok)
	assert.Equal(t, apperror.CodeForbidden, env.Error.Code)
}
