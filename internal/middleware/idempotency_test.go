package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"smg-portal/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

const (
	cacheKey = "idemp:/requests:u-1:abc"
	lockKey  = cacheKey + ":lock"
	ttl      = 24 * time.Hour
)

func newIdempotentRouter(t *testing.T, calls *int) (*gin.Engine, redismock.ClientMock) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rdb, mock := redismock.NewClientMock()

	r := gin.New()
	r.POST("/requests",
		func(c *gin.Context) { c.Set("user_id", "u-1"); c.Next() },
		middleware.Idempotency(rdb, ttl, zap.NewNop()),
		func(c *gin.Context) {
			*calls++
			c.JSON(http.StatusCreated, gin.H{"ok": true})
		},
	)
	return r, mock
}

func post(r *gin.Engine, key string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/requests", nil)
	if key != "" {
		req.Header.Set(middleware.IdempotencyHeader, key)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestIdempotency(t *testing.T) {
	t.Run("first call stores the response", func(t *testing.T) {
		calls := 0
		r, mock := newIdempotentRouter(t, &calls)

		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(true)
		mock.ExpectSet(cacheKey, `{"status":201,"body":{"ok":true}}`, ttl).SetVal("OK")
		mock.ExpectDel(lockKey).SetVal(1)

		w := post(r, "abc")

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("repeat call is replayed", func(t *testing.T) {
		calls := 0
		r, mock := newIdempotentRouter(t, &calls)

		mock.ExpectGet(cacheKey).SetVal(`{"status":201,"body":{"ok":true}}`)

		w := post(r, "abc")

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "true", w.Header().Get("Idempotent-Replayed"))
		assert.JSONEq(t, `{"ok":true}`, w.Body.String())
		assert.Zero(t, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("concurrent call is rejected", func(t *testing.T) {
		calls := 0
		r, mock := newIdempotentRouter(t, &calls)

		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(false)

		w := post(r, "abc")

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Zero(t, calls)
	})

	t.Run("redis outage fails open", func(t *testing.T) {
		calls := 0
		r, mock := newIdempotentRouter(t, &calls)

		mock.ExpectGet(cacheKey).SetErr(errors.New("connection refused"))

		w := post(r, "abc")

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, calls)
	})

	t.Run("no key skips redis", func(t *testing.T) {
		calls := 0
		r, mock := newIdempotentRouter(t, &calls)

		w := post(r, "")

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
