package metrics_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"smg-portal/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveJob(t *testing.T) {
	okBefore := testutil.ToFloat64(metrics.JobRunsTotal.WithLabelValues("test_job", metrics.ResultOK))
	errBefore := testutil.ToFloat64(metrics.JobRunsTotal.WithLabelValues("test_job", metrics.ResultError))

	metrics.ObserveJob("test_job", time.Now(), nil)
	metrics.ObserveJob("test_job", time.Now(), errors.New("boom"))

	assert.Equal(t, okBefore+1, testutil.ToFloat64(metrics.JobRunsTotal.WithLabelValues("test_job", metrics.ResultOK)))
	assert.Equal(t, errBefore+1, testutil.ToFloat64(metrics.JobRunsTotal.WithLabelValues("test_job", metrics.ResultError)))
}

func TestGinMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(metrics.GinMiddleware())
	r.GET("/requests/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/metrics", metrics.Handler())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/requests/abc", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `portal_http_requests_total{method="GET",path="/requests/:id",status="204"}`)
}
