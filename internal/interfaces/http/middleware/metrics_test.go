package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Swarup9437/pm-tool/internal/infrastructure/metrics"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPMetrics_LabelsByRoutePattern(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reg := metrics.NewRegistry(metrics.Config{Namespace: "mw"})

	r := gin.New()
	r.Use(HTTPMetrics(reg, "/health"))
	r.GET("/projects/:id/edit", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/projects/1/edit", "/projects/2/edit", "/health"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, w.Code)
	}

	count, err := testutil.GatherAndCount(reg.Gatherer(), "mw_http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count, "one series for the pattern, none for skipped paths")
}

func TestHTTPMetrics_NilObserver(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(HTTPMetrics(nil))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSwaggerProtection(t *testing.T) {
	gin.SetMode(gin.TestMode)
	serve := func(cfg SwaggerConfig, remote string) int {
		r := gin.New()
		r.GET("/swagger/*any", SwaggerProtection(cfg), func(c *gin.Context) { c.Status(http.StatusOK) })
		req := httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil)
		req.RemoteAddr = remote
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusNotFound, serve(SwaggerConfig{}, "10.0.0.1:1234"))
	assert.Equal(t, http.StatusOK, serve(SwaggerConfig{Enabled: true}, "10.0.0.1:1234"))

	restricted := SwaggerConfig{Enabled: true, AllowedIPs: []string{"127.0.0.1", "10.1.0.0/16"}}
	assert.Equal(t, http.StatusOK, serve(restricted, "127.0.0.1:1234"))
	assert.Equal(t, http.StatusOK, serve(restricted, "10.1.4.2:1234"))
	assert.Equal(t, http.StatusForbidden, serve(restricted, "192.168.1.5:1234"))
}
