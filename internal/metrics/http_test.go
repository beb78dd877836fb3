package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, provider *Provider) string {
	t.Helper()
	rec := httptest.NewRecorder()
	provider.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestHTTPMetricsMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	provider, err := NewProvider("secretcache")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	router := gin.New()
	router.Use(HTTPMetricsMiddleware(provider.MeterProvider(), "secretcache"))
	router.GET("/v1/secret", func(c *gin.Context) {
		if c.Query("fail") != "" {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "source_unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ciphertext": "Zm9v"})
	})

	for _, target := range []string{"/v1/secret", "/v1/secret", "/v1/secret?fail=1", "/nope/123"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	}

	body := scrape(t, provider)
	assert.Contains(t, body, "secretcache_http_requests_total")
	assert.Contains(t, body, "secretcache_http_request_duration_seconds")
	assert.Contains(t, body, "secretcache_http_requests_in_flight")
	assert.Contains(t, body, `path="/v1/secret"`)
	assert.Contains(t, body, `status_code="200"`)
	assert.Contains(t, body, `status_code="503"`)
	assert.Contains(t, body, `path="unknown"`)
	assert.NotContains(t, body, "/nope/123")
}

func TestRouteLabel(t *testing.T) {
	assert.Equal(t, "/v1/secret", routeLabel("/v1/secret"))
	assert.Equal(t, "/", routeLabel("/"))
	assert.Equal(t, unmatchedRoute, routeLabel(""))
}
