package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/allisson/secretcache/internal/config"
	"github.com/allisson/secretcache/internal/metrics"
	secretcacheDomain "github.com/allisson/secretcache/internal/secretcache/domain"
	secretcacheHTTP "github.com/allisson/secretcache/internal/secretcache/http"
	usecaseMocks "github.com/allisson/secretcache/internal/secretcache/usecase/mocks"
)

// TestMain sets Gin to test mode for all tests in this package.
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func createTestServer(check ReadinessCheck) *Server {
	return NewServer(check, "localhost", 8080, discardLogger())
}

func TestHealthHandler(t *testing.T) {
	server := createTestServer(nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	server.healthHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, "healthy", response["status"])
}

func TestReadinessHandler(t *testing.T) {
	tests := []struct {
		name           string
		check          ReadinessCheck
		expectedStatus int
		expectedState  string
		expectedStore  string
	}{
		{
			name:           "nil check",
			check:          nil,
			expectedStatus: http.StatusServiceUnavailable,
			expectedState:  "not_ready",
			expectedStore:  "error",
		},
		{
			name:           "failing store",
			check:          func(ctx context.Context) error { return errors.New("connection refused") },
			expectedStatus: http.StatusServiceUnavailable,
			expectedState:  "not_ready",
			expectedStore:  "error",
		},
		{
			name:           "healthy store",
			check:          func(ctx context.Context) error { return nil },
			expectedStatus: http.StatusOK,
			expectedState:  "ready",
			expectedStore:  "ok",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := createTestServer(tt.check)

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/ready", nil)

			server.readinessHandler(c)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, tt.expectedState, response["status"])

			components, ok := response["components"].(map[string]interface{})
			require.True(t, ok)
			assert.Equal(t, tt.expectedStore, components["store"])
		})
	}
}

func TestCustomLoggerMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(discardLogger()))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "test"})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	requestID := w.Header().Get("X-Request-Id")
	parsedUUID, err := uuid.Parse(requestID)
	require.NoError(t, err, "X-Request-Id should be a valid UUID")
	assert.Equal(t, uuid.Version(7), parsedUUID.Version())
}

func TestRecoveryMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(CustomLoggerMiddleware(discardLogger()))
	router.GET("/panic", func(c *gin.Context) {
		panic("test panic")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func setupTestRouter(
	t *testing.T,
	cfg *config.Config,
	provider *metrics.Provider,
) (*Server, *usecaseMocks.MockSecretCacheUseCase) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	mockUseCase := &usecaseMocks.MockSecretCacheUseCase{}
	handler := secretcacheHTTP.NewSecretHandler(mockUseCase, secretcacheDomain.DefaultEntryName, discardLogger())

	server := createTestServer(func(ctx context.Context) error { return nil })
	server.SetupRouter(ctx, cfg, handler, provider, "test_app")
	return server, mockUseCase
}

func TestRouter_SecretEndpoint(t *testing.T) {
	server, mockUseCase := setupTestRouter(t, &config.Config{}, nil)
	mockUseCase.On("GetEncryptedSecret", mock.Anything).Return("Zm9v", nil).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/secret", nil)
	server.GetHandler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"name":"app_key_encrypted","ciphertext":"Zm9v"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
	mockUseCase.AssertExpectations(t)
}

func TestRouter_SecretEndpointRateLimited(t *testing.T) {
	cfg := &config.Config{
		RateLimitEnabled:        true,
		RateLimitRequestsPerSec: 0.1,
		RateLimitBurst:          1,
	}
	server, mockUseCase := setupTestRouter(t, cfg, nil)
	mockUseCase.On("GetEncryptedSecret", mock.Anything).Return("Zm9v", nil).Once()

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/secret", nil)
		server.GetHandler().ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests}, codes)

	// Health stays outside the limited group.
	w := httptest.NewRecorder()
	server.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_RecordsHTTPMetrics(t *testing.T) {
	provider, err := metrics.NewProvider("test_app")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	server, mockUseCase := setupTestRouter(t, &config.Config{}, provider)
	mockUseCase.On("GetEncryptedSecret", mock.Anything).Return("Zm9v", nil).Once()

	w := httptest.NewRecorder()
	server.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/secret", nil))
	require.Equal(t, http.StatusOK, w.Code)

	metricsW := httptest.NewRecorder()
	provider.Handler().ServeHTTP(metricsW, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, metricsW.Body.String(), "test_app_http_requests_total")
}

func TestRouter_NotFoundEndpoint(t *testing.T) {
	server, _ := setupTestRouter(t, &config.Config{}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/nonexistent", nil)
	server.GetHandler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServer_NoMetricsEndpoint(t *testing.T) {
	server, _ := setupTestRouter(t, &config.Config{}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	server.GetHandler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServer_ShutdownGracefully(t *testing.T) {
	server, _ := setupTestRouter(t, &config.Config{}, nil)
	server.server.Addr = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Start(ctx)
	}()

	time.Sleep(100 * time.Millisecond)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	assert.NoError(t, server.Shutdown(shutdownCtx))
	assert.NoError(t, <-errChan)
}

func TestMetricsServer_Endpoints(t *testing.T) {
	provider, err := metrics.NewProvider("test_app")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	metricsServer := NewMetricsServer("localhost", 8081, discardLogger(), provider)
	require.NotNil(t, metricsServer)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	metricsServer.GetHandler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")

	w = httptest.NewRecorder()
	metricsServer.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy","component":"metrics","exporting":true}`, w.Body.String())

	w = httptest.NewRecorder()
	metricsServer.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/metrics", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)

	assert.Equal(t, "localhost:8081", metricsServer.Addr())
}

func TestMetricsServer_WithoutProvider(t *testing.T) {
	metricsServer := NewMetricsServer("::1", 9090, discardLogger(), nil)
	assert.Equal(t, "[::1]:9090", metricsServer.Addr())

	w := httptest.NewRecorder()
	metricsServer.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	metricsServer.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy","component":"metrics","exporting":false}`, w.Body.String())
}
