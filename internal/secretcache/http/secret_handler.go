// Package http provides the HTTP handler exposing the secret cache.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/secretcache/internal/httputil"
	"github.com/allisson/secretcache/internal/secretcache/http/dto"
	secretcacheUseCase "github.com/allisson/secretcache/internal/secretcache/usecase"
)

// SecretHandler handles HTTP requests for the cached secret.
type SecretHandler struct {
	useCase secretcacheUseCase.SecretCacheUseCase
	name    string
	logger  *slog.Logger
}

// NewSecretHandler creates a new secret handler serving the entry called name.
func NewSecretHandler(
	useCase secretcacheUseCase.SecretCacheUseCase,
	name string,
	logger *slog.Logger,
) *SecretHandler {
	return &SecretHandler{
		useCase: useCase,
		name:    name,
		logger:  logger,
	}
}

// GetEncryptedSecretHandler returns the encrypted secret, creating it on first use.
// GET /v1/secret
func (h *SecretHandler) GetEncryptedSecretHandler(c *gin.Context) {
	ciphertext, err := h.useCase.GetEncryptedSecret(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSecretToResponse(h.name, ciphertext))
}
