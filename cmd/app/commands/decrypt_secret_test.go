package commands

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/secretcache/internal/errors"
	secretcacheDomain "github.com/allisson/secretcache/internal/secretcache/domain"
	secretcacheMocks "github.com/allisson/secretcache/internal/secretcache/usecase/mocks"
)

func TestRunDecryptSecret(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()
	name := "app_key_encrypted"

	t.Run("text-output", func(t *testing.T) {
		mockUseCase := &secretcacheMocks.MockSecretCacheUseCase{}
		mockUseCase.On("DecryptSecret", ctx).Return([]byte("hello-key"), nil)

		var out bytes.Buffer
		err := RunDecryptSecret(ctx, mockUseCase, logger, &out, name, "text")

		require.NoError(t, err)
		require.Equal(t, "hello-key\n", out.String())
		mockUseCase.AssertExpectations(t)
	})

	t.Run("json-output", func(t *testing.T) {
		mockUseCase := &secretcacheMocks.MockSecretCacheUseCase{}
		mockUseCase.On("DecryptSecret", ctx).Return([]byte("hello-key"), nil)

		var out bytes.Buffer
		err := RunDecryptSecret(ctx, mockUseCase, logger, &out, name, "json")

		require.NoError(t, err)
		require.Contains(t, out.String(), `"plaintext": "hello-key"`)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("key-not-persisted", func(t *testing.T) {
		mockUseCase := &secretcacheMocks.MockSecretCacheUseCase{}
		mockUseCase.On("DecryptSecret", ctx).Return(nil, &secretcacheDomain.CacheError{
			Kind:  secretcacheDomain.ErrCryptoFailure,
			Cause: secretcacheDomain.ErrKeyNotPersisted,
		})

		err := RunDecryptSecret(ctx, mockUseCase, logger, &bytes.Buffer{}, name, "text")

		require.Error(t, err)
		require.ErrorIs(t, err, secretcacheDomain.ErrKeyNotPersisted)
		require.ErrorIs(t, err, apperrors.ErrInternal)
	})

	t.Run("invalid-format", func(t *testing.T) {
		mockUseCase := &secretcacheMocks.MockSecretCacheUseCase{}
		err := RunDecryptSecret(ctx, mockUseCase, logger, &bytes.Buffer{}, name, "xml")
		require.Error(t, err)
		require.Contains(t, err.Error(), "invalid format")
	})
}
