package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"testing"

	"gocloud.dev/secrets"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/secretcache/internal/crypto/domain"
)

// generateLocalSecretsURI generates a base64key:// URI for testing.
func generateLocalSecretsURI(t *testing.T) string {
	t.Helper()
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return "base64key://" + base64.URLEncoding.EncodeToString(key)
}

func TestKMSService_OpenKeeper(t *testing.T) {
	ctx := context.Background()
	kmsService := NewKMSService()

	t.Run("Success_LocalSecrets", func(t *testing.T) {
		keeper, err := kmsService.OpenKeeper(ctx, generateLocalSecretsURI(t))
		require.NoError(t, err)
		require.NotNil(t, keeper)
		defer func() {
			assert.NoError(t, keeper.Close())
		}()

		_, ok := keeper.(*secrets.Keeper)
		assert.True(t, ok, "keeper should be *secrets.Keeper")
	})

	t.Run("Error_InvalidURI", func(t *testing.T) {
		keeper, err := kmsService.OpenKeeper(ctx, "invalid://uri")
		assert.Error(t, err)
		assert.Nil(t, keeper)
		assert.Contains(t, err.Error(), "failed to open KMS keeper")
	})

	t.Run("Error_EmptyURI", func(t *testing.T) {
		keeper, err := kmsService.OpenKeeper(ctx, "")
		assert.Error(t, err)
		assert.Nil(t, keeper)
	})
}

func TestKMSService_WrapCipherKey(t *testing.T) {
	ctx := context.Background()
	kmsService := NewKMSService()

	keeper, err := kmsService.OpenKeeper(ctx, generateLocalSecretsURI(t))
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, keeper.Close())
	}()

	cipherKey, err := NewKeyGenerator().Generate()
	require.NoError(t, err)

	wrapped, err := keeper.Encrypt(ctx, cipherKey)
	require.NoError(t, err)
	assert.NotEqual(t, cipherKey, wrapped)

	unwrapped, err := keeper.Decrypt(ctx, wrapped)
	require.NoError(t, err)
	assert.Equal(t, cipherKey, unwrapped)
	assert.Len(t, unwrapped, cryptoDomain.KeySize)
}

func TestKMSService_DecryptWithOtherKeeper(t *testing.T) {
	ctx := context.Background()
	kmsService := NewKMSService()

	keeper1, err := kmsService.OpenKeeper(ctx, generateLocalSecretsURI(t))
	require.NoError(t, err)
	defer func() { _ = keeper1.Close() }()

	keeper2, err := kmsService.OpenKeeper(ctx, generateLocalSecretsURI(t))
	require.NoError(t, err)
	defer func() { _ = keeper2.Close() }()

	wrapped, err := keeper1.Encrypt(ctx, []byte("cipher-key"))
	require.NoError(t, err)

	unwrapped, err := keeper2.Decrypt(ctx, wrapped)
	assert.Error(t, err)
	assert.Nil(t, unwrapped)

	_, err = keeper1.Decrypt(ctx, []byte("not a valid ciphertext"))
	assert.Error(t, err)
}
