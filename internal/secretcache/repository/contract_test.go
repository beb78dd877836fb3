package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/secretcache/internal/crypto/domain"
	apperrors "github.com/allisson/secretcache/internal/errors"
	secretcacheDomain "github.com/allisson/secretcache/internal/secretcache/domain"
)

type entryRepository interface {
	Get(ctx context.Context, name string) (*secretcacheDomain.CacheEntry, error)
	CreateIfAbsent(
		ctx context.Context,
		entry *secretcacheDomain.CacheEntry,
	) (*secretcacheDomain.CacheEntry, error)
}

// runEntryRepositoryContract checks the behaviour every backend must share.
// newRepo must return an empty repository on each call.
func runEntryRepositoryContract(t *testing.T, newRepo func(t *testing.T) entryRepository) {
	ctx := context.Background()

	t.Run("Get_NotFound", func(t *testing.T) {
		repo := newRepo(t)

		entry, err := repo.Get(ctx, secretcacheDomain.DefaultEntryName)
		assert.Nil(t, entry)
		assert.ErrorIs(t, err, secretcacheDomain.ErrEntryNotFound)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("CreateIfAbsent_ThenGet", func(t *testing.T) {
		repo := newRepo(t)
		entry := secretcacheDomain.NewCacheEntry(
			secretcacheDomain.DefaultEntryName,
			"Zm9v",
			cryptoDomain.AESGCM,
			[]byte("wrapped-key"),
		)

		stored, err := repo.CreateIfAbsent(ctx, entry)
		require.NoError(t, err)
		assert.Equal(t, entry.ID, stored.ID)
		assert.Equal(t, "Zm9v", stored.Value)

		got, err := repo.Get(ctx, secretcacheDomain.DefaultEntryName)
		require.NoError(t, err)
		assert.Equal(t, entry.ID, got.ID)
		assert.Equal(t, entry.Name, got.Name)
		assert.Equal(t, entry.Value, got.Value)
		assert.Equal(t, entry.Algorithm, got.Algorithm)
		assert.Equal(t, entry.WrappedKey, got.WrappedKey)
		assert.WithinDuration(t, entry.CreatedAt, got.CreatedAt, 0)
	})

	t.Run("CreateIfAbsent_KeepsFirstEntry", func(t *testing.T) {
		repo := newRepo(t)
		first := secretcacheDomain.NewCacheEntry("app_key_encrypted", "Zmlyc3Q=", cryptoDomain.AESGCM, nil)
		second := secretcacheDomain.NewCacheEntry("app_key_encrypted", "c2Vjb25k", cryptoDomain.ChaCha20, nil)

		_, err := repo.CreateIfAbsent(ctx, first)
		require.NoError(t, err)

		stored, err := repo.CreateIfAbsent(ctx, second)
		require.NoError(t, err)
		assert.Equal(t, first.ID, stored.ID)
		assert.Equal(t, "Zmlyc3Q=", stored.Value)
		assert.Empty(t, stored.WrappedKey)

		got, err := repo.Get(ctx, "app_key_encrypted")
		require.NoError(t, err)
		assert.Equal(t, "Zmlyc3Q=", got.Value)
	})

	t.Run("CreateIfAbsent_Concurrent", func(t *testing.T) {
		repo := newRepo(t)

		const writers = 8
		results := make([]string, writers)
		var wg sync.WaitGroup
		for i := 0; i < writers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				entry := secretcacheDomain.NewCacheEntry(
					"race",
					string(rune('a'+i)),
					cryptoDomain.AESGCM,
					nil,
				)
				stored, err := repo.CreateIfAbsent(ctx, entry)
				if assert.NoError(t, err) {
					results[i] = stored.Value
				}
			}(i)
		}
		wg.Wait()

		for _, v := range results {
			assert.Equal(t, results[0], v)
		}
	})

	t.Run("Names_AreIndependent", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.CreateIfAbsent(ctx, secretcacheDomain.NewCacheEntry("a", "YQ==", cryptoDomain.AESGCM, nil))
		require.NoError(t, err)
		_, err = repo.CreateIfAbsent(ctx, secretcacheDomain.NewCacheEntry("b", "Yg==", cryptoDomain.AESGCM, nil))
		require.NoError(t, err)

		a, err := repo.Get(ctx, "a")
		require.NoError(t, err)
		b, err := repo.Get(ctx, "b")
		require.NoError(t, err)
		assert.Equal(t, "YQ==", a.Value)
		assert.Equal(t, "Yg==", b.Value)
	})
}
