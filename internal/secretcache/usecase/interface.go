// Package usecase implements the secret cache: it serves the encrypted form of a
// bundled secret, creating and persisting it on first use.
package usecase

import (
	"context"

	secretcacheDomain "github.com/allisson/secretcache/internal/secretcache/domain"
)

// SecretSource reads the plaintext secret in its entirety.
type SecretSource interface {
	Read(ctx context.Context) ([]byte, error)
}

// EntryRepository persists cache entries. Get returns an error matching
// apperrors.ErrNotFound when the name is absent. CreateIfAbsent never overwrites
// and returns the entry that ends up stored.
type EntryRepository interface {
	Get(ctx context.Context, name string) (*secretcacheDomain.CacheEntry, error)
	CreateIfAbsent(
		ctx context.Context,
		entry *secretcacheDomain.CacheEntry,
	) (*secretcacheDomain.CacheEntry, error)
}

// SecretCacheUseCase defines the secret cache operations.
type SecretCacheUseCase interface {
	// GetEncryptedSecret returns the cached Base64 ciphertext, creating it on first use.
	GetEncryptedSecret(ctx context.Context) (string, error)

	// DecryptSecret opens the cached entry with its persisted CipherKey.
	//
	// Security Note: callers MUST zero the returned slice after use.
	DecryptSecret(ctx context.Context) ([]byte, error)
}
