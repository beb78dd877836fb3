// Package domain defines the cache entry model and the tagged errors of the secret
// cache. An entry is written once per name and never updated afterwards.
package domain

import (
	"time"

	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/secretcache/internal/crypto/domain"
)

// DefaultEntryName is the logical name under which the encrypted secret is cached.
const DefaultEntryName = "app_key_encrypted"

// CacheEntry is the persisted, encrypted representation of a secret.
type CacheEntry struct {
	// ID is a UUIDv7 assigned when the entry is built.
	ID uuid.UUID
	// Name is the fixed logical key (e.g. "app_key_encrypted").
	Name string
	// Value is Base64(nonce || ciphertext || tag) without line wrapping.
	Value string
	// Algorithm records the AEAD used to seal Value.
	Algorithm cryptoDomain.Algorithm
	// WrappedKey is the CipherKey encrypted by a KMS keeper. Empty when the key
	// was discarded after encryption.
	WrappedKey []byte
	// CreatedAt is the UTC time the entry was built.
	CreatedAt time.Time
}

// NewCacheEntry builds an entry ready to be persisted.
func NewCacheEntry(
	name, value string,
	alg cryptoDomain.Algorithm,
	wrappedKey []byte,
) *CacheEntry {
	return &CacheEntry{
		ID:         uuid.Must(uuid.NewV7()),
		Name:       name,
		Value:      value,
		Algorithm:  alg,
		WrappedKey: wrappedKey,
		CreatedAt:  time.Now().UTC(),
	}
}

// HasWrappedKey reports whether the CipherKey was persisted alongside the value,
// which is the only case in which the entry can be decrypted.
func (e *CacheEntry) HasWrappedKey() bool {
	return len(e.WrappedKey) > 0
}
