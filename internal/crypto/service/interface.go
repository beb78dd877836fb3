// Package service provides the cryptographic services used by the secret cache:
// AEAD ciphers (AES-256-GCM, ChaCha20-Poly1305), CipherKey generation and KMS
// keepers that wrap a CipherKey for persistence.
package service

import (
	"context"

	cryptoDomain "github.com/allisson/secretcache/internal/crypto/domain"
)

// AEAD defines the interface for Authenticated Encryption with Associated Data.
type AEAD interface {
	// Encrypt encrypts plaintext with optional AAD and returns ciphertext and nonce.
	Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error)

	// Decrypt decrypts ciphertext using the provided nonce and AAD.
	Decrypt(ciphertext, nonce, aad []byte) ([]byte, error)
}

// AEADManager defines the interface for creating AEAD cipher instances.
type AEADManager interface {
	// CreateCipher creates an AEAD cipher instance for the specified algorithm.
	CreateCipher(key []byte, alg cryptoDomain.Algorithm) (AEAD, error)
}

// KeyGenerator produces fresh CipherKeys.
type KeyGenerator interface {
	// Generate returns KeySize random bytes. Callers own the slice and must zero it.
	Generate() ([]byte, error)
}

// KMSKeeper wraps and unwraps key material with a key held by a KMS.
type KMSKeeper interface {
	Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	Close() error
}

// KMSService opens KMS keepers from provider URIs.
type KMSService interface {
	// OpenKeeper opens a keeper for the given URI (base64key://, hashivault://,
	// awskms://, gcpkms://, azurekeyvault://).
	OpenKeeper(ctx context.Context, keyURI string) (KMSKeeper, error)
}
