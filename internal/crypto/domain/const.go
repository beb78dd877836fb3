// Package domain defines the cryptographic primitives shared by the secret cache:
// supported AEAD algorithms, key and nonce sizes, the ciphertext envelope and
// helpers for clearing key material from memory.
package domain

import "fmt"

// Algorithm represents the AEAD algorithm used to seal a cached secret.
//
// Both algorithms use a 256-bit key, a 12-byte random nonce and a 16-byte tag, so
// an envelope produced by either has the same length for the same plaintext.
type Algorithm string

const (
	// AESGCM represents AES-256-GCM. Preferred on CPUs with AES-NI.
	AESGCM Algorithm = "aes-gcm"

	// ChaCha20 represents ChaCha20-Poly1305. Preferred where AES hardware
	// acceleration is missing.
	ChaCha20 Algorithm = "chacha20-poly1305"
)

const (
	// KeySize is the size in bytes of every CipherKey (256 bits).
	KeySize = 32

	// NonceSize is the nonce size in bytes for both supported algorithms.
	NonceSize = 12

	// TagSize is the authentication tag size appended by both algorithms.
	TagSize = 16
)

// ParseAlgorithm converts a configuration string into an Algorithm.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch Algorithm(s) {
	case AESGCM, ChaCha20:
		return Algorithm(s), nil
	default:
		return "", fmt.Errorf("%w: %q (valid options: aes-gcm, chacha20-poly1305)", ErrUnsupportedAlgorithm, s)
	}
}

// String implements fmt.Stringer.
func (a Algorithm) String() string {
	return string(a)
}
