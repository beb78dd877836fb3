package domain

import (
	"github.com/allisson/secretcache/internal/errors"
)

// Cryptographic operation error definitions.
//
// These wrap the standard errors from internal/errors so callers can branch on
// intent without knowing which primitive failed.
var (
	// ErrUnsupportedAlgorithm indicates the requested AEAD algorithm is not supported.
	ErrUnsupportedAlgorithm = errors.Wrap(errors.ErrInvalidInput, "unsupported algorithm")

	// ErrInvalidKeySize indicates a CipherKey is not exactly KeySize bytes.
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")

	// ErrInvalidEnvelope indicates a cached value is not valid Base64 or is too short
	// to hold a nonce and an authentication tag.
	ErrInvalidEnvelope = errors.Wrap(errors.ErrInvalidInput, "invalid envelope")

	// ErrDecryptionFailed indicates authentication failed while opening an envelope.
	// The precise cause (wrong key, wrong AAD, tampering) is not disclosed.
	ErrDecryptionFailed = errors.Wrap(errors.ErrInvalidInput, "decryption failed")
)
