package domain

import (
	"fmt"

	"github.com/allisson/secretcache/internal/errors"
)

// Failure kinds. Every error returned by the secret cache use case matches exactly
// one of these with errors.Is.
var (
	// ErrSourceUnavailable indicates the secret source is missing, unreadable or empty.
	ErrSourceUnavailable = errors.Wrap(errors.ErrUnavailable, "secret source unavailable")

	// ErrCryptoFailure indicates key generation, key wrapping, encryption or
	// decryption failed.
	ErrCryptoFailure = errors.Wrap(errors.ErrInternal, "crypto failure")

	// ErrStoreFailure indicates a read from or write to the entry store failed.
	ErrStoreFailure = errors.Wrap(errors.ErrUnavailable, "store failure")
)

// Causes that do not come from a dependency.
var (
	// ErrEntryNotFound is returned by repositories when no entry exists for a name.
	ErrEntryNotFound = errors.Wrap(errors.ErrNotFound, "cache entry not found")

	// ErrEmptySecret is the cause reported when the source yields zero bytes.
	ErrEmptySecret = errors.New("secret is empty")

	// ErrKeyNotPersisted is the cause reported when decryption is requested for an
	// entry that was written without a wrapped CipherKey.
	ErrKeyNotPersisted = errors.New("cipher key was not persisted")
)

// CacheError tags an originating cause with its failure kind.
type CacheError struct {
	Kind  error
	Cause error
}

// Error implements error.
func (e *CacheError) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Cause)
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *CacheError) Unwrap() []error {
	return []error{e.Kind, e.Cause}
}

// NewSourceError tags cause as ErrSourceUnavailable.
func NewSourceError(cause error) error {
	return &CacheError{Kind: ErrSourceUnavailable, Cause: cause}
}

// NewCryptoError tags cause as ErrCryptoFailure.
func NewCryptoError(cause error) error {
	return &CacheError{Kind: ErrCryptoFailure, Cause: cause}
}

// NewStoreError tags cause as ErrStoreFailure.
func NewStoreError(cause error) error {
	return &CacheError{Kind: ErrStoreFailure, Cause: cause}
}

// KindOf returns the failure kind of err, or nil when err is not a CacheError.
func KindOf(err error) error {
	var cacheErr *CacheError
	if errors.As(err, &cacheErr) {
		return cacheErr.Kind
	}
	return nil
}

// KindName returns a stable snake_case label for the failure kind of err, used in
// metrics and error responses. Errors without a kind are labeled "error".
func KindName(err error) string {
	switch KindOf(err) {
	case ErrSourceUnavailable:
		return "source_unavailable"
	case ErrCryptoFailure:
		return "crypto_failure"
	case ErrStoreFailure:
		return "store_failure"
	default:
		return "error"
	}
}
