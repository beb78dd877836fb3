// Package source reads the bundled plaintext secret from a blob bucket.
package source

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"

	// Register bucket drivers
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/memblob"

	apperrors "github.com/allisson/secretcache/internal/errors"
)

// DefaultKey is the object holding the secret inside the bucket.
const DefaultKey = "app_key.txt"

// ErrSecretNotFound is returned when the bucket has no object under the key.
var ErrSecretNotFound = apperrors.Wrap(apperrors.ErrNotFound, "secret asset not found")

// BlobSource reads one object from a gocloud.dev bucket.
type BlobSource struct {
	bucket *blob.Bucket
	key    string
}

// Open opens the bucket at bucketURL (file:///path, mem://) and returns a source
// reading key from it.
func Open(ctx context.Context, bucketURL, key string) (*BlobSource, error) {
	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open secret bucket: %w", err)
	}
	return NewBlobSource(bucket, key), nil
}

// NewBlobSource wraps an already opened bucket.
func NewBlobSource(bucket *blob.Bucket, key string) *BlobSource {
	if key == "" {
		key = DefaultKey
	}
	return &BlobSource{bucket: bucket, key: key}
}

// Read returns the full content of the object.
func (s *BlobSource) Read(ctx context.Context) ([]byte, error) {
	data, err := s.bucket.ReadAll(ctx, s.key)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, apperrors.Join(ErrSecretNotFound, err)
		}
		return nil, fmt.Errorf("failed to read secret %q: %w", s.key, err)
	}
	return data, nil
}

// Write replaces the object with data.
func (s *BlobSource) Write(ctx context.Context, data []byte) error {
	if err := s.bucket.WriteAll(ctx, s.key, data, nil); err != nil {
		return fmt.Errorf("failed to write secret %q: %w", s.key, err)
	}
	return nil
}

// Close releases the bucket.
func (s *BlobSource) Close() error {
	return s.bucket.Close()
}

// DeriveAppKey returns hex(sha256(parts joined by ":")). The bundled key is built
// from the order id, order date, app name and a salt in that order.
func DeriveAppKey(parts ...string) (string, error) {
	if len(parts) == 0 {
		return "", apperrors.Wrap(apperrors.ErrInvalidInput, "no key parts given")
	}
	for i, part := range parts {
		if part == "" {
			return "", apperrors.Wrapf(apperrors.ErrInvalidInput, "key part %d is empty", i)
		}
	}
	sum := sha256.Sum256([]byte(strings.Join(parts, ":")))
	return hex.EncodeToString(sum[:]), nil
}
