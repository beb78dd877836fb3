package service

import (
	"crypto/rand"
	"fmt"
	"io"

	cryptoDomain "github.com/allisson/secretcache/internal/crypto/domain"
)

// RandomKeyGenerator draws CipherKeys from a cryptographically secure reader.
type RandomKeyGenerator struct {
	reader io.Reader
}

// NewKeyGenerator creates a generator backed by crypto/rand.
func NewKeyGenerator() *RandomKeyGenerator {
	return &RandomKeyGenerator{reader: rand.Reader}
}

// Generate returns a new 256-bit key.
func (g *RandomKeyGenerator) Generate() ([]byte, error) {
	key := make([]byte, cryptoDomain.KeySize)
	if _, err := io.ReadFull(g.reader, key); err != nil {
		return nil, fmt.Errorf("failed to generate cipher key: %w", err)
	}
	return key, nil
}
