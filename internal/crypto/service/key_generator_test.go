package service

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/secretcache/internal/crypto/domain"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy exhausted") }

func TestRandomKeyGenerator_Generate(t *testing.T) {
	t.Run("generates 256-bit keys", func(t *testing.T) {
		gen := NewKeyGenerator()

		k1, err := gen.Generate()
		require.NoError(t, err)
		k2, err := gen.Generate()
		require.NoError(t, err)

		assert.Len(t, k1, cryptoDomain.KeySize)
		assert.Len(t, k2, cryptoDomain.KeySize)
		assert.NotEqual(t, k1, k2)
	})

	t.Run("short reader fails", func(t *testing.T) {
		gen := &RandomKeyGenerator{reader: bytes.NewReader([]byte("short"))}
		_, err := gen.Generate()
		assert.Error(t, err)
	})

	t.Run("reader error", func(t *testing.T) {
		gen := &RandomKeyGenerator{reader: failingReader{}}
		_, err := gen.Generate()
		assert.ErrorContains(t, err, "entropy exhausted")
	})
}
