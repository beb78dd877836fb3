package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	cryptoDomain "github.com/allisson/secretcache/internal/crypto/domain"
	apperrors "github.com/allisson/secretcache/internal/errors"
	secretcacheDomain "github.com/allisson/secretcache/internal/secretcache/domain"
)

// redisEntry is the JSON document stored under each key.
type redisEntry struct {
	ID         uuid.UUID `json:"id"`
	Value      string    `json:"value"`
	Algorithm  string    `json:"algorithm"`
	WrappedKey []byte    `json:"wrapped_key,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// RedisEntryRepository persists entries as JSON documents under prefixed keys.
// Entries never expire.
type RedisEntryRepository struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisEntryRepository creates a repository storing keys as prefix+name.
func NewRedisEntryRepository(client redis.UniversalClient, prefix string) *RedisEntryRepository {
	return &RedisEntryRepository{client: client, prefix: prefix}
}

// Get retrieves an entry by its name.
func (r *RedisEntryRepository) Get(ctx context.Context, name string) (*secretcacheDomain.CacheEntry, error) {
	data, err := r.client.Get(ctx, r.key(name)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, secretcacheDomain.ErrEntryNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get cache entry")
	}

	var doc redisEntry
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, apperrors.Wrap(err, "failed to decode cache entry")
	}

	return &secretcacheDomain.CacheEntry{
		ID:         doc.ID,
		Name:       name,
		Value:      doc.Value,
		Algorithm:  cryptoDomain.Algorithm(doc.Algorithm),
		WrappedKey: doc.WrappedKey,
		CreatedAt:  doc.CreatedAt,
	}, nil
}

// CreateIfAbsent stores the entry with SETNX and returns the stored entry.
func (r *RedisEntryRepository) CreateIfAbsent(
	ctx context.Context,
	entry *secretcacheDomain.CacheEntry,
) (*secretcacheDomain.CacheEntry, error) {
	data, err := json.Marshal(redisEntry{
		ID:         entry.ID,
		Value:      entry.Value,
		Algorithm:  entry.Algorithm.String(),
		WrappedKey: entry.WrappedKey,
		CreatedAt:  entry.CreatedAt,
	})
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to encode cache entry")
	}

	created, err := r.client.SetNX(ctx, r.key(entry.Name), data, 0).Result()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create cache entry")
	}
	if created {
		return cloneEntry(entry), nil
	}

	return r.Get(ctx, entry.Name)
}

func (r *RedisEntryRepository) key(name string) string {
	return r.prefix + name
}
