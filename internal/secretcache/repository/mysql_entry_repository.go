package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	apperrors "github.com/allisson/secretcache/internal/errors"
	secretcacheDomain "github.com/allisson/secretcache/internal/secretcache/domain"
)

// MySQLEntryRepository implements CacheEntry persistence for MySQL databases.
// IDs are stored as BINARY(16).
type MySQLEntryRepository struct {
	db *sql.DB
}

// NewMySQLEntryRepository creates a new MySQL entry repository instance.
func NewMySQLEntryRepository(db *sql.DB) *MySQLEntryRepository {
	return &MySQLEntryRepository{db: db}
}

// Get retrieves an entry by its name.
func (m *MySQLEntryRepository) Get(ctx context.Context, name string) (*secretcacheDomain.CacheEntry, error) {
	query := `SELECT id, name, value, algorithm, wrapped_key, created_at 
			  FROM cache_entries 
			  WHERE name = ?`

	var entry secretcacheDomain.CacheEntry
	var id []byte

	err := m.db.QueryRowContext(ctx, query, name).Scan(
		&id,
		&entry.Name,
		&entry.Value,
		&entry.Algorithm,
		&entry.WrappedKey,
		&entry.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, secretcacheDomain.ErrEntryNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get cache entry")
	}

	if err := entry.ID.UnmarshalBinary(id); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal cache entry id")
	}

	return &entry, nil
}

// CreateIfAbsent inserts the entry unless its name already exists, then returns
// the row that is actually stored.
func (m *MySQLEntryRepository) CreateIfAbsent(
	ctx context.Context,
	entry *secretcacheDomain.CacheEntry,
) (*secretcacheDomain.CacheEntry, error) {
	query := `INSERT IGNORE INTO cache_entries (id, name, value, algorithm, wrapped_key, created_at) 
			  VALUES (?, ?, ?, ?, ?, ?)`

	id, err := marshalID(entry.ID)
	if err != nil {
		return nil, err
	}

	_, err = m.db.ExecContext(
		ctx,
		query,
		id,
		entry.Name,
		entry.Value,
		entry.Algorithm,
		entry.WrappedKey,
		entry.CreatedAt,
	)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create cache entry")
	}

	return m.Get(ctx, entry.Name)
}

func marshalID(id uuid.UUID) ([]byte, error) {
	b, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal cache entry id")
	}
	return b, nil
}
