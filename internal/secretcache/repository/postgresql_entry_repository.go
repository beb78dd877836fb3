package repository

import (
	"context"
	"database/sql"
	"errors"

	apperrors "github.com/allisson/secretcache/internal/errors"
	secretcacheDomain "github.com/allisson/secretcache/internal/secretcache/domain"
)

// PostgreSQLEntryRepository implements CacheEntry persistence for PostgreSQL databases.
type PostgreSQLEntryRepository struct {
	db *sql.DB
}

// NewPostgreSQLEntryRepository creates a new PostgreSQL entry repository instance.
func NewPostgreSQLEntryRepository(db *sql.DB) *PostgreSQLEntryRepository {
	return &PostgreSQLEntryRepository{db: db}
}

// Get retrieves an entry by its name.
func (p *PostgreSQLEntryRepository) Get(ctx context.Context, name string) (*secretcacheDomain.CacheEntry, error) {
	query := `SELECT id, name, value, algorithm, wrapped_key, created_at 
			  FROM cache_entries 
			  WHERE name = $1`

	var entry secretcacheDomain.CacheEntry
	err := p.db.QueryRowContext(ctx, query, name).Scan(
		&entry.ID,
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

	return &entry, nil
}

// CreateIfAbsent inserts the entry unless its name already exists, then returns
// the row that is actually stored.
func (p *PostgreSQLEntryRepository) CreateIfAbsent(
	ctx context.Context,
	entry *secretcacheDomain.CacheEntry,
) (*secretcacheDomain.CacheEntry, error) {
	query := `INSERT INTO cache_entries (id, name, value, algorithm, wrapped_key, created_at) 
			  VALUES ($1, $2, $3, $4, $5, $6)
			  ON CONFLICT (name) DO NOTHING`

	_, err := p.db.ExecContext(
		ctx,
		query,
		entry.ID,
		entry.Name,
		entry.Value,
		entry.Algorithm,
		entry.WrappedKey,
		entry.CreatedAt,
	)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create cache entry")
	}

	return p.Get(ctx, entry.Name)
}
