package repository

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	cryptoDomain "github.com/allisson/secretcache/internal/crypto/domain"
	apperrors "github.com/allisson/secretcache/internal/errors"
	secretcacheDomain "github.com/allisson/secretcache/internal/secretcache/domain"
)

// preferencesFile is the on-disk YAML layout.
type preferencesFile struct {
	Entries map[string]entryRecord `yaml:"entries"`
}

type entryRecord struct {
	ID         string    `yaml:"id"`
	Value      string    `yaml:"value"`
	Algorithm  string    `yaml:"algorithm"`
	WrappedKey string    `yaml:"wrapped_key,omitempty"`
	CreatedAt  time.Time `yaml:"created_at"`
}

const lockRetryDelay = 10 * time.Millisecond

// FileEntryRepository persists entries in a private YAML preferences file.
// Writes replace the file atomically (temp file + rename) with mode 0600.
// CreateIfAbsent holds an OS lock on a sibling ".lock" file across load and save,
// so processes sharing the file agree on a single winner.
type FileEntryRepository struct {
	path string
	mu   sync.Mutex
	lock *flock.Flock
}

// NewFileEntryRepository creates a repository backed by the file at path. The file
// is created on first write.
func NewFileEntryRepository(path string) *FileEntryRepository {
	return &FileEntryRepository{path: path, lock: flock.New(path + ".lock")}
}

// Get returns the entry stored under name.
func (f *FileEntryRepository) Get(ctx context.Context, name string) (*secretcacheDomain.CacheEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	prefs, err := f.load()
	if err != nil {
		return nil, err
	}

	record, ok := prefs.Entries[name]
	if !ok {
		return nil, secretcacheDomain.ErrEntryNotFound
	}
	return record.toEntry(name)
}

// CreateIfAbsent stores entry unless its name is taken and returns the stored entry.
func (f *FileEntryRepository) CreateIfAbsent(
	ctx context.Context,
	entry *secretcacheDomain.CacheEntry,
) (*secretcacheDomain.CacheEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	unlock, err := f.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	prefs, err := f.load()
	if err != nil {
		return nil, err
	}

	if record, ok := prefs.Entries[entry.Name]; ok {
		return record.toEntry(entry.Name)
	}

	prefs.Entries[entry.Name] = newEntryRecord(entry)
	if err := f.save(prefs); err != nil {
		return nil, err
	}
	return cloneEntry(entry), nil
}

// acquire takes the cross-process lock, retrying until ctx is done.
func (f *FileEntryRepository) acquire(ctx context.Context) (func(), error) {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return nil, apperrors.Wrap(err, "failed to create preferences directory")
	}

	locked, err := f.lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to lock preferences file")
	}
	if !locked {
		return nil, apperrors.New("failed to lock preferences file")
	}
	return func() { _ = f.lock.Unlock() }, nil
}

func (f *FileEntryRepository) load() (*preferencesFile, error) {
	prefs := &preferencesFile{}

	data, err := os.ReadFile(f.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, apperrors.Wrap(err, "failed to read preferences file")
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, prefs); err != nil {
			return nil, apperrors.Wrap(err, "failed to parse preferences file")
		}
	}
	if prefs.Entries == nil {
		prefs.Entries = make(map[string]entryRecord)
	}
	return prefs, nil
}

func (f *FileEntryRepository) save(prefs *preferencesFile) error {
	data, err := yaml.Marshal(prefs)
	if err != nil {
		return apperrors.Wrap(err, "failed to encode preferences file")
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".prefs-*")
	if err != nil {
		return apperrors.Wrap(err, "failed to create temporary preferences file")
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return apperrors.Wrap(err, "failed to write preferences file")
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return apperrors.Wrap(err, "failed to sync preferences file")
	}
	if err := tmp.Close(); err != nil {
		return apperrors.Wrap(err, "failed to close preferences file")
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return apperrors.Wrap(err, "failed to set preferences file mode")
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		return apperrors.Wrap(err, "failed to replace preferences file")
	}
	return nil
}

func newEntryRecord(entry *secretcacheDomain.CacheEntry) entryRecord {
	record := entryRecord{
		ID:        entry.ID.String(),
		Value:     entry.Value,
		Algorithm: entry.Algorithm.String(),
		CreatedAt: entry.CreatedAt.UTC(),
	}
	if entry.HasWrappedKey() {
		record.WrappedKey = base64.StdEncoding.EncodeToString(entry.WrappedKey)
	}
	return record
}

func (r entryRecord) toEntry(name string) (*secretcacheDomain.CacheEntry, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid entry id for %q: %w", name, err)
	}

	var wrappedKey []byte
	if r.WrappedKey != "" {
		wrappedKey, err = base64.StdEncoding.DecodeString(r.WrappedKey)
		if err != nil {
			return nil, fmt.Errorf("invalid wrapped key for %q: %w", name, err)
		}
	}

	return &secretcacheDomain.CacheEntry{
		ID:         id,
		Name:       name,
		Value:      r.Value,
		Algorithm:  cryptoDomain.Algorithm(r.Algorithm),
		WrappedKey: wrappedKey,
		CreatedAt:  r.CreatedAt,
	}, nil
}
