// Package repository implements cache entry persistence. Every backend offers the
// same insert-if-absent contract: the first entry written under a name wins and is
// never replaced.
package repository

import (
	"context"
	"sync"

	secretcacheDomain "github.com/allisson/secretcache/internal/secretcache/domain"
)

// MemoryEntryRepository keeps entries in process memory. Durability ends with the
// process; it is meant for tests and ephemeral runs.
type MemoryEntryRepository struct {
	mu      sync.RWMutex
	entries map[string]secretcacheDomain.CacheEntry
}

// NewMemoryEntryRepository creates an empty in-memory repository.
func NewMemoryEntryRepository() *MemoryEntryRepository {
	return &MemoryEntryRepository{entries: make(map[string]secretcacheDomain.CacheEntry)}
}

// Get returns the entry stored under name.
func (m *MemoryEntryRepository) Get(ctx context.Context, name string) (*secretcacheDomain.CacheEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.entries[name]
	if !ok {
		return nil, secretcacheDomain.ErrEntryNotFound
	}
	return cloneEntry(&entry), nil
}

// CreateIfAbsent stores entry unless its name is taken and returns the stored entry.
func (m *MemoryEntryRepository) CreateIfAbsent(
	ctx context.Context,
	entry *secretcacheDomain.CacheEntry,
) (*secretcacheDomain.CacheEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.entries[entry.Name]; ok {
		return cloneEntry(&existing), nil
	}
	m.entries[entry.Name] = *cloneEntry(entry)
	return cloneEntry(entry), nil
}

// Len returns the number of stored entries.
func (m *MemoryEntryRepository) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

func cloneEntry(entry *secretcacheDomain.CacheEntry) *secretcacheDomain.CacheEntry {
	clone := *entry
	if entry.WrappedKey != nil {
		clone.WrappedKey = append([]byte(nil), entry.WrappedKey...)
	}
	return &clone
}
