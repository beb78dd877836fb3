// Package mocks provides testify mocks for the secret cache use case and its dependencies.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	secretcacheDomain "github.com/allisson/secretcache/internal/secretcache/domain"
)

// MockSecretSource is a mock implementation of SecretSource.
type MockSecretSource struct {
	mock.Mock
}

// Read mocks the Read method of SecretSource.
func (m *MockSecretSource) Read(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockEntryRepository is a mock implementation of EntryRepository.
type MockEntryRepository struct {
	mock.Mock
}

// Get mocks the Get method of EntryRepository.
func (m *MockEntryRepository) Get(ctx context.Context, name string) (*secretcacheDomain.CacheEntry, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*secretcacheDomain.CacheEntry), args.Error(1)
}

// CreateIfAbsent mocks the CreateIfAbsent method of EntryRepository.
func (m *MockEntryRepository) CreateIfAbsent(
	ctx context.Context,
	entry *secretcacheDomain.CacheEntry,
) (*secretcacheDomain.CacheEntry, error) {
	args := m.Called(ctx, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*secretcacheDomain.CacheEntry), args.Error(1)
}

// MockSecretCacheUseCase is a mock implementation of SecretCacheUseCase.
type MockSecretCacheUseCase struct {
	mock.Mock
}

// GetEncryptedSecret mocks the GetEncryptedSecret method of SecretCacheUseCase.
func (m *MockSecretCacheUseCase) GetEncryptedSecret(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// DecryptSecret mocks the DecryptSecret method of SecretCacheUseCase.
func (m *MockSecretCacheUseCase) DecryptSecret(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
