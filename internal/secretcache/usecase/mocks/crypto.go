package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockKeyGenerator is a mock implementation of KeyGenerator.
type MockKeyGenerator struct {
	mock.Mock
}

// Generate mocks the Generate method of KeyGenerator.
func (m *MockKeyGenerator) Generate() ([]byte, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockKMSKeeper is a mock implementation of KMSKeeper.
type MockKMSKeeper struct {
	mock.Mock
}

// Encrypt mocks the Encrypt method of KMSKeeper.
func (m *MockKMSKeeper) Encrypt(ctx context.Context, plaintext []byte) ([]byte, error) {
	args := m.Called(ctx, plaintext)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// Decrypt mocks the Decrypt method of KMSKeeper.
func (m *MockKMSKeeper) Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error) {
	args := m.Called(ctx, ciphertext)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// Close mocks the Close method of KMSKeeper.
func (m *MockKMSKeeper) Close() error {
	args := m.Called()
	return args.Error(0)
}
