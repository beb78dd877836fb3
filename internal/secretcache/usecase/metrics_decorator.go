package usecase

import (
	"context"
	"time"

	"github.com/allisson/secretcache/internal/metrics"
	secretcacheDomain "github.com/allisson/secretcache/internal/secretcache/domain"
)

// secretCacheUseCaseWithMetrics decorates SecretCacheUseCase with metrics instrumentation.
// Failed calls are recorded with the failure kind as status.
type secretCacheUseCaseWithMetrics struct {
	next    SecretCacheUseCase
	metrics metrics.BusinessMetrics
}

// NewSecretCacheUseCaseWithMetrics wraps a SecretCacheUseCase with metrics recording.
func NewSecretCacheUseCaseWithMetrics(
	useCase SecretCacheUseCase,
	m metrics.BusinessMetrics,
) SecretCacheUseCase {
	return &secretCacheUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// GetEncryptedSecret records metrics for encrypted secret retrieval.
func (s *secretCacheUseCaseWithMetrics) GetEncryptedSecret(ctx context.Context) (string, error) {
	start := time.Now()
	value, err := s.next.GetEncryptedSecret(ctx)
	s.record(ctx, "get_encrypted_secret", start, err)
	return value, err
}

// DecryptSecret records metrics for secret decryption.
func (s *secretCacheUseCaseWithMetrics) DecryptSecret(ctx context.Context) ([]byte, error) {
	start := time.Now()
	plaintext, err := s.next.DecryptSecret(ctx)
	s.record(ctx, "decrypt_secret", start, err)
	return plaintext, err
}

func (s *secretCacheUseCaseWithMetrics) record(
	ctx context.Context,
	operation string,
	start time.Time,
	err error,
) {
	status := "success"
	if err != nil {
		status = secretcacheDomain.KindName(err)
	}

	s.metrics.RecordOperation(ctx, "secretcache", operation, status)
	s.metrics.RecordDuration(ctx, "secretcache", operation, time.Since(start), status)
}
