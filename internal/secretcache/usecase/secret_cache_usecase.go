package usecase

import (
	"context"
	"log/slog"

	"golang.org/x/sync/singleflight"

	cryptoDomain "github.com/allisson/secretcache/internal/crypto/domain"
	cryptoService "github.com/allisson/secretcache/internal/crypto/service"
	apperrors "github.com/allisson/secretcache/internal/errors"
	secretcacheDomain "github.com/allisson/secretcache/internal/secretcache/domain"
)

// secretCacheUseCase implements SecretCacheUseCase.
type secretCacheUseCase struct {
	name         string
	algorithm    cryptoDomain.Algorithm
	repo         EntryRepository
	source       SecretSource
	aeadManager  cryptoService.AEADManager
	keyGenerator cryptoService.KeyGenerator
	keeper       cryptoService.KMSKeeper
	logger       *slog.Logger

	// group serializes the check-then-create sequence per entry name.
	group singleflight.Group
}

// GetEncryptedSecret returns the cached value for the configured entry name. When
// the entry is absent it reads the secret, seals it under a fresh CipherKey and
// persists the result. Concurrent callers share a single execution, which is
// detached from any one caller's cancellation; ctx only bounds this caller's wait.
func (s *secretCacheUseCase) GetEncryptedSecret(ctx context.Context) (string, error) {
	shared := context.WithoutCancel(ctx)
	ch := s.group.DoChan(s.name, func() (any, error) {
		return s.getOrCreate(shared)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (s *secretCacheUseCase) getOrCreate(ctx context.Context) (string, error) {
	entry, err := s.repo.Get(ctx, s.name)
	if err == nil {
		return entry.Value, nil
	}
	if !apperrors.Is(err, apperrors.ErrNotFound) {
		return "", secretcacheDomain.NewStoreError(err)
	}

	secret, err := s.source.Read(ctx)
	if err != nil {
		return "", secretcacheDomain.NewSourceError(err)
	}
	defer cryptoDomain.Zero(secret)
	if len(secret) == 0 {
		return "", secretcacheDomain.NewSourceError(secretcacheDomain.ErrEmptySecret)
	}

	key, err := s.keyGenerator.Generate()
	if err != nil {
		return "", secretcacheDomain.NewCryptoError(err)
	}
	defer cryptoDomain.Zero(key)

	cipher, err := s.aeadManager.CreateCipher(key, s.algorithm)
	if err != nil {
		return "", secretcacheDomain.NewCryptoError(err)
	}

	ciphertext, nonce, err := cipher.Encrypt(secret, []byte(s.name))
	if err != nil {
		return "", secretcacheDomain.NewCryptoError(err)
	}

	var wrappedKey []byte
	if s.keeper != nil {
		wrappedKey, err = s.keeper.Encrypt(ctx, key)
		if err != nil {
			return "", secretcacheDomain.NewCryptoError(err)
		}
	}

	newEntry := secretcacheDomain.NewCacheEntry(
		s.name,
		cryptoDomain.EncodeEnvelope(nonce, ciphertext),
		s.algorithm,
		wrappedKey,
	)

	stored, err := s.repo.CreateIfAbsent(ctx, newEntry)
	if err != nil {
		return "", secretcacheDomain.NewStoreError(err)
	}

	if stored.ID != newEntry.ID {
		s.logger.Warn("cache entry already created by another writer",
			slog.String("name", s.name),
			slog.String("entry_id", stored.ID.String()),
		)
	} else {
		s.logger.Info("cache entry created",
			slog.String("name", s.name),
			slog.String("entry_id", stored.ID.String()),
			slog.String("algorithm", s.algorithm.String()),
			slog.Bool("key_persisted", newEntry.HasWrappedKey()),
		)
	}

	return stored.Value, nil
}

// DecryptSecret reads the entry, unwraps its CipherKey and opens the envelope.
func (s *secretCacheUseCase) DecryptSecret(ctx context.Context) ([]byte, error) {
	entry, err := s.repo.Get(ctx, s.name)
	if err != nil {
		return nil, secretcacheDomain.NewStoreError(err)
	}

	if !entry.HasWrappedKey() || s.keeper == nil {
		return nil, secretcacheDomain.NewCryptoError(secretcacheDomain.ErrKeyNotPersisted)
	}

	key, err := s.keeper.Decrypt(ctx, entry.WrappedKey)
	if err != nil {
		return nil, secretcacheDomain.NewCryptoError(err)
	}
	defer cryptoDomain.Zero(key)

	plaintext, err := Open(s.aeadManager, key, entry)
	if err != nil {
		return nil, secretcacheDomain.NewCryptoError(err)
	}
	return plaintext, nil
}

// Open decrypts an entry's value with the given CipherKey. The entry name is the
// AAD, so a value copied under another name does not open.
func Open(
	aeadManager cryptoService.AEADManager,
	key []byte,
	entry *secretcacheDomain.CacheEntry,
) ([]byte, error) {
	nonce, ciphertext, err := cryptoDomain.DecodeEnvelope(entry.Value)
	if err != nil {
		return nil, err
	}

	cipher, err := aeadManager.CreateCipher(key, entry.Algorithm)
	if err != nil {
		return nil, err
	}

	return cipher.Decrypt(ciphertext, nonce, []byte(entry.Name))
}

// NewSecretCacheUseCase creates the secret cache for a single entry name. keeper
// may be nil, in which case the CipherKey is discarded after encryption and
// DecryptSecret always fails.
func NewSecretCacheUseCase(
	name string,
	algorithm cryptoDomain.Algorithm,
	repo EntryRepository,
	source SecretSource,
	aeadManager cryptoService.AEADManager,
	keyGenerator cryptoService.KeyGenerator,
	keeper cryptoService.KMSKeeper,
	logger *slog.Logger,
) SecretCacheUseCase {
	return &secretCacheUseCase{
		name:         name,
		algorithm:    algorithm,
		repo:         repo,
		source:       source,
		aeadManager:  aeadManager,
		keyGenerator: keyGenerator,
		keeper:       keeper,
		logger:       logger,
	}
}
