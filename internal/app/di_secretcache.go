package app

import (
	"context"
	"fmt"
	"net/url"

	"github.com/allisson/secretcache/internal/config"
	cryptoDomain "github.com/allisson/secretcache/internal/crypto/domain"
	apperrors "github.com/allisson/secretcache/internal/errors"
	"github.com/allisson/secretcache/internal/http"
	secretcacheHTTP "github.com/allisson/secretcache/internal/secretcache/http"
	"github.com/allisson/secretcache/internal/secretcache/repository"
	secretcacheUseCase "github.com/allisson/secretcache/internal/secretcache/usecase"
	"github.com/allisson/secretcache/internal/source"
)

// redisKeyPrefix namespaces entry keys in a shared redis database.
const redisKeyPrefix = "secretcache:"

// EntryRepository returns the entry store selected by STORE_DRIVER.
func (c *Container) EntryRepository() (secretcacheUseCase.EntryRepository, error) {
	var err error
	c.entryRepositoryInit.Do(func() {
		c.entryRepository, err = c.initEntryRepository()
		if err != nil {
			c.initErrors["entryRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["entryRepository"]; exists {
		return nil, storedErr
	}
	return c.entryRepository, nil
}

// SecretSource returns the blob source holding the plaintext secret.
func (c *Container) SecretSource() (*source.BlobSource, error) {
	var err error
	c.secretSourceInit.Do(func() {
		c.secretSource, err = source.Open(context.Background(), c.config.SecretSourceURL, c.config.SecretSourceKey)
		if err != nil {
			c.initErrors["secretSource"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["secretSource"]; exists {
		return nil, storedErr
	}
	return c.secretSource, nil
}

// SecretCacheUseCase returns the secret cache, wrapped with metrics when enabled.
func (c *Container) SecretCacheUseCase() (secretcacheUseCase.SecretCacheUseCase, error) {
	var err error
	c.secretCacheUseCaseInit.Do(func() {
		c.secretCacheUseCase, err = c.initSecretCacheUseCase()
		if err != nil {
			c.initErrors["secretCacheUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["secretCacheUseCase"]; exists {
		return nil, storedErr
	}
	return c.secretCacheUseCase, nil
}

// SecretHandler returns the HTTP handler for the secret endpoint.
func (c *Container) SecretHandler() (*secretcacheHTTP.SecretHandler, error) {
	var err error
	c.secretHandlerInit.Do(func() {
		var useCase secretcacheUseCase.SecretCacheUseCase
		useCase, err = c.SecretCacheUseCase()
		if err != nil {
			c.initErrors["secretHandler"] = err
			return
		}
		c.secretHandler = secretcacheHTTP.NewSecretHandler(useCase, c.config.CacheEntryName, c.Logger())
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["secretHandler"]; exists {
		return nil, storedErr
	}
	return c.secretHandler, nil
}

// StoreReadinessCheck reports the store ready when a lookup of the entry name
// succeeds or finds nothing.
func (c *Container) StoreReadinessCheck() http.ReadinessCheck {
	return func(ctx context.Context) error {
		repo, err := c.EntryRepository()
		if err != nil {
			return err
		}
		if _, err := repo.Get(ctx, c.config.CacheEntryName); err != nil &&
			!apperrors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		return nil
	}
}

func (c *Container) initEntryRepository() (secretcacheUseCase.EntryRepository, error) {
	switch c.config.StoreDriver {
	case config.StoreDriverMemory:
		return repository.NewMemoryEntryRepository(), nil
	case config.StoreDriverFile:
		return repository.NewFileEntryRepository(c.config.StoreFilePath), nil
	case config.StoreDriverPostgres:
		db, err := c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for entry repository: %w", err)
		}
		return repository.NewPostgreSQLEntryRepository(db), nil
	case config.StoreDriverMySQL:
		db, err := c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for entry repository: %w", err)
		}
		return repository.NewMySQLEntryRepository(db), nil
	case config.StoreDriverRedis:
		client, err := c.RedisClient()
		if err != nil {
			return nil, fmt.Errorf("failed to get redis client for entry repository: %w", err)
		}
		return repository.NewRedisEntryRepository(client, redisKeyPrefix), nil
	default:
		return nil, fmt.Errorf("unsupported store driver: %s", c.config.StoreDriver)
	}
}

func (c *Container) initSecretCacheUseCase() (secretcacheUseCase.SecretCacheUseCase, error) {
	algorithm, err := cryptoDomain.ParseAlgorithm(c.config.CipherAlgorithm)
	if err != nil {
		return nil, fmt.Errorf("invalid cipher algorithm: %w", err)
	}

	repo, err := c.EntryRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get entry repository for secret cache: %w", err)
	}

	secretSource, err := c.SecretSource()
	if err != nil {
		return nil, fmt.Errorf("failed to get secret source for secret cache: %w", err)
	}

	keyWrapper, err := c.KeyWrapper()
	if err != nil {
		return nil, fmt.Errorf("failed to get key wrapper for secret cache: %w", err)
	}

	useCase := secretcacheUseCase.NewSecretCacheUseCase(
		c.config.CacheEntryName,
		algorithm,
		repo,
		secretSource,
		c.AEADManager(),
		c.KeyGenerator(),
		keyWrapper,
		c.Logger(),
	)

	if !c.config.MetricsEnabled {
		return useCase, nil
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for secret cache: %w", err)
	}
	return secretcacheUseCase.NewSecretCacheUseCaseWithMetrics(useCase, businessMetrics), nil
}

// uriScheme returns only the scheme of a URI so key material in it is never logged.
func uriScheme(uri string) string {
	parsed, err := url.Parse(uri)
	if err != nil {
		return "invalid"
	}
	return parsed.Scheme
}
