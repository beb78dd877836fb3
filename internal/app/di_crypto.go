package app

import (
	"context"
	"fmt"
	"log/slog"

	cryptoService "github.com/allisson/secretcache/internal/crypto/service"
)

// AEADManager returns the AEAD manager service.
func (c *Container) AEADManager() cryptoService.AEADManager {
	c.aeadManagerInit.Do(func() {
		c.aeadManager = cryptoService.NewAEADManager()
	})
	return c.aeadManager
}

// KeyGenerator returns the CipherKey generator.
func (c *Container) KeyGenerator() cryptoService.KeyGenerator {
	c.keyGeneratorInit.Do(func() {
		c.keyGenerator = cryptoService.NewKeyGenerator()
	})
	return c.keyGenerator
}

// KMSService returns the KMS service.
func (c *Container) KMSService() cryptoService.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = cryptoService.NewKMSService()
	})
	return c.kmsService
}

// KeyWrapper returns the keeper that wraps CipherKeys, or nil when KMS_KEY_URI is
// not set.
func (c *Container) KeyWrapper() (cryptoService.KMSKeeper, error) {
	var err error
	c.keyWrapperInit.Do(func() {
		c.keyWrapper, err = c.initKeyWrapper()
		if err != nil {
			c.initErrors["keyWrapper"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["keyWrapper"]; exists {
		return nil, storedErr
	}
	if c.keyWrapper == nil {
		return nil, nil
	}
	return c.keyWrapper, nil
}

func (c *Container) initKeyWrapper() (cryptoService.KMSKeeper, error) {
	if c.config.KMSKeyURI == "" {
		c.Logger().Warn("KMS_KEY_URI not set, cipher keys will not be persisted and decryption is disabled")
		return nil, nil
	}

	keeper, err := c.KMSService().OpenKeeper(context.Background(), c.config.KMSKeyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open key wrapper: %w", err)
	}

	c.Logger().Info("key wrapper configured", slog.String("kms_key_uri_scheme", uriScheme(c.config.KMSKeyURI)))
	return keeper, nil
}
