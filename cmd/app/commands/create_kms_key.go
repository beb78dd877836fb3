package commands

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"

	"gocloud.dev/secrets/localsecrets"

	cryptoService "github.com/allisson/secretcache/internal/crypto/service"
)

// RunCreateKMSKey generates a random local key and prints it as a base64key://
// KMS_KEY_URI. The URI is opened through kmsService before it is printed so a bad
// key never reaches the configuration.
//
// Security: local keys are for development. Use a cloud KMS or Vault URI in production.
func RunCreateKMSKey(
	ctx context.Context,
	kmsService cryptoService.KMSService,
	logger *slog.Logger,
	writer io.Writer,
) error {
	key, err := localsecrets.NewRandomKey()
	if err != nil {
		return fmt.Errorf("failed to generate kms key: %w", err)
	}
	keyURI := "base64key://" + base64.URLEncoding.EncodeToString(key[:])

	keeper, err := kmsService.OpenKeeper(ctx, keyURI)
	if err != nil {
		return fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	defer func() {
		if closeErr := keeper.Close(); closeErr != nil {
			logger.Error("failed to close KMS keeper", slog.Any("error", closeErr))
		}
	}()

	sample := []byte("secretcache")
	wrapped, err := keeper.Encrypt(ctx, sample)
	if err != nil {
		return fmt.Errorf("failed to encrypt with KMS key: %w", err)
	}
	if _, err := keeper.Decrypt(ctx, wrapped); err != nil {
		return fmt.Errorf("failed to decrypt with KMS key: %w", err)
	}

	logger.Info("kms key created")

	_, err = fmt.Fprintf(writer,
		"# Local KMS key. Never use base64key:// in production.\nKMS_KEY_URI=\"%s\"\n",
		keyURI,
	)
	return err
}
