package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	cryptoDomain "github.com/allisson/secretcache/internal/crypto/domain"
	secretcacheUseCase "github.com/allisson/secretcache/internal/secretcache/usecase"
)

// decryptOutput is the JSON shape of decrypt-secret.
type decryptOutput struct {
	Name      string `json:"name"`
	Plaintext string `json:"plaintext"`
}

// RunDecryptSecret prints the plaintext of the cached entry.
//
// Requirements: KMS_KEY_URI must point to the key that wrapped the entry's cipher key.
func RunDecryptSecret(
	ctx context.Context,
	useCase secretcacheUseCase.SecretCacheUseCase,
	logger *slog.Logger,
	writer io.Writer,
	name string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	logger.Info("decrypting secret", slog.String("name", name))

	plaintext, err := useCase.DecryptSecret(ctx)
	if err != nil {
		return fmt.Errorf("failed to decrypt secret: %w", err)
	}
	defer cryptoDomain.Zero(plaintext)

	if format == formatJSON {
		return writeJSON(writer, decryptOutput{Name: name, Plaintext: string(plaintext)})
	}
	_, err = fmt.Fprintln(writer, string(plaintext))
	return err
}
