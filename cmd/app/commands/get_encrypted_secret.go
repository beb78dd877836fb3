package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/allisson/secretcache/internal/secretcache/http/dto"
	secretcacheUseCase "github.com/allisson/secretcache/internal/secretcache/usecase"
)

// RunGetEncryptedSecret prints the cached ciphertext, encrypting and storing the
// bundled secret on first use. With async set the call runs on its own goroutine
// and the command waits on the pending result.
func RunGetEncryptedSecret(
	ctx context.Context,
	useCase secretcacheUseCase.SecretCacheUseCase,
	logger *slog.Logger,
	writer io.Writer,
	name string,
	async bool,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	logger.Info("getting encrypted secret", slog.String("name", name), slog.Bool("async", async))

	var (
		ciphertext string
		err        error
	)
	if async {
		ciphertext, err = secretcacheUseCase.GetEncryptedSecretAsync(ctx, useCase).Wait(ctx)
	} else {
		ciphertext, err = useCase.GetEncryptedSecret(ctx)
	}
	if err != nil {
		return fmt.Errorf("failed to get encrypted secret: %w", err)
	}

	if format == formatJSON {
		return writeJSON(writer, dto.MapSecretToResponse(name, ciphertext))
	}
	_, err = fmt.Fprintln(writer, ciphertext)
	return err
}
