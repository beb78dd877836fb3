package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/allisson/secretcache/internal/source"
)

// SecretWriter stores the bundled secret.
type SecretWriter interface {
	Write(ctx context.Context, data []byte) error
}

// RunGenerateSecret derives the bundled app key from the order id, order date, app
// name and salt and writes it to the secret source. The key itself is not printed.
func RunGenerateSecret(
	ctx context.Context,
	secretWriter SecretWriter,
	logger *slog.Logger,
	writer io.Writer,
	orderID, orderDate, appName, salt string,
) error {
	appKey, err := source.DeriveAppKey(orderID, orderDate, appName, salt)
	if err != nil {
		return fmt.Errorf("failed to derive app key: %w", err)
	}

	if err := secretWriter.Write(ctx, []byte(appKey)); err != nil {
		return fmt.Errorf("failed to write app key: %w", err)
	}

	logger.Info("app key generated", slog.String("app_name", appName))
	_, err = fmt.Fprintln(writer, "app key generated and stored in the secret source")
	return err
}
