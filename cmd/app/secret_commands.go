package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/secretcache/cmd/app/commands"
	"github.com/allisson/secretcache/internal/app"
	"github.com/allisson/secretcache/internal/config"
)

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   "text",
		Usage:   "Output format: 'text' or 'json'",
	}
}

func getSecretCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "get-encrypted-secret",
			Usage: "Print the cached ciphertext, encrypting the bundled secret on first use",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:    "async",
					Aliases: []string{"a"},
					Value:   false,
					Usage:   "Run the operation in the background and wait for the pending result",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				if err := cfg.Validate(); err != nil {
					return err
				}
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				useCase, err := container.SecretCacheUseCase()
				if err != nil {
					return err
				}

				return commands.RunGetEncryptedSecret(
					ctx,
					useCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cfg.CacheEntryName,
					cmd.Bool("async"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "decrypt-secret",
			Usage: "Print the plaintext of the cached entry (requires KMS_KEY_URI)",
			Flags: []cli.Flag{formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				if err := cfg.Validate(); err != nil {
					return err
				}
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				useCase, err := container.SecretCacheUseCase()
				if err != nil {
					return err
				}

				return commands.RunDecryptSecret(
					ctx,
					useCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cfg.CacheEntryName,
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "generate-secret",
			Usage: "Derive the bundled app key and write it to the secret source",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "order-id",
					Sources:  cli.EnvVars("ORDER_ID"),
					Required: true,
					Usage:    "Order identifier",
				},
				&cli.StringFlag{
					Name:     "order-date",
					Sources:  cli.EnvVars("ORDER_DATE"),
					Required: true,
					Usage:    "Order date",
				},
				&cli.StringFlag{
					Name:     "app-name",
					Sources:  cli.EnvVars("APP_NAME"),
					Required: true,
					Usage:    "Application name",
				},
				&cli.StringFlag{
					Name:     "salt",
					Sources:  cli.EnvVars("SECRET_SALT"),
					Required: true,
					Usage:    "Secret salt",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container := app.NewContainer(config.Load())
				defer func() { _ = container.Shutdown(ctx) }()

				secretSource, err := container.SecretSource()
				if err != nil {
					return err
				}

				return commands.RunGenerateSecret(
					ctx,
					secretSource,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("order-id"),
					cmd.String("order-date"),
					cmd.String("app-name"),
					cmd.String("salt"),
				)
			},
		},
	}
}
