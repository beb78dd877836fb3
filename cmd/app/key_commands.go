package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/secretcache/cmd/app/commands"
	"github.com/allisson/secretcache/internal/app"
	"github.com/allisson/secretcache/internal/config"
)

func getKeyCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-kms-key",
			Usage: "Generate a local base64key:// KMS_KEY_URI for development",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container := app.NewContainer(config.Load())
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunCreateKMSKey(
					ctx,
					container.KMSService(),
					container.Logger(),
					commands.DefaultIO().Writer,
				)
			},
		},
	}
}
