package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/datashare/cmd/app/commands"
	"github.com/allisson/datashare/internal/app"
	"github.com/allisson/datashare/internal/config"
)

func getSystemCommands(version string) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "server",
			Usage: "Start the HTTP server",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunServer(ctx, version)
			},
		},
		{
			Name:  "migrate",
			Usage: "Run database migrations",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunMigrations(container.Logger(), cfg.DBDriver, cfg.DBConnectionString)
			},
		},
		{
			Name:  "seed-demo-data",
			Usage: "Insert a demo customer with accounts and transactions",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "customer-id",
					Aliases:  []string{"c"},
					Required: true,
					Usage:    "Internal customer identifier to own the demo data",
				},
				&cli.IntFlag{
					Name:    "accounts",
					Aliases: []string{"a"},
					Value:   2,
					Usage:   "Number of demo accounts to create",
				},
				&cli.IntFlag{
					Name:    "transactions",
					Aliases: []string{"t"},
					Value:   10,
					Usage:   "Number of demo transactions per account",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunSeedDemoData(
					ctx,
					container,
					commands.DefaultIO().Writer,
					cmd.String("customer-id"),
					int(cmd.Int("accounts")),
					int(cmd.Int("transactions")),
				)
			},
		},
	}
}
