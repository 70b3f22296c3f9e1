package main

import (
	"context"
	"log/slog"

	"cleaning-feedback-bot/cmd/bootstrap"
	"cleaning-feedback-bot/internal/infra/db"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				pool   *pgxpool.Pool
				logger *slog.Logger
			)
			ctx := cmd.Context()
			stop, err := startOnce(ctx, bootstrap.CoreModule, fx.Populate(&pool, &logger))
			if err != nil {
				return err
			}
			defer stop()

			return db.Migrate(ctx, pool, logger)
		},
	}
}

// startOnce starts a short-lived app for a one-shot command. stop releases the pool.
func startOnce(ctx context.Context, opts ...fx.Option) (stop func(), err error) {
	app := fx.New(append(opts, fx.NopLogger)...)
	if err := app.Start(ctx); err != nil {
		return nil, err
	}
	return func() {
		if err := app.Stop(context.Background()); err != nil {
			slog.Error("failed to stop", "error", err)
		}
	}, nil
}
