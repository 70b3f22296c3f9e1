package db

import (
	"context"
	"log/slog"

	"cleaning-feedback-bot/internal/pkg/errs"
	"cleaning-feedback-bot/migrations"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// VersionTable is where goose records applied migrations.
const VersionTable = "goose_db_version"

// Migrate applies the embedded schema files that have not been applied yet. Each file
// runs in its own transaction together with its version row.
func Migrate(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger) error {
	// The provider is not closed: closing it would close the sql.DB wrapping the shared pool.
	provider, err := goose.NewProvider(goose.DialectPostgres, stdlib.OpenDBFromPool(pool), migrations.FS)
	if err != nil {
		return errs.Wrap(err, "failed to load migrations")
	}

	results, err := provider.Up(ctx)
	for _, r := range results {
		if r.Error != nil {
			continue
		}
		logger.Info("applied migration",
			slog.Int64("version", r.Source.Version),
			slog.String("file", r.Source.Path),
			slog.Duration("took", r.Duration))
	}
	if err != nil {
		return errs.Wrap(err, "failed to apply migrations")
	}
	return nil
}
