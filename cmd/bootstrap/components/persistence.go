package components

import (
	"cleaning-feedback-bot/internal/infra/db"
	"cleaning-feedback-bot/internal/infra/readstore"
	"cleaning-feedback-bot/internal/infra/repository"
	"cleaning-feedback-bot/internal/infra/uow"
	"cleaning-feedback-bot/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	repositoryModule,
)

var baseOption = fx.Provide(
	NewQueries,
	NewDBTX,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		fx.Annotate(
			NewQueries,
			fx.As(new(readstore.ExportReadQueries)),
		),
		fx.Annotate(
			readstore.NewExportReadStore,
			fx.As(new(shared.ExportReadStore)),
		),
	),
)

var repositoryModule = fx.Module("persistence/repository",
	fx.Provide(
		// UnitOfWork builds the user and feedback repositories per transaction
		uow.NewPostgresUoW,
		// Continuation
		fx.Annotate(
			NewQueries,
			fx.As(new(repository.ContinuationQueries)),
		),
		fx.Annotate(
			repository.NewContinuationRepository,
			fx.As(new(shared.ContinuationStore)),
		),
	),
)

func NewQueries(_ *pgxpool.Pool) *db.Queries {
	return db.New()
}

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
