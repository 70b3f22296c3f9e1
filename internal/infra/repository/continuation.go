package repository

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"cleaning-feedback-bot/internal/infra"
	"cleaning-feedback-bot/internal/infra/db"
	"cleaning-feedback-bot/internal/pkg/errs"
	"cleaning-feedback-bot/internal/pkg/pgconv"
	"cleaning-feedback-bot/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ContinuationQueries interface {
	InsertContinuation(ctx context.Context, dbtx db.DBTX, ref string, chatID int64, token string) error
	GetContinuation(ctx context.Context, dbtx db.DBTX, ref string) (db.Continuations, error)
	LatestContinuation(ctx context.Context, dbtx db.DBTX, chatID int64) (db.Continuations, error)
	DeleteContinuationsBefore(ctx context.Context, dbtx db.DBTX, cutoff pgtype.Timestamptz) (int64, error)
	DeleteChatContinuations(ctx context.Context, dbtx db.DBTX, chatID int64) (int64, error)
}

// ContinuationRepository runs outside of any unit of work: a parked token must survive a
// finalize rollback.
type ContinuationRepository struct {
	queries ContinuationQueries
	db      db.DBTX
	logger  *slog.Logger
	newRef  func() string
}

func NewContinuationRepository(queries ContinuationQueries, dbtx db.DBTX, logger *slog.Logger) *ContinuationRepository {
	return &ContinuationRepository{
		queries: queries,
		db:      dbtx,
		logger:  logger,
		newRef:  NewRef,
	}
}

// NewRef returns a 32-character ref, short enough to share callback data with a value.
func NewRef() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

func (r *ContinuationRepository) Park(ctx context.Context, chatID int64, token string) (string, error) {
	ref := r.newRef()
	if err := r.queries.InsertContinuation(ctx, r.db, ref, chatID, token); err != nil {
		return "", infra.WrapPgErr(r.logger, "failed to park continuation", err)
	}
	return ref, nil
}

func (r *ContinuationRepository) Resolve(ctx context.Context, ref string) (*shared.Continuation, error) {
	row, err := r.queries.GetContinuation(ctx, r.db, ref)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, errs.Mark(infra.WrapRepoErr(r.logger, infra.KindNotFound, "continuation not found", err), shared.ErrContinuationNotFound)
		}
		return nil, infra.WrapPgErr(r.logger, "failed to resolve continuation", err)
	}
	return toContinuation(row), nil
}

func (r *ContinuationRepository) Latest(ctx context.Context, chatID int64) (*shared.Continuation, error) {
	row, err := r.queries.LatestContinuation(ctx, r.db, chatID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, errs.Mark(infra.WrapRepoErr(r.logger, infra.KindNotFound, "no continuation for chat", err), shared.ErrContinuationNotFound)
		}
		return nil, infra.WrapPgErr(r.logger, "failed to load latest continuation", err)
	}
	return toContinuation(row), nil
}

func (r *ContinuationRepository) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	n, err := r.queries.DeleteContinuationsBefore(ctx, r.db, pgconv.TimeToPgtype(cutoff))
	if err != nil {
		return 0, infra.WrapPgErr(r.logger, "failed to purge continuations", err)
	}
	return n, nil
}

func (r *ContinuationRepository) CloseChat(ctx context.Context, chatID int64) (int64, error) {
	n, err := r.queries.DeleteChatContinuations(ctx, r.db, chatID)
	if err != nil {
		return 0, infra.WrapPgErr(r.logger, "failed to close chat continuations", err)
	}
	return n, nil
}

func toContinuation(row db.Continuations) *shared.Continuation {
	return &shared.Continuation{
		Ref:       row.Ref,
		ChatID:    row.ChatID,
		Token:     row.Token,
		CreatedAt: pgconv.TimeFromPgtype(row.CreatedAt),
	}
}
