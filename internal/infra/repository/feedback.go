package repository

import (
	"context"
	"log/slog"

	"cleaning-feedback-bot/internal/domain/feedback"
	"cleaning-feedback-bot/internal/infra"
	"cleaning-feedback-bot/internal/infra/db"
	"cleaning-feedback-bot/internal/infra/repository/converter"
)

type FeedbackWriteQueries interface {
	InsertFeedback(ctx context.Context, dbtx db.DBTX, arg db.InsertFeedbackParams) (int64, error)
}

type FeedbackRepository struct {
	queries FeedbackWriteQueries
	logger  *slog.Logger
}

func NewFeedbackRepository(queries FeedbackWriteQueries, logger *slog.Logger) *FeedbackRepository {
	return &FeedbackRepository{
		queries: queries,
		logger:  logger,
	}
}

func (r *FeedbackRepository) Create(ctx context.Context, tx db.DBTX, rec *feedback.Record) (int64, error) {
	params := converter.FeedbackToInsertParams(rec)
	id, err := r.queries.InsertFeedback(ctx, tx, params)
	if err != nil {
		return 0, infra.WrapPgErr(r.logger, "failed to create feedback", err)
	}
	return id, nil
}
