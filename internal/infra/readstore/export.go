package readstore

import (
	"context"
	"log/slog"

	"cleaning-feedback-bot/internal/infra"
	"cleaning-feedback-bot/internal/infra/db"
	"cleaning-feedback-bot/internal/pkg/pgconv"
	"cleaning-feedback-bot/internal/usecase/readmodel"
)

type ExportReadQueries interface {
	ListUsers(ctx context.Context, dbtx db.DBTX) ([]db.Users, error)
	ListFeedback(ctx context.Context, dbtx db.DBTX) ([]db.Feedback, error)
}

type ExportReadStore struct {
	queries ExportReadQueries
	logger  *slog.Logger
}

func NewExportReadStore(queries ExportReadQueries, logger *slog.Logger) *ExportReadStore {
	return &ExportReadStore{
		queries: queries,
		logger:  logger,
	}
}

func (r *ExportReadStore) ListUsers(ctx context.Context, dbtx db.DBTX) ([]readmodel.UserRow, error) {
	rows, err := r.queries.ListUsers(ctx, dbtx)
	if err != nil {
		return nil, infra.WrapPgErr(r.logger, "failed to list users", err)
	}

	out := make([]readmodel.UserRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, readmodel.UserRow{
			UserID:    row.UserID,
			Name:      row.Name,
			LastCheck: pgconv.StringPtrFromPgtype(row.LastCheck),
			Coupon:    pgconv.StringPtrFromPgtype(row.Coupon),
		})
	}
	return out, nil
}

func (r *ExportReadStore) ListFeedback(ctx context.Context, dbtx db.DBTX) ([]readmodel.FeedbackRow, error) {
	rows, err := r.queries.ListFeedback(ctx, dbtx)
	if err != nil {
		return nil, infra.WrapPgErr(r.logger, "failed to list feedback", err)
	}

	out := make([]readmodel.FeedbackRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, toFeedbackRow(row))
	}
	return out, nil
}

func toFeedbackRow(row db.Feedback) readmodel.FeedbackRow {
	return readmodel.FeedbackRow{
		ID:                   row.ID,
		UserID:               row.UserID,
		Name:                 row.Name,
		CleanerName:          row.CleanerName,
		Address:              row.Address,
		CleaningType:         row.CleaningType,
		Surfaces:             row.Surfaces,
		Floor:                row.Floor,
		Bathrooms:            row.Bathrooms,
		Kitchen:              row.Kitchen,
		Trash:                row.Trash,
		Mirror:               row.Mirror,
		Windows:              pgconv.BoolPtrFromPgtype(row.Windows),
		Cobweb:               pgconv.BoolPtrFromPgtype(row.Cobweb),
		Balcony:              pgconv.BoolPtrFromPgtype(row.Balcony),
		CleanerRating:        int(row.CleanerRating),
		ManagerRating:        int(row.ManagerRating),
		RecommendationRating: int(row.RecommendationRating),
		Suggestions:          row.Suggestions,
		CreatedAt:            pgconv.TimeFromPgtype(row.CreatedAt),
	}
}
