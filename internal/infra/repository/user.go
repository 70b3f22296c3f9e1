package repository

import (
	"context"
	"log/slog"

	"cleaning-feedback-bot/internal/domain/cooldown"
	"cleaning-feedback-bot/internal/domain/user"
	"cleaning-feedback-bot/internal/infra"
	"cleaning-feedback-bot/internal/infra/db"
	"cleaning-feedback-bot/internal/pkg/pgconv"
	"cleaning-feedback-bot/internal/usecase/shared"
)

type UserWriteQueries interface {
	EnsureUser(ctx context.Context, dbtx db.DBTX, userID int64, name string) error
	UpsertUserName(ctx context.Context, dbtx db.DBTX, userID int64, name string) error
	LockUser(ctx context.Context, dbtx db.DBTX, userID int64) (db.Users, error)
	UpdateUserSubmission(ctx context.Context, dbtx db.DBTX, arg db.UpdateUserSubmissionParams) (int64, error)
}

type UserRepository struct {
	queries UserWriteQueries
	logger  *slog.Logger
}

func NewUserRepository(queries UserWriteQueries, logger *slog.Logger) *UserRepository {
	return &UserRepository{
		queries: queries,
		logger:  logger,
	}
}

func (r *UserRepository) EnsureExists(ctx context.Context, tx db.DBTX, userID int64, name string) error {
	if err := r.queries.EnsureUser(ctx, tx, userID, name); err != nil {
		return infra.WrapPgErr(r.logger, "failed to ensure user", err)
	}
	return nil
}

func (r *UserRepository) Register(ctx context.Context, tx db.DBTX, userID int64, name string) error {
	if err := r.queries.UpsertUserName(ctx, tx, userID, name); err != nil {
		return infra.WrapPgErr(r.logger, "failed to register user", err)
	}
	return nil
}

func (r *UserRepository) LockForUpdate(ctx context.Context, tx db.DBTX, userID int64) (*shared.UserSnapshot, error) {
	row, err := r.queries.LockUser(ctx, tx, userID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(r.logger, infra.KindNotFound, "user not found", err)
		}
		return nil, infra.WrapPgErr(r.logger, "failed to lock user", err)
	}

	return &shared.UserSnapshot{
		ID:        row.UserID,
		Name:      row.Name,
		LastCheck: pgconv.StringFromPgtype(row.LastCheck),
		Coupon:    pgconv.StringPtrFromPgtype(row.Coupon),
	}, nil
}

func (r *UserRepository) SaveSubmission(ctx context.Context, tx db.DBTX, u *user.User) error {
	if u.LastCheck() == nil || u.Coupon() == nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "user has no submission to save", nil)
	}

	n, err := r.queries.UpdateUserSubmission(ctx, tx, db.UpdateUserSubmissionParams{
		UserID:    u.ID(),
		Name:      u.Name(),
		LastCheck: cooldown.FormatLastCheck(*u.LastCheck()),
		Coupon:    u.Coupon().String(),
	})
	if err != nil {
		return infra.WrapPgErr(r.logger, "failed to update user", err)
	}
	if n == 0 {
		return infra.WrapRepoErr(r.logger, infra.KindNotFound, "user not found", nil)
	}
	return nil
}
