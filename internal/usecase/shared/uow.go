package shared

//go:generate go run go.uber.org/mock/mockgen -source=uow.go -destination=../../../tests/mock/shared/uow.go -package=sharedmock

import (
	"context"

	"cleaning-feedback-bot/internal/domain/feedback"
	"cleaning-feedback-bot/internal/domain/user"
	"cleaning-feedback-bot/internal/infra/db"
	"cleaning-feedback-bot/internal/usecase/readmodel"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error
}

type Tx interface {
	Users() UserRepository
	Feedback() FeedbackRepository
	DB() db.DBTX
}

type UserRepository interface {
	// EnsureExists inserts an empty row for a first-time user and leaves existing rows alone.
	EnsureExists(ctx context.Context, tx db.DBTX, userID int64, name string) error
	// Register inserts the user or renames an existing one. Submission fields stay as they are.
	Register(ctx context.Context, tx db.DBTX, userID int64, name string) error
	// LockForUpdate reads the row and holds it until the transaction ends.
	LockForUpdate(ctx context.Context, tx db.DBTX, userID int64) (*UserSnapshot, error)
	SaveSubmission(ctx context.Context, tx db.DBTX, u *user.User) error
}

type FeedbackRepository interface {
	Create(ctx context.Context, tx db.DBTX, rec *feedback.Record) (int64, error)
}

// ExportReadStore reads whole tables for the administrator dump.
type ExportReadStore interface {
	ListUsers(ctx context.Context, dbtx db.DBTX) ([]readmodel.UserRow, error)
	ListFeedback(ctx context.Context, dbtx db.DBTX) ([]readmodel.FeedbackRow, error)
}

// Stored as-is; LastCheck is parsed by the cooldown guard.
type UserSnapshot struct {
	ID        int64
	Name      string
	LastCheck string
	Coupon    *string
}
