package uow

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"time"

	"cleaning-feedback-bot/internal/infra/db"
	"cleaning-feedback-bot/internal/infra/repository"
	"cleaning-feedback-bot/internal/pkg/errs"
	"cleaning-feedback-bot/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

// retryPolicy bounds how often a write transaction is replayed after a
// serialization failure or deadlock.
type retryPolicy struct {
	attempts int
	base     time.Duration
}

// wait is base*2^n plus up to 20% jitter.
func (p retryPolicy) wait(n int) time.Duration {
	d := p.base << n
	return d + rand.N(d/5+1)
}

var defaultRetry = retryPolicy{attempts: 4, base: 100 * time.Millisecond}

type PostgresUoW struct {
	pool   *pgxpool.Pool
	q      *db.Queries
	logger *slog.Logger
	retry  retryPolicy
}

func NewPostgresUoW(pool *pgxpool.Pool, q *db.Queries, logger *slog.Logger) shared.UnitOfWork {
	return &PostgresUoW{pool: pool, q: q, logger: logger, retry: defaultRetry}
}

// Within runs fn in a read-committed transaction. Finalize serialises on the
// user row with SELECT ... FOR UPDATE, so a stronger level is not needed.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	opts := pgx.TxOptions{IsoLevel: pgx.ReadCommitted}

	var err error
	for n := 0; n < u.retry.attempts; n++ {
		if n > 0 {
			d := u.retry.wait(n - 1)
			u.logger.Warn("retrying transaction", "attempt", n+1, "wait_ms", d.Milliseconds(), "error", err.Error())
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(d):
			}
		}

		err = u.attempt(ctx, opts, fn)
		if err == nil || !retryable(err) {
			return err
		}
	}

	u.logger.Error("transaction failed after max retries", "attempts", u.retry.attempts, "error", err.Error())
	return errs.Mark(err, errMaxRetriesExceeded)
}

// attempt is one begin/fn/commit cycle. Kept separate from the retry loop so
// the deferred rollback fires per attempt.
func (u *PostgresUoW) attempt(ctx context.Context, opts pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	pgxTx, err := u.pool.BeginTx(ctx, opts)
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}
	defer u.rollback(ctx, pgxTx)

	if err := fn(ctx, &pgTx{dbtx: pgxTx, uow: u}); err != nil {
		return err
	}
	if err := pgxTx.Commit(ctx); err != nil {
		return errs.Mark(err, errTransactionCommit)
	}
	return nil
}

// WithinReadOnly gives fn one repeatable-read snapshot, so the export sees
// users and feedback as of the same instant.
func (u *PostgresUoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	pgxTx, err := u.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}
	defer u.rollback(ctx, pgxTx)

	if err := fn(ctx, pgxTx); err != nil {
		return err
	}
	return pgxTx.Commit(ctx)
}

func (u *PostgresUoW) WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, u.pool)
}

// rollback after a successful commit reports ErrTxClosed, which is expected.
func (u *PostgresUoW) rollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		u.logger.Warn("rollback failed", "error", err.Error())
	}
}

func retryable(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgErrCodeSerializationFailure || pgErr.Code == pgErrCodeDeadlockDetected
}

type pgTx struct {
	dbtx db.DBTX
	uow  *PostgresUoW

	users    shared.UserRepository
	feedback shared.FeedbackRepository
}

func (t *pgTx) DB() db.DBTX {
	return t.dbtx
}

func (t *pgTx) Users() shared.UserRepository {
	if t.users == nil {
		t.users = repository.NewUserRepository(t.uow.q, t.uow.logger)
	}
	return t.users
}

func (t *pgTx) Feedback() shared.FeedbackRepository {
	if t.feedback == nil {
		t.feedback = repository.NewFeedbackRepository(t.uow.q, t.uow.logger)
	}
	return t.feedback
}
