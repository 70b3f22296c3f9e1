//go:build unit

package repository

import (
	"context"
	"testing"
	"time"

	"cleaning-feedback-bot/internal/infra"
	"cleaning-feedback-bot/internal/infra/db"
	"cleaning-feedback-bot/internal/pkg/errs"
	"cleaning-feedback-bot/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockContinuationQueries struct {
	mock.Mock
}

func (m *MockContinuationQueries) InsertContinuation(ctx context.Context, dbtx db.DBTX, ref string, chatID int64, token string) error {
	args := m.Called(ctx, dbtx, ref, chatID, token)
	return args.Error(0)
}

func (m *MockContinuationQueries) GetContinuation(ctx context.Context, dbtx db.DBTX, ref string) (db.Continuations, error) {
	args := m.Called(ctx, dbtx, ref)
	return args.Get(0).(db.Continuations), args.Error(1)
}

func (m *MockContinuationQueries) LatestContinuation(ctx context.Context, dbtx db.DBTX, chatID int64) (db.Continuations, error) {
	args := m.Called(ctx, dbtx, chatID)
	return args.Get(0).(db.Continuations), args.Error(1)
}

func (m *MockContinuationQueries) DeleteContinuationsBefore(ctx context.Context, dbtx db.DBTX, cutoff pgtype.Timestamptz) (int64, error) {
	args := m.Called(ctx, dbtx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockContinuationQueries) DeleteChatContinuations(ctx context.Context, dbtx db.DBTX, chatID int64) (int64, error) {
	args := m.Called(ctx, dbtx, chatID)
	return args.Get(0).(int64), args.Error(1)
}

func newTestContinuationRepo(q *MockContinuationQueries) *ContinuationRepository {
	repo := NewContinuationRepository(q, nil, discardLogger())
	repo.newRef = func() string { return "ref1" }
	return repo
}

func TestNewRef(t *testing.T) {
	a, b := NewRef(), NewRef()
	assert.Len(t, a, 32)
	assert.NotContains(t, a, "-")
	assert.NotEqual(t, a, b)
}

func TestContinuationPark(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		q := new(MockContinuationQueries)
		q.On("InsertContinuation", mock.Anything, mock.Anything, "ref1", int64(5551234), "sealed").Return(nil)

		ref, err := newTestContinuationRepo(q).Park(context.Background(), 5551234, "sealed")

		require.NoError(t, err)
		assert.Equal(t, "ref1", ref)
		q.AssertExpectations(t)
	})

	t.Run("database error", func(t *testing.T) {
		q := new(MockContinuationQueries)
		q.On("InsertContinuation", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)

		_, err := newTestContinuationRepo(q).Park(context.Background(), 5551234, "sealed")

		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}

func TestContinuationLookup(t *testing.T) {
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	row := db.Continuations{Ref: "ref1", Seq: 3, ChatID: 5551234, Token: "sealed", CreatedAt: pgtype.Timestamptz{Time: created, Valid: true}}
	want := &shared.Continuation{Ref: "ref1", ChatID: 5551234, Token: "sealed", CreatedAt: created}

	t.Run("resolve", func(t *testing.T) {
		q := new(MockContinuationQueries)
		q.On("GetContinuation", mock.Anything, mock.Anything, "ref1").Return(row, nil)

		got, err := newTestContinuationRepo(q).Resolve(context.Background(), "ref1")

		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("latest", func(t *testing.T) {
		q := new(MockContinuationQueries)
		q.On("LatestContinuation", mock.Anything, mock.Anything, int64(5551234)).Return(row, nil)

		got, err := newTestContinuationRepo(q).Latest(context.Background(), 5551234)

		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("missing refs are marked", func(t *testing.T) {
		q := new(MockContinuationQueries)
		q.On("GetContinuation", mock.Anything, mock.Anything, "gone").Return(db.Continuations{}, pgx.ErrNoRows)
		q.On("LatestContinuation", mock.Anything, mock.Anything, int64(1)).Return(db.Continuations{}, pgx.ErrNoRows)
		repo := newTestContinuationRepo(q)

		_, err := repo.Resolve(context.Background(), "gone")
		assert.True(t, errs.Is(err, shared.ErrContinuationNotFound))
		assert.True(t, infra.IsKind(err, infra.KindNotFound))

		_, err = repo.Latest(context.Background(), 1)
		assert.True(t, errs.Is(err, shared.ErrContinuationNotFound))
	})

	t.Run("database error is not a miss", func(t *testing.T) {
		q := new(MockContinuationQueries)
		q.On("GetContinuation", mock.Anything, mock.Anything, "ref1").Return(db.Continuations{}, assert.AnError)

		_, err := newTestContinuationRepo(q).Resolve(context.Background(), "ref1")

		assert.False(t, errs.Is(err, shared.ErrContinuationNotFound))
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}

func TestContinuationPurge(t *testing.T) {
	cutoff := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	q := new(MockContinuationQueries)
	q.On("DeleteContinuationsBefore", mock.Anything, mock.Anything, pgtype.Timestamptz{Time: cutoff, Valid: true}).Return(int64(4), nil)

	n, err := newTestContinuationRepo(q).PurgeOlderThan(context.Background(), cutoff)

	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
}

func TestContinuationCloseChat(t *testing.T) {
	t.Run("drops the chat's refs", func(t *testing.T) {
		q := new(MockContinuationQueries)
		q.On("DeleteChatContinuations", mock.Anything, mock.Anything, int64(77)).Return(int64(18), nil)

		n, err := newTestContinuationRepo(q).CloseChat(context.Background(), 77)

		require.NoError(t, err)
		assert.Equal(t, int64(18), n)
		q.AssertExpectations(t)
	})

	t.Run("database error", func(t *testing.T) {
		q := new(MockContinuationQueries)
		q.On("DeleteChatContinuations", mock.Anything, mock.Anything, int64(77)).Return(int64(0), assert.AnError)

		_, err := newTestContinuationRepo(q).CloseChat(context.Background(), 77)

		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}
