//go:build unit

package repository

import (
	"context"
	"testing"

	"cleaning-feedback-bot/internal/infra"
	"cleaning-feedback-bot/internal/infra/db"
	"cleaning-feedback-bot/tests/common/builder"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockFeedbackWriteQueries struct {
	mock.Mock
}

func (m *MockFeedbackWriteQueries) InsertFeedback(ctx context.Context, dbtx db.DBTX, arg db.InsertFeedbackParams) (int64, error) {
	args := m.Called(ctx, dbtx, arg)
	return args.Get(0).(int64), args.Error(1)
}

func TestFeedbackCreate(t *testing.T) {
	t.Run("maintenance stores null general items", func(t *testing.T) {
		rec := builder.NewFeedbackBuilder().MustBuildDomain()

		mockQueries := new(MockFeedbackWriteQueries)
		mockQueries.On("InsertFeedback", mock.Anything, mock.Anything, mock.MatchedBy(func(p db.InsertFeedbackParams) bool {
			return p.CleaningType == "maintenance" && !p.Windows.Valid && !p.Cobweb.Valid && !p.Balcony.Valid
		})).Return(int64(7), nil)

		repo := NewFeedbackRepository(mockQueries, discardLogger())
		id, err := repo.Create(context.Background(), nil, rec)

		require.NoError(t, err)
		assert.Equal(t, int64(7), id)
		mockQueries.AssertExpectations(t)
	})

	t.Run("general stores every item", func(t *testing.T) {
		b := builder.NewFeedbackBuilder().General(false)
		rec := b.MustBuildDomain()
		want := b.BuildInfra(0)

		mockQueries := new(MockFeedbackWriteQueries)
		mockQueries.On("InsertFeedback", mock.Anything, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				p := args.Get(2).(db.InsertFeedbackParams)
				assert.Equal(t, pgtype.Bool{Bool: false, Valid: true}, p.Windows)
				assert.Equal(t, want.CleanerName, p.CleanerName)
				assert.Equal(t, want.CleanerRating, p.CleanerRating)
				assert.Equal(t, want.CreatedAt, p.CreatedAt)
			}).
			Return(int64(8), nil)

		repo := NewFeedbackRepository(mockQueries, discardLogger())
		_, err := repo.Create(context.Background(), nil, rec)

		require.NoError(t, err)
	})

	t.Run("foreign key violation", func(t *testing.T) {
		mockQueries := new(MockFeedbackWriteQueries)
		mockQueries.On("InsertFeedback", mock.Anything, mock.Anything, mock.Anything).
			Return(int64(0), &pgconn.PgError{Code: "23503"})

		repo := NewFeedbackRepository(mockQueries, discardLogger())
		_, err := repo.Create(context.Background(), nil, builder.NewFeedbackBuilder().MustBuildDomain())

		assert.True(t, infra.IsKind(err, infra.KindForeignKeyViolated))
	})
}
