//go:build unit

package commands_test

import (
	"context"
	"testing"

	"cleaning-feedback-bot/internal/infra/db"
	"cleaning-feedback-bot/internal/usecase/commands"
	"cleaning-feedback-bot/internal/usecase/shared"
	sharedmock "cleaning-feedback-bot/tests/mock/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestRegister(t *testing.T) {
	setup := func(t *testing.T) (*sharedmock.MockUnitOfWork, *sharedmock.MockUserRepository, commands.UserCommands) {
		ctrl := gomock.NewController(t)
		uow := sharedmock.NewMockUnitOfWork(ctrl)
		tx := sharedmock.NewMockTx(ctrl)
		users := sharedmock.NewMockUserRepository(ctrl)

		tx.EXPECT().Users().Return(users).AnyTimes()
		tx.EXPECT().DB().Return(db.DBTX(nil)).AnyTimes()
		uow.EXPECT().Within(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
				return fn(ctx, tx)
			}).AnyTimes()
		return uow, users, commands.NewRegisterUseCase(uow)
	}

	t.Run("stores the trimmed name", func(t *testing.T) {
		_, users, uc := setup(t)
		users.EXPECT().Register(gomock.Any(), gomock.Any(), userID, "Анна").Return(nil)

		require.NoError(t, uc.Register(context.Background(), userID, "  Анна "))
	})

	t.Run("repository error is returned", func(t *testing.T) {
		_, users, uc := setup(t)
		users.EXPECT().Register(gomock.Any(), gomock.Any(), userID, "Анна").Return(assert.AnError)

		assert.ErrorIs(t, uc.Register(context.Background(), userID, "Анна"), assert.AnError)
	})

	t.Run("空の名前は保存しない", func(t *testing.T) {
		_, _, uc := setup(t)

		assert.Error(t, uc.Register(context.Background(), userID, "   "))
	})
}
