package commands

//go:generate go run go.uber.org/mock/mockgen -source=register.go -destination=../../../tests/mock/commands/register.go -package=commandsmock

import (
	"context"
	"strings"

	"cleaning-feedback-bot/internal/pkg/errs"
	"cleaning-feedback-bot/internal/usecase/shared"
)

type UserCommands interface {
	// Register creates the user on first contact or renames an existing one.
	Register(ctx context.Context, userID int64, name string) error
}

type registerUseCaseImpl struct {
	uow shared.UnitOfWork
}

func NewRegisterUseCase(uow shared.UnitOfWork) UserCommands {
	return &registerUseCaseImpl{uow: uow}
}

func (uc *registerUseCaseImpl) Register(ctx context.Context, userID int64, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.New("user name is empty")
	}

	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Users().Register(ctx, tx.DB(), userID, name)
	})
}
