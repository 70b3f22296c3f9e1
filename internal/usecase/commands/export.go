package commands

//go:generate go run go.uber.org/mock/mockgen -source=export.go -destination=../../../tests/mock/commands/export.go -package=commandsmock

import (
	"context"
	"fmt"
	"log/slog"

	"cleaning-feedback-bot/internal/infra/db"
	"cleaning-feedback-bot/internal/pkg/errs"
	"cleaning-feedback-bot/internal/usecase/readmodel"
	"cleaning-feedback-bot/internal/usecase/shared"
)

const (
	ExportFileName = "checklist_bot_db.xlsx"

	AccessDeniedText   = "У вас нет доступа к этой команде."
	exportFailedFormat = "Ошибка при создании или отправке файла: %s"
)

type WorkbookWriter interface {
	Write(users []readmodel.UserRow, feedback []readmodel.FeedbackRow) ([]byte, error)
}

type ExportCommands interface {
	// Build dumps both tables into a workbook.
	Build(ctx context.Context) ([]byte, error)
	// SendToAdmin delivers the workbook if chatID is the administrator and denies otherwise.
	SendToAdmin(ctx context.Context, chatID int64) error
}

// Exporter builds the workbook without delivering it. The CLI export uses it directly.
type Exporter struct {
	uow    shared.UnitOfWork
	reads  shared.ExportReadStore
	writer WorkbookWriter
}

func NewExporter(uow shared.UnitOfWork, reads shared.ExportReadStore, writer WorkbookWriter) *Exporter {
	return &Exporter{uow: uow, reads: reads, writer: writer}
}

func (x *Exporter) Build(ctx context.Context) ([]byte, error) {
	var (
		users    []readmodel.UserRow
		feedback []readmodel.FeedbackRow
	)
	err := x.uow.WithinReadOnly(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		var err error
		if users, err = x.reads.ListUsers(ctx, dbtx); err != nil {
			return err
		}
		feedback, err = x.reads.ListFeedback(ctx, dbtx)
		return err
	})
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return x.writer.Write(users, feedback)
}

type exportUseCaseImpl struct {
	*Exporter
	messenger shared.Messenger
	adminID   int64
	logger    *slog.Logger
}

func NewExportUseCase(
	exporter *Exporter,
	messenger shared.Messenger,
	adminID int64,
	logger *slog.Logger,
) ExportCommands {
	return &exportUseCaseImpl{
		Exporter:  exporter,
		messenger: messenger,
		adminID:   adminID,
		logger:    logger,
	}
}

func (uc *exportUseCaseImpl) SendToAdmin(ctx context.Context, chatID int64) error {
	if err := uc.authorize(chatID); err != nil {
		uc.logger.Warn("export denied", slog.Int64("chat_id", chatID))
		if _, sendErr := uc.messenger.SendText(ctx, chatID, AccessDeniedText); sendErr != nil {
			return errs.Wrap(sendErr, "failed to send access denied notice")
		}
		return nil
	}

	data, err := uc.Build(ctx)
	if err == nil {
		err = uc.messenger.SendDocument(ctx, chatID, ExportFileName, data)
	}
	if err != nil {
		uc.logger.Error("export failed", slog.String("error", err.Error()))
		if _, sendErr := uc.messenger.SendText(ctx, chatID, fmt.Sprintf(exportFailedFormat, err)); sendErr != nil {
			return errs.Wrap(sendErr, "failed to report export failure")
		}
		return nil
	}

	uc.logger.Info("export delivered", slog.Int("bytes", len(data)))
	return nil
}

func (uc *exportUseCaseImpl) authorize(chatID int64) error {
	if chatID != uc.adminID {
		return errs.ErrNotAdministrator
	}
	return nil
}
