package components

import (
	"log/slog"

	"cleaning-feedback-bot/internal/domain/cooldown"
	"cleaning-feedback-bot/internal/domain/coupon"
	"cleaning-feedback-bot/internal/infra/spreadsheet"
	"cleaning-feedback-bot/internal/pkg/clock"
	"cleaning-feedback-bot/internal/pkg/config"
	"cleaning-feedback-bot/internal/pkg/metrics"
	"cleaning-feedback-bot/internal/usecase/commands"
	"cleaning-feedback-bot/internal/usecase/conversation"
	"cleaning-feedback-bot/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	ExportModule,
	usecaseCommandsModule,
	usecaseConversationModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	func(cfg config.Config) *cooldown.Guard {
		return cooldown.NewGuard(cfg.Bot.CooldownWindow, cfg.Bot.Location())
	},
	fx.Annotate(
		coupon.NewIssuer,
		fx.As(new(commands.CouponIssuer)),
	),
)

// ExportModule is everything the workbook dump needs; the CLI export uses it on its own.
var ExportModule = fx.Module("usecase/export",
	fx.Provide(
		fx.Annotate(
			spreadsheet.NewWriter,
			fx.As(new(commands.WorkbookWriter)),
		),
		commands.NewExporter,
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewFinalizeUseCase,
		commands.NewRegisterUseCase,
		func(x *commands.Exporter, m shared.Messenger, cfg config.Config, logger *slog.Logger) commands.ExportCommands {
			return commands.NewExportUseCase(x, m, cfg.Bot.AdminUserID, logger)
		},
	),
)

var usecaseConversationModule = fx.Module("usecase/conversation",
	fx.Provide(
		NewEngine,
	),
)

func NewEngine(
	m shared.Messenger,
	finalize commands.FinalizeCommands,
	users commands.UserCommands,
	store shared.ContinuationStore,
	sealer conversation.TokenSealer,
	mtr *metrics.Metrics,
	cfg config.Config,
	logger *slog.Logger,
) *conversation.Engine {
	return conversation.NewEngine(conversation.EngineDeps{
		Messenger:     m,
		Finalize:      finalize,
		Users:         users,
		Continuations: store,
		Sealer:        sealer,
		Metrics:       mtr,
		Logger:        logger,
		AdminID:       cfg.Bot.AdminUserID,
	})
}
