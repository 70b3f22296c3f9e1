package bootstrap

import (
	"cleaning-feedback-bot/cmd/bootstrap/components"

	"go.uber.org/fx"
)

// CoreModule is config, logging and the pool; every command needs it.
var CoreModule = fx.Options(
	ConfigModule,
	LoggerModule,
	DBModule,
)

// Module is the full bot.
var Module = fx.Options(
	CoreModule,
	MetricsModule,
	TokenModule,
	TelegramModule,
	components.PersistenceModule,
	components.UseCaseModule,
	components.HandlerModule,
	components.JobsModule,
	fx.Invoke(StartIntake),
)

// ExportModule builds workbooks without Telegram.
var ExportModule = fx.Options(
	CoreModule,
	components.PersistenceModule,
	components.ExportModule,
)
