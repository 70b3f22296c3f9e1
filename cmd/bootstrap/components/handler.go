package components

import (
	"log/slog"

	"cleaning-feedback-bot/internal/handler"
	"cleaning-feedback-bot/internal/handler/api"
	"cleaning-feedback-bot/internal/handler/bot"
	"cleaning-feedback-bot/internal/handler/middleware"
	"cleaning-feedback-bot/internal/pkg/config"
	"cleaning-feedback-bot/internal/pkg/metrics"
	"cleaning-feedback-bot/internal/usecase/commands"
	"cleaning-feedback-bot/internal/usecase/conversation"
	"cleaning-feedback-bot/internal/usecase/shared"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		NewDispatcher,
		func(d *bot.Dispatcher) *api.WebhookHandler {
			return api.NewWebhookHandler(d)
		},
		func(cfg config.Config) *middleware.WebhookSecret {
			return middleware.NewWebhookSecret(cfg.Telegram.WebhookSecret)
		},
		func(
			cfg config.Config,
			logger *middleware.Logger,
			m *metrics.Metrics,
			webhook *api.WebhookHandler,
			secret *middleware.WebhookSecret,
		) handler.RouterDeps {
			return handler.RouterDeps{
				Config:        cfg,
				Logger:        logger,
				Metrics:       m,
				Webhook:       webhook,
				WebhookSecret: secret,
			}
		},
	),
	fx.Invoke(handler.NewRouter),
)

func NewDispatcher(
	engine *conversation.Engine,
	export commands.ExportCommands,
	store shared.ContinuationStore,
	acker bot.CallbackAcker,
	m *metrics.Metrics,
	logger *slog.Logger,
) *bot.Dispatcher {
	return bot.NewDispatcher(engine, export, store, acker, m, logger)
}
