package bootstrap

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"cleaning-feedback-bot/internal/handler"
	"cleaning-feedback-bot/internal/handler/bot"
	"cleaning-feedback-bot/internal/infra/telegram"
	"cleaning-feedback-bot/internal/pkg/config"
	"cleaning-feedback-bot/internal/pkg/errs"
	"cleaning-feedback-bot/internal/usecase/shared"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/fx"
)

var TelegramModule = fx.Module("telegram",
	fx.Provide(
		fx.Annotate(
			NewBotAPI,
			fx.As(new(telegram.BotAPI)),
		),
	),
	TelegramClientModule,
)

// TelegramClientModule needs a telegram.BotAPI from elsewhere; tests supply a fake one.
var TelegramClientModule = fx.Options(
	fx.Provide(
		telegram.NewClient,
		func(c *telegram.Client) shared.Messenger { return c },
		func(c *telegram.Client) bot.CallbackAcker { return c },
	),
)

// NewBotAPI calls getMe, so a bad token fails startup.
func NewBotAPI(cfg config.Config) (*tgbotapi.BotAPI, error) {
	client := &http.Client{Timeout: cfg.Telegram.RequestTimeout}
	api, err := tgbotapi.NewBotAPIWithClient(cfg.Telegram.Token, tgbotapi.APIEndpoint, client)
	if err != nil {
		return nil, errs.Wrap(err, "failed to connect to telegram")
	}
	api.Debug = cfg.Telegram.Debug
	return api, nil
}

// WebhookURL is where Telegram posts updates: the public base URL plus the secret path.
func WebhookURL(cfg config.TelegramConfig) string {
	return strings.TrimRight(cfg.WebhookURL, "/") + handler.WebhookPath + "/" + cfg.WebhookSecret
}

// StartIntake runs the poller in polling mode; in webhook mode it registers the webhook
// and leaves delivery to the HTTP route.
func StartIntake(
	lc fx.Lifecycle,
	cfg config.Config,
	api telegram.BotAPI,
	client *telegram.Client,
	dispatcher *bot.Dispatcher,
	logger *slog.Logger,
) {
	if cfg.Telegram.Mode == config.ModeWebhook {
		lc.Append(fx.Hook{
			OnStart: func(_ context.Context) error {
				if cfg.Telegram.WebhookURL == "" {
					logger.Warn("TELEGRAM_WEBHOOK_URL is empty, expecting the webhook to be registered externally")
					return nil
				}
				return client.SetWebhook(WebhookURL(cfg.Telegram))
			},
		})
		return
	}

	poller := telegram.NewPoller(api, dispatcher, cfg.Telegram.PollTimeout, logger)
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			// getUpdates is refused while a webhook is set
			if err := client.DeleteWebhook(); err != nil {
				return err
			}
			poller.Start()
			return nil
		},
		OnStop: func(_ context.Context) error {
			poller.Stop()
			return nil
		},
	})
}
