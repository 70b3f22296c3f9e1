package bootstrap

import (
	"cleaning-feedback-bot/internal/pkg/config"
	"cleaning-feedback-bot/internal/pkg/token"
	"cleaning-feedback-bot/internal/usecase/conversation"

	"go.uber.org/fx"
)

var TokenModule = fx.Module("token",
	fx.Provide(
		fx.Annotate(
			NewSealer,
			fx.As(new(conversation.TokenSealer)),
		),
	),
)

func NewSealer(cfg config.Config) *token.Sealer {
	return token.NewSealer(cfg.Bot.TokenSecret)
}
