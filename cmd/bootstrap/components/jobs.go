package components

import (
	"context"
	"log/slog"

	"cleaning-feedback-bot/internal/infra/jobs"
	"cleaning-feedback-bot/internal/pkg/clock"
	"cleaning-feedback-bot/internal/pkg/config"
	"cleaning-feedback-bot/internal/usecase/shared"

	"go.uber.org/fx"
)

var JobsModule = fx.Module("jobs",
	fx.Provide(
		func(store shared.ContinuationStore, clk clock.Clock, cfg config.Config, logger *slog.Logger) *jobs.ContinuationPurgeJob {
			return jobs.NewContinuationPurgeJob(store, clk, cfg.Bot.ContinuationTTL, cfg.Bot.PurgeInterval, logger)
		},
	),
	fx.Invoke(registerPurgeJob),
)

func registerPurgeJob(lc fx.Lifecycle, job *jobs.ContinuationPurgeJob) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			job.Start()
			return nil
		},
		OnStop: func(_ context.Context) error {
			job.Stop()
			return nil
		},
	})
}
