package jobs

import (
	"context"
	"log/slog"
	"time"

	"cleaning-feedback-bot/internal/pkg/clock"
	"cleaning-feedback-bot/internal/usecase/shared"
)

// ContinuationPurgeJob deletes parked tokens older than the TTL. A conversation whose
// token was purged can no longer be resumed and the user is asked to press /start.
type ContinuationPurgeJob struct {
	store    shared.ContinuationStore
	clock    clock.Clock
	ttl      time.Duration
	interval time.Duration
	logger   *slog.Logger

	stopChan chan struct{}
	done     chan struct{}
}

func NewContinuationPurgeJob(store shared.ContinuationStore, clk clock.Clock, ttl, interval time.Duration, logger *slog.Logger) *ContinuationPurgeJob {
	return &ContinuationPurgeJob{
		store:    store,
		clock:    clk,
		ttl:      ttl,
		interval: interval,
		logger:   logger,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (j *ContinuationPurgeJob) Start() {
	go j.run()
	j.logger.Info("continuation purge job started",
		slog.Duration("ttl", j.ttl),
		slog.Duration("interval", j.interval))
}

func (j *ContinuationPurgeJob) Stop() {
	close(j.stopChan)
	<-j.done
	j.logger.Info("continuation purge job stopped")
}

func (j *ContinuationPurgeJob) run() {
	defer close(j.done)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			j.RunOnce(context.Background())
		case <-j.stopChan:
			return
		}
	}
}

// RunOnce purges once and reports how many rows went.
func (j *ContinuationPurgeJob) RunOnce(ctx context.Context) int64 {
	cutoff := j.clock.Now().Add(-j.ttl)
	n, err := j.store.PurgeOlderThan(ctx, cutoff)
	if err != nil {
		j.logger.Error("failed to purge continuations", slog.String("error", err.Error()))
		return 0
	}
	if n > 0 {
		j.logger.Info("purged continuations", slog.Int64("count", n), slog.Time("cutoff", cutoff))
	}
	return n
}
