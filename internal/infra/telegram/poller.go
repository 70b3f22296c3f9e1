package telegram

import (
	"context"
	"log/slog"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type UpdateHandler interface {
	Handle(ctx context.Context, update tgbotapi.Update)
}

// Poller feeds getUpdates results to the handler one at a time.
type Poller struct {
	api     BotAPI
	handler UpdateHandler
	timeout int
	logger  *slog.Logger

	stopChan chan struct{}
	wg       sync.WaitGroup
}

func NewPoller(api BotAPI, handler UpdateHandler, timeout int, logger *slog.Logger) *Poller {
	return &Poller{
		api:      api,
		handler:  handler,
		timeout:  timeout,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

func (p *Poller) Start() {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = p.timeout
	updates := p.api.GetUpdatesChan(cfg)

	p.wg.Add(1)
	go p.run(updates)
	p.logger.Info("telegram polling started", slog.Int("timeout", p.timeout))
}

func (p *Poller) run(updates tgbotapi.UpdatesChannel) {
	defer p.wg.Done()
	for {
		select {
		case <-p.stopChan:
			return
		case u, ok := <-updates:
			if !ok {
				return
			}
			// an update in flight is finished even during shutdown
			p.handler.Handle(context.Background(), u)
		}
	}
}

// Stop returns once the update in flight, if any, is handled.
func (p *Poller) Stop() {
	close(p.stopChan)
	p.api.StopReceivingUpdates()
	p.wg.Wait()
	p.logger.Info("telegram polling stopped")
}
