//go:build unit

package telegram_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"cleaning-feedback-bot/internal/infra/telegram"
	"cleaning-feedback-bot/tests/common/tgtest"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
)

type recordingHandler struct {
	mu  sync.Mutex
	ids []int
}

func (h *recordingHandler) Handle(_ context.Context, u tgbotapi.Update) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ids = append(h.ids, u.UpdateID)
}

func (h *recordingHandler) seen() []int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]int(nil), h.ids...)
}

func TestPoller(t *testing.T) {
	bot := tgtest.NewFakeBot(1)
	h := &recordingHandler{}
	p := telegram.NewPoller(bot, h, 30, discardLogger())

	p.Start()
	for i := 1; i <= 3; i++ {
		bot.Push(tgbotapi.Update{UpdateID: i})
	}

	assert.Eventually(t, func() bool { return len(h.seen()) == 3 }, time.Second, 10*time.Millisecond)
	p.Stop()

	assert.Equal(t, []int{1, 2, 3}, h.seen())
}
