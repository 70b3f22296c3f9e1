// Package bot turns Telegram updates into engine and export calls.
package bot

//go:generate go run go.uber.org/mock/mockgen -source=dispatcher.go -destination=../../../tests/mock/bot/dispatcher.go -package=botmock

import (
	"context"
	"log/slog"
	"sync"

	"cleaning-feedback-bot/internal/infra/telegram"
	"cleaning-feedback-bot/internal/pkg/errs"
	"cleaning-feedback-bot/internal/pkg/metrics"
	"cleaning-feedback-bot/internal/usecase/commands"
	"cleaning-feedback-bot/internal/usecase/conversation"
	"cleaning-feedback-bot/internal/usecase/shared"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	commandStart  = "start"
	commandExport = "get_db"
)

const maxStackLines = 12

// update kinds, used as a metrics label
const (
	kindStart    = "start"
	kindExport   = "export"
	kindCallback = "callback"
	kindReply    = "reply"
	kindIgnored  = "ignored"
)

type Conversation interface {
	Start(ctx context.Context, chatID int64) error
	Handle(ctx context.Context, in conversation.Inbound) error
}

type CallbackAcker interface {
	AckCallback(ctx context.Context, callbackID string) error
}

// Dispatcher handles one update at a time, in arrival order, whichever intake delivers it.
type Dispatcher struct {
	mu sync.Mutex

	conversation Conversation
	export       commands.ExportCommands
	store        shared.ContinuationStore
	acker        CallbackAcker
	metrics      *metrics.Metrics
	logger       *slog.Logger
}

func NewDispatcher(
	conv Conversation,
	export commands.ExportCommands,
	store shared.ContinuationStore,
	acker CallbackAcker,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Dispatcher {
	return &Dispatcher{
		conversation: conv,
		export:       export,
		store:        store,
		acker:        acker,
		metrics:      m,
		logger:       logger,
	}
}

var _ telegram.UpdateHandler = (*Dispatcher)(nil)

// Handle logs failures instead of returning them; one bad update must not stop intake.
func (d *Dispatcher) Handle(ctx context.Context, u tgbotapi.Update) {
	d.mu.Lock()
	defer d.mu.Unlock()

	kind, chatID, err := d.dispatch(ctx, u)
	d.metrics.UpdatesHandled.WithLabelValues(kind).Inc()

	attrs := []any{
		slog.Int("update_id", u.UpdateID),
		slog.Int64("chat_id", chatID),
		slog.String("kind", kind),
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		if errs.Is(err, errs.ErrTransportFailed) {
			d.logger.Error("update failed in transport", attrs...)
			return
		}
		// store and engine failures are ours to debug, so keep where they came from
		attrs = append(attrs, slog.Any("stack", errs.ExtractStackLines(err, maxStackLines)))
		d.logger.Error("update failed", attrs...)
		return
	}
	d.logger.Debug("update handled", attrs...)
}

func (d *Dispatcher) dispatch(ctx context.Context, u tgbotapi.Update) (string, int64, error) {
	switch {
	case u.CallbackQuery != nil:
		return kindCallback, callbackChat(u.CallbackQuery), d.handleCallback(ctx, u.CallbackQuery)
	case u.Message != nil:
		return d.handleMessage(ctx, u.Message)
	default:
		return kindIgnored, 0, nil
	}
}

func (d *Dispatcher) handleMessage(ctx context.Context, msg *tgbotapi.Message) (string, int64, error) {
	chatID := msg.Chat.ID

	if msg.IsCommand() {
		switch msg.Command() {
		case commandStart:
			return kindStart, chatID, d.conversation.Start(ctx, chatID)
		case commandExport:
			return kindExport, chatID, d.export.SendToAdmin(ctx, chatID)
		}
	}

	// A plain reply answers the chat's latest prompt. With none parked the engine gets an
	// empty token and asks the user to start over.
	var tok string
	cont, err := d.store.Latest(ctx, chatID)
	switch {
	case err == nil:
		tok = cont.Token
	case errs.Is(err, shared.ErrContinuationNotFound):
	default:
		return kindReply, chatID, err
	}

	return kindReply, chatID, d.conversation.Handle(ctx, conversation.Inbound{
		ChatID:    chatID,
		UserID:    senderID(msg.From, chatID),
		MessageID: msg.MessageID,
		Token:     tok,
		Input:     conversation.Input{Text: msg.Text},
	})
}

func (d *Dispatcher) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) error {
	if err := d.acker.AckCallback(ctx, cq.ID); err != nil {
		d.logger.Warn("failed to answer callback", slog.String("error", err.Error()))
	}
	if cq.Message == nil {
		return nil
	}
	chatID := cq.Message.Chat.ID

	in := conversation.Inbound{
		ChatID:    chatID,
		UserID:    senderID(cq.From, chatID),
		MessageID: cq.Message.MessageID,
		Input:     conversation.Input{IsChoice: true},
	}

	value, ref, err := telegram.ParseCallback(cq.Data)
	if err == nil {
		in.Choice = value
		cont, rerr := d.store.Resolve(ctx, ref)
		switch {
		case rerr == nil:
			in.Token = cont.Token
		case errs.Is(rerr, shared.ErrContinuationNotFound):
		default:
			return rerr
		}
	}

	return d.conversation.Handle(ctx, in)
}

func callbackChat(cq *tgbotapi.CallbackQuery) int64 {
	if cq.Message != nil && cq.Message.Chat != nil {
		return cq.Message.Chat.ID
	}
	return 0
}

func senderID(from *tgbotapi.User, fallback int64) int64 {
	if from == nil {
		return fallback
	}
	return from.ID
}
