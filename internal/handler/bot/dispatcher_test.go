//go:build unit

package bot_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"cleaning-feedback-bot/internal/handler/bot"
	"cleaning-feedback-bot/internal/pkg/errs"
	"cleaning-feedback-bot/internal/pkg/metrics"
	"cleaning-feedback-bot/internal/usecase/conversation"
	"cleaning-feedback-bot/internal/usecase/shared"
	botmock "cleaning-feedback-bot/tests/mock/bot"
	commandsmock "cleaning-feedback-bot/tests/mock/commands"
	sharedmock "cleaning-feedback-bot/tests/mock/shared"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

const (
	chatID int64 = 5551234
	userID int64 = 42
	ref          = "0f8fad5bd9cb469fa16570867728950e"
)

type fixture struct {
	conv    *botmock.MockConversation
	export  *commandsmock.MockExportCommands
	store   *sharedmock.MockContinuationStore
	acker   *botmock.MockCallbackAcker
	metrics *metrics.Metrics
	d       *bot.Dispatcher
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	f := &fixture{
		conv:    botmock.NewMockConversation(ctrl),
		export:  commandsmock.NewMockExportCommands(ctrl),
		store:   sharedmock.NewMockContinuationStore(ctrl),
		acker:   botmock.NewMockCallbackAcker(ctrl),
		metrics: metrics.NewNop(),
	}
	f.d = bot.NewDispatcher(f.conv, f.export, f.store, f.acker, f.metrics,
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	return f
}

func message(id int, text string) *tgbotapi.Message {
	msg := &tgbotapi.Message{
		MessageID: id,
		From:      &tgbotapi.User{ID: userID},
		Chat:      &tgbotapi.Chat{ID: chatID},
		Text:      text,
	}
	if len(text) > 0 && text[0] == '/' {
		msg.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(text)}}
	}
	return msg
}

func callback(messageID int, data string) *tgbotapi.CallbackQuery {
	return &tgbotapi.CallbackQuery{
		ID:      "cb-1",
		From:    &tgbotapi.User{ID: userID},
		Message: &tgbotapi.Message{MessageID: messageID, Chat: &tgbotapi.Chat{ID: chatID}},
		Data:    data,
	}
}

func expectInbound(t *testing.T, conv *botmock.MockConversation, want conversation.Inbound) {
	conv.EXPECT().Handle(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, got conversation.Inbound) error {
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("inbound mismatch (-want +got):\n%s", diff)
			}
			return nil
		})
}

func TestDispatcherCommands(t *testing.T) {
	ctx := context.Background()

	t.Run("/start begins a conversation", func(t *testing.T) {
		f := newFixture(t)
		f.conv.EXPECT().Start(gomock.Any(), chatID).Return(nil)

		f.d.Handle(ctx, tgbotapi.Update{UpdateID: 1, Message: message(10, "/start")})

		assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.UpdatesHandled.WithLabelValues("start")))
	})

	t.Run("/get_db goes to export", func(t *testing.T) {
		f := newFixture(t)
		f.export.EXPECT().SendToAdmin(gomock.Any(), chatID).Return(nil)

		f.d.Handle(ctx, tgbotapi.Update{UpdateID: 2, Message: message(11, "/get_db")})
	})

	t.Run("unknown command is treated as a reply", func(t *testing.T) {
		f := newFixture(t)
		f.store.EXPECT().Latest(gomock.Any(), chatID).Return(nil, shared.ErrContinuationNotFound)
		expectInbound(t, f.conv, conversation.Inbound{
			ChatID: chatID, UserID: userID, MessageID: 12,
			Input: conversation.Input{Text: "/help"},
		})

		f.d.Handle(ctx, tgbotapi.Update{UpdateID: 3, Message: message(12, "/help")})
	})
}

func TestDispatcherReplies(t *testing.T) {
	ctx := context.Background()

	t.Run("text resumes the latest continuation", func(t *testing.T) {
		f := newFixture(t)
		f.store.EXPECT().Latest(gomock.Any(), chatID).Return(&shared.Continuation{Ref: ref, ChatID: chatID, Token: "sealed"}, nil)
		expectInbound(t, f.conv, conversation.Inbound{
			ChatID: chatID, UserID: userID, MessageID: 20, Token: "sealed",
			Input: conversation.Input{Text: "Анна"},
		})

		f.d.Handle(ctx, tgbotapi.Update{UpdateID: 4, Message: message(20, "Анна")})

		assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.UpdatesHandled.WithLabelValues("reply")))
	})

	t.Run("store failure stops the update", func(t *testing.T) {
		f := newFixture(t)
		f.store.EXPECT().Latest(gomock.Any(), chatID).Return(nil, errs.ErrDatabaseOperationFailed)

		f.d.Handle(ctx, tgbotapi.Update{UpdateID: 5, Message: message(21, "Анна")})
	})

	t.Run("updates without a message are ignored", func(t *testing.T) {
		f := newFixture(t)

		f.d.Handle(ctx, tgbotapi.Update{UpdateID: 6})

		assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.UpdatesHandled.WithLabelValues("ignored")))
	})
}

func TestDispatcherCallbacks(t *testing.T) {
	ctx := context.Background()

	t.Run("button press resolves its ref", func(t *testing.T) {
		f := newFixture(t)
		f.acker.EXPECT().AckCallback(gomock.Any(), "cb-1").Return(nil)
		f.store.EXPECT().Resolve(gomock.Any(), ref).Return(&shared.Continuation{Ref: ref, Token: "sealed"}, nil)
		expectInbound(t, f.conv, conversation.Inbound{
			ChatID: chatID, UserID: userID, MessageID: 30, Token: "sealed",
			Input: conversation.Input{Choice: "Ilya", IsChoice: true},
		})

		f.d.Handle(ctx, tgbotapi.Update{UpdateID: 7, CallbackQuery: callback(30, "Ilya:"+ref)})
	})

	t.Run("purged ref reaches the engine without a token", func(t *testing.T) {
		f := newFixture(t)
		f.acker.EXPECT().AckCallback(gomock.Any(), "cb-1").Return(nil)
		f.store.EXPECT().Resolve(gomock.Any(), ref).Return(nil, shared.ErrContinuationNotFound)
		expectInbound(t, f.conv, conversation.Inbound{
			ChatID: chatID, UserID: userID, MessageID: 31,
			Input: conversation.Input{Choice: "7", IsChoice: true},
		})

		f.d.Handle(ctx, tgbotapi.Update{UpdateID: 8, CallbackQuery: callback(31, "7:"+ref)})
	})

	t.Run("malformed data still reaches the engine", func(t *testing.T) {
		f := newFixture(t)
		f.acker.EXPECT().AckCallback(gomock.Any(), "cb-1").Return(nil)
		expectInbound(t, f.conv, conversation.Inbound{
			ChatID: chatID, UserID: userID, MessageID: 32,
			Input: conversation.Input{IsChoice: true},
		})

		f.d.Handle(ctx, tgbotapi.Update{UpdateID: 9, CallbackQuery: callback(32, "garbage")})
	})

	t.Run("ack failure does not block the answer", func(t *testing.T) {
		f := newFixture(t)
		f.acker.EXPECT().AckCallback(gomock.Any(), "cb-1").Return(errs.ErrTransportFailed)
		f.store.EXPECT().Resolve(gomock.Any(), ref).Return(&shared.Continuation{Token: "sealed"}, nil)
		f.conv.EXPECT().Handle(gomock.Any(), gomock.Any()).Return(nil)

		f.d.Handle(ctx, tgbotapi.Update{UpdateID: 10, CallbackQuery: callback(33, "g:"+ref)})
	})

	t.Run("メッセージなしのコールバック", func(t *testing.T) {
		f := newFixture(t)
		f.acker.EXPECT().AckCallback(gomock.Any(), "cb-1").Return(nil)
		cq := callback(0, "g:"+ref)
		cq.Message = nil

		f.d.Handle(ctx, tgbotapi.Update{UpdateID: 11, CallbackQuery: cq})

		assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.UpdatesHandled.WithLabelValues("callback")))
	})
}
