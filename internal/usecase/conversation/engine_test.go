//go:build unit

package conversation_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"cleaning-feedback-bot/internal/domain/coupon"
	"cleaning-feedback-bot/internal/domain/feedback"
	"cleaning-feedback-bot/internal/pkg/errs"
	"cleaning-feedback-bot/internal/pkg/metrics"
	"cleaning-feedback-bot/internal/pkg/token"
	"cleaning-feedback-bot/internal/usecase/commands"
	"cleaning-feedback-bot/internal/usecase/conversation"
	"cleaning-feedback-bot/internal/usecase/report"
	"cleaning-feedback-bot/internal/usecase/shared"
	commandsmock "cleaning-feedback-bot/tests/mock/commands"
	sharedmock "cleaning-feedback-bot/tests/mock/shared"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	chatID  int64 = 5551234
	adminID int64 = 1000
	secret        = "test-secret"
)

var (
	testCoupon = coupon.Code("QWERTY")
	finalizeAt = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
)

// harness plays the user side of a chat. Message ids grow across both sides, as in Telegram.
type harness struct {
	t         *testing.T
	messenger *sharedmock.MockMessenger
	finalize  *commandsmock.MockFinalizeCommands
	users     *commandsmock.MockUserCommands
	store     *sharedmock.MockContinuationStore
	metrics   *metrics.Metrics
	engine    *conversation.Engine

	registered  []string
	registerErr error
	closed      []int64
	closeErr    error

	msgID    int
	prompts  []shared.Prompt
	promptID []int
	events   []string
	deleted  []int
	request  *commands.FinalizeRequest
}

func newHarness(t *testing.T) *harness {
	ctrl := gomock.NewController(t)
	h := &harness{
		t:         t,
		messenger: sharedmock.NewMockMessenger(ctrl),
		finalize:  commandsmock.NewMockFinalizeCommands(ctrl),
		users:     commandsmock.NewMockUserCommands(ctrl),
		store:     sharedmock.NewMockContinuationStore(ctrl),
		metrics:   metrics.NewNop(),
		msgID:     100,
	}
	h.engine = conversation.NewEngine(conversation.EngineDeps{
		Messenger:     h.messenger,
		Finalize:      h.finalize,
		Users:         h.users,
		Continuations: h.store,
		Sealer:        token.NewSealer(secret),
		Metrics:       h.metrics,
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		AdminID:       adminID,
	})

	h.users.EXPECT().Register(gomock.Any(), chatID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, name string) error {
			h.registered = append(h.registered, name)
			return h.registerErr
		}).AnyTimes()
	h.store.EXPECT().CloseChat(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, id int64) (int64, error) {
			h.closed = append(h.closed, id)
			return 1, h.closeErr
		}).AnyTimes()

	h.messenger.EXPECT().SendPrompt(gomock.Any(), chatID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, p shared.Prompt) (int, error) {
			id := h.nextID()
			h.prompts = append(h.prompts, p)
			h.promptID = append(h.promptID, id)
			h.events = append(h.events, "prompt")
			return id, nil
		}).AnyTimes()
	h.messenger.EXPECT().SendText(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, to int64, text string) (int, error) {
			h.events = append(h.events, fmt.Sprintf("text:%d:%s", to, text))
			return h.nextID(), nil
		}).AnyTimes()
	h.messenger.EXPECT().Delete(gomock.Any(), chatID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, id int) error {
			h.deleted = append(h.deleted, id)
			h.events = append(h.events, "delete")
			return nil
		}).AnyTimes()
	return h
}

func (h *harness) nextID() int {
	h.msgID++
	return h.msgID
}

func (h *harness) last() shared.Prompt {
	require.NotEmpty(h.t, h.prompts, "no prompt sent yet")
	return h.prompts[len(h.prompts)-1]
}

func (h *harness) start() {
	require.NoError(h.t, h.engine.Start(context.Background(), chatID))
}

func (h *harness) reply(text string) error {
	return h.engine.Handle(context.Background(), conversation.Inbound{
		ChatID:    chatID,
		UserID:    chatID,
		MessageID: h.nextID(),
		Token:     h.last().Token,
		Input:     conversation.Input{Text: text},
	})
}

func (h *harness) press(value string) error {
	return h.engine.Handle(context.Background(), conversation.Inbound{
		ChatID:    chatID,
		UserID:    chatID,
		MessageID: h.promptID[len(h.promptID)-1],
		Token:     h.last().Token,
		Input:     conversation.Input{Choice: value, IsChoice: true},
	})
}

func (h *harness) recordFinalize(status commands.FinalizeStatus) {
	h.finalize.EXPECT().Finalize(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req commands.FinalizeRequest) (*commands.FinalizeResult, error) {
			h.request = &req
			if status == commands.FinalizeRejected {
				return &commands.FinalizeResult{Status: commands.FinalizeRejected}, nil
			}
			rec, err := feedback.NewRecord(req.Input, finalizeAt)
			if err != nil {
				return nil, err
			}
			return &commands.FinalizeResult{Status: commands.FinalizeRecorded, Record: rec.WithID(1), Coupon: testCoupon}, nil
		})
}

// walkToChecklist answers everything up to the first checklist item.
func (h *harness) walkToChecklist(serviceType string) {
	h.start()
	require.NoError(h.t, h.reply("Анна"))
	require.NoError(h.t, h.press("Ilya"))
	require.NoError(h.t, h.reply("ул. Ленина, 1"))
	require.NoError(h.t, h.press(serviceType))
}

func (h *harness) walkRatings() {
	require.NoError(h.t, h.press("10"))
	require.NoError(h.t, h.press("9"))
	require.NoError(h.t, h.press("8"))
}

func boolPtr(b bool) *bool { return &b }

func TestStart(t *testing.T) {
	h := newHarness(t)
	h.start()

	p := h.last()
	assert.Equal(t, "Добро пожаловать в чек-лист бота Rate Cleaning! Как Вас зовут?", p.Text)
	assert.Equal(t, shared.FreeText, p.Affordance)
	assert.NotEmpty(t, p.Token)
}

func TestPromptAffordances(t *testing.T) {
	h := newHarness(t)
	h.start()

	require.NoError(t, h.reply("Анна"))
	cleaner := h.last()
	assert.Equal(t, shared.InlineChoices, cleaner.Affordance)
	assert.Equal(t, []shared.Option{{Label: "Илья", Value: "Ilya"}, {Label: "Алексей", Value: "Alexey"}}, cleaner.Options)

	require.NoError(t, h.press("Alexey"))
	assert.Equal(t, shared.FreeText, h.last().Affordance)

	require.NoError(t, h.reply("Тверская 3"))
	serviceType := h.last()
	assert.Equal(t, []shared.Option{{Label: "Генеральная", Value: "g"}, {Label: "Поддерживающая", Value: "m"}}, serviceType.Options)

	require.NoError(t, h.press("g"))
	windows := h.last()
	assert.Equal(t, "Мойка окон:", windows.Text)
	assert.Equal(t, shared.ReplyKeyboard, windows.Affordance)
	assert.Equal(t, "Убрали ✅", windows.Options[0].Label)

	require.NoError(t, h.reply("Убрали ✅"))
	assert.Equal(t, "Чисто ✅", h.last().Options[0].Label)
	require.NoError(t, h.reply("Чисто ✅"))
	require.NoError(t, h.reply("Убрали ✅"))
	for range 5 {
		require.NoError(t, h.reply("Убрали ✅"))
	}
	require.Equal(t, "Зеркала:", h.last().Text)
	assert.Equal(t, "Помыли ✅", h.last().Options[0].Label)
	require.NoError(t, h.reply("Помыли ✅"))

	first := h.last()
	assert.Equal(t, shared.InlineChoices, first.Affordance)
	assert.Len(t, first.Options, 10)
	assert.Equal(t, "1", first.Options[0].Value)
	assert.Equal(t, "10", first.Options[9].Value)
	assert.True(t, first.RemoveKeyboard, "the checklist keyboard is hidden before the first rating")

	require.NoError(t, h.press("5"))
	assert.False(t, h.last().RemoveKeyboard)
}

func TestScenarios(t *testing.T) {
	t.Run("A: maintenance, every item done, no suggestions", func(t *testing.T) {
		h := newHarness(t)
		h.recordFinalize(commands.FinalizeRecorded)

		h.walkToChecklist("m")
		assert.Equal(t, "Пыль и загрязнения на различных поверхностях:", h.last().Text)
		require.NoError(t, h.reply("Убрали ✅"))
		require.NoError(t, h.reply("Убрали ✅"))
		require.NoError(t, h.reply("Убрали ✅"))
		require.NoError(t, h.reply("Убрали ✅"))
		require.NoError(t, h.reply("Вынесли ✅"))
		require.NoError(t, h.reply("Помыли ✅"))
		h.walkRatings()
		anchor := h.promptID[len(h.promptID)-1]
		require.NoError(t, h.press(conversation.NoSuggestionsValue))

		require.NotNil(t, h.request)
		want := feedback.RecordInput{
			UserID:      chatID,
			Name:        "Анна",
			Cleaner:     "Ilya",
			Address:     "ул. Ленина, 1",
			ServiceType: "maintenance",
			Checklist: feedback.Checklist{
				Surfaces: true, Floor: true, Bathrooms: true, Kitchen: true, Trash: true, Mirror: true,
			},
			CleanerRating:  10,
			ManagerRating:  9,
			Recommendation: 8,
		}
		if diff := cmp.Diff(want, h.request.Input); diff != "" {
			t.Errorf("finalize input mismatch (-want +got):\n%s", diff)
		}

		require.Len(t, h.deleted, 22)
		assert.Equal(t, anchor+1, h.deleted[0])
		assert.Equal(t, anchor-20, h.deleted[21])

		rec := builderRecord(t, want)
		assertTail(t, h.events, []string{
			fmt.Sprintf("text:%d:%s", chatID, report.ThankYou("Анна", testCoupon)),
			fmt.Sprintf("text:%d:%s", adminID, report.RenderAdmin(rec, testCoupon)),
		})
		assertDeletesBeforeTexts(t, h.events)
		assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.Finalizations.WithLabelValues(metrics.OutcomeRecorded)))
	})

	t.Run("B: general with a suggestion", func(t *testing.T) {
		h := newHarness(t)
		h.recordFinalize(commands.FinalizeRecorded)

		h.walkToChecklist("g")
		require.NoError(t, h.reply("Убрали ✅"))
		require.NoError(t, h.reply("НЕ убрали ❌"))
		require.NoError(t, h.reply("Убрали ✅"))
		for range 6 {
			require.NoError(t, h.reply("Убрали ✅"))
		}
		h.walkRatings()
		require.NoError(t, h.reply("Помыть люстру_и окна"))

		require.NotNil(t, h.request)
		in := h.request.Input
		assert.Equal(t, "general", in.ServiceType)
		assert.Equal(t, boolPtr(true), in.Checklist.Windows)
		assert.Equal(t, boolPtr(false), in.Checklist.Cobweb)
		assert.Equal(t, boolPtr(true), in.Checklist.Balcony)
		assert.False(t, in.Checklist.Trash, "«Убрали ✅» is not the trash done label")
		assert.False(t, in.Checklist.Mirror)
		assert.Equal(t, "Помыть люстру_и окна", in.Suggestions, "delimiter in free text survives")

		assert.Len(t, h.deleted, 30)
	})

	t.Run("C: cooldown rejection", func(t *testing.T) {
		h := newHarness(t)
		h.recordFinalize(commands.FinalizeRejected)

		h.walkToChecklist("m")
		for range 6 {
			require.NoError(t, h.reply("Убрали ✅"))
		}
		h.walkRatings()
		require.NoError(t, h.reply("нет"))

		assert.Empty(t, h.deleted)
		assert.Equal(t, fmt.Sprintf("text:%d:%s", chatID, conversation.CooldownText), h.events[len(h.events)-1])
		assert.Equal(t, "", h.request.Input.Suggestions, "«нет» counts as no suggestions")
		assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.Finalizations.WithLabelValues(metrics.OutcomeRejected)))
	})
}

func builderRecord(t *testing.T, in feedback.RecordInput) *feedback.Record {
	t.Helper()
	rec, err := feedback.NewRecord(in, finalizeAt)
	require.NoError(t, err)
	return rec
}

func assertTail(t *testing.T, events, tail []string) {
	t.Helper()
	require.GreaterOrEqual(t, len(events), len(tail))
	assert.Equal(t, tail, events[len(events)-len(tail):])
}

func assertDeletesBeforeTexts(t *testing.T, events []string) {
	t.Helper()
	seenText := false
	for _, e := range events {
		if strings.HasPrefix(e, "text:") {
			seenText = true
		}
		if e == "delete" {
			assert.False(t, seenText, "a message was deleted after the thank-you")
		}
	}
}

func TestReprompt(t *testing.T) {
	t.Run("free text on a button step asks again with the same token", func(t *testing.T) {
		h := newHarness(t)
		h.start()
		require.NoError(t, h.reply("Анна"))
		before := h.last()

		require.NoError(t, h.reply("Илья"))

		again := h.last()
		assert.Equal(t, before.Text, again.Text)
		assert.Equal(t, before.Token, again.Token)
		assert.Len(t, h.prompts, 3)
		assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.StepsReprompted.WithLabelValues(string(conversation.StepCleaner))))
	})

	t.Run("unknown choice value", func(t *testing.T) {
		h := newHarness(t)
		h.walkToChecklist("m")
		for range 6 {
			require.NoError(t, h.reply("Убрали ✅"))
		}
		before := h.last()

		require.NoError(t, h.press("11"))
		assert.Equal(t, before.Token, h.last().Token)
	})

	t.Run("button on a free text step", func(t *testing.T) {
		h := newHarness(t)
		h.start()
		before := h.last()

		require.NoError(t, h.press("Ilya"))
		assert.Equal(t, before.Token, h.last().Token)
	})

	t.Run("blank name", func(t *testing.T) {
		h := newHarness(t)
		h.start()
		before := h.last()

		require.NoError(t, h.reply("   "))
		assert.Equal(t, before.Token, h.last().Token)
	})
}

func TestRejectedTokens(t *testing.T) {
	expired := fmt.Sprintf("text:%d:%s", chatID, conversation.SessionExpiredText)

	seal := func(t *testing.T, env token.Envelope) string {
		raw, err := token.NewSealer(secret).Seal(env)
		require.NoError(t, err)
		return raw
	}
	emptyAnswers := token.NewWriter().
		Text("").Text("").Text("").Text("").
		OptBool(nil).OptBool(nil).OptBool(nil).
		Bool(false).Bool(false).Bool(false).Bool(false).Bool(false).Bool(false).
		Int(0).Int(0).Int(0).
		Text("").
		String()

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "garbage"},
		{name: "empty", token: ""},
		{name: "foreign chat", token: seal(t, token.Envelope{Step: "cleaner", Payload: emptyAnswers, Chat: chatID + 1})},
		{name: "unknown step", token: seal(t, token.Envelope{Step: "dance", Payload: emptyAnswers, Chat: chatID})},
		{name: "start is not resumable", token: seal(t, token.Envelope{Step: "start", Payload: emptyAnswers, Chat: chatID})},
		{name: "short payload", token: seal(t, token.Envelope{Step: "name", Payload: "a_b", Chat: chatID})},
		{name: "skipped steps", token: seal(t, token.Envelope{Step: "mirror", Payload: emptyAnswers, Chat: chatID})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			err := h.engine.Handle(context.Background(), conversation.Inbound{
				ChatID:    chatID,
				UserID:    chatID,
				MessageID: 5,
				Token:     tt.token,
				Input:     conversation.Input{Text: "x"},
			})
			require.NoError(t, err)
			assert.Equal(t, []string{expired}, h.events)
			assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.TokensRejected))
		})
	}

	t.Run("a fresh token for the name step is accepted", func(t *testing.T) {
		h := newHarness(t)
		err := h.engine.Handle(context.Background(), conversation.Inbound{
			ChatID:    chatID,
			UserID:    chatID,
			MessageID: 5,
			Token:     seal(t, token.Envelope{Step: "name", Payload: emptyAnswers, Chat: chatID}),
			Input:     conversation.Input{Text: "Анна"},
		})
		require.NoError(t, err)
		assert.Equal(t, "Выберите, кто проводил клининг:", h.last().Text)
	})
}

func TestFinalizeFailure(t *testing.T) {
	h := newHarness(t)
	h.finalize.EXPECT().Finalize(gomock.Any(), gomock.Any()).Return(nil, errs.ErrDatabaseOperationFailed)

	h.walkToChecklist("m")
	for range 6 {
		require.NoError(t, h.reply("Убрали ✅"))
	}
	h.walkRatings()
	err := h.press(conversation.NoSuggestionsValue)

	assert.True(t, errs.Is(err, errs.ErrDatabaseOperationFailed))
	assert.Empty(t, h.deleted)
	for _, e := range h.events {
		assert.NotContains(t, e, "text:", "nothing is announced when the store fails")
	}
}

// finishMaintenance walks a maintenance conversation to the end with default answers.
func (h *harness) finishMaintenance() error {
	h.walkToChecklist("m")
	for range 6 {
		require.NoError(h.t, h.reply("Убрали ✅"))
	}
	h.walkRatings()
	return h.press(conversation.NoSuggestionsValue)
}

func TestConversationClosed(t *testing.T) {
	t.Run("recorded submission closes the chat", func(t *testing.T) {
		h := newHarness(t)
		h.recordFinalize(commands.FinalizeRecorded)

		require.NoError(t, h.finishMaintenance())
		assert.Equal(t, []int64{chatID}, h.closed)
	})

	t.Run("cooldown rejection closes the chat too", func(t *testing.T) {
		h := newHarness(t)
		h.recordFinalize(commands.FinalizeRejected)

		require.NoError(t, h.finishMaintenance())
		assert.Equal(t, []int64{chatID}, h.closed)
	})

	t.Run("store failure keeps the conversation resumable", func(t *testing.T) {
		h := newHarness(t)
		h.finalize.EXPECT().Finalize(gomock.Any(), gomock.Any()).Return(nil, errs.ErrDatabaseOperationFailed)

		require.Error(t, h.finishMaintenance())
		assert.Empty(t, h.closed)
	})

	t.Run("close failure still announces the record", func(t *testing.T) {
		h := newHarness(t)
		h.closeErr = assert.AnError
		h.recordFinalize(commands.FinalizeRecorded)

		require.NoError(t, h.finishMaintenance())
		assert.Equal(t, []int64{chatID}, h.closed)
		assert.Contains(t, h.events, fmt.Sprintf("text:%d:%s", chatID, report.ThankYou("Анна", testCoupon)))
		assert.Len(t, h.deleted, 22)
	})

	t.Run("途中のステップでは閉じない", func(t *testing.T) {
		h := newHarness(t)
		h.walkToChecklist("g")
		assert.Empty(t, h.closed)
	})
}

func TestNameRegistered(t *testing.T) {
	t.Run("name step stores the user", func(t *testing.T) {
		h := newHarness(t)
		h.start()
		require.NoError(t, h.reply("  Анна "))

		assert.Equal(t, []string{"Анна"}, h.registered)
		assert.Equal(t, "Выберите, кто проводил клининг:", h.last().Text)
	})

	t.Run("later steps do not register again", func(t *testing.T) {
		h := newHarness(t)
		h.walkToChecklist("m")
		assert.Len(t, h.registered, 1)
	})

	t.Run("registration failure does not stop the conversation", func(t *testing.T) {
		h := newHarness(t)
		h.registerErr = assert.AnError
		h.start()

		require.NoError(t, h.reply("Анна"))
		assert.Equal(t, "Выберите, кто проводил клининг:", h.last().Text)
	})
}
