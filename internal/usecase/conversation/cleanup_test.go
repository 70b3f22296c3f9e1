//go:build unit

package conversation_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"cleaning-feedback-bot/internal/domain/feedback"
	"cleaning-feedback-bot/internal/pkg/errs"
	"cleaning-feedback-bot/internal/usecase/conversation"
	"cleaning-feedback-bot/internal/usecase/shared"
	sharedmock "cleaning-feedback-bot/tests/mock/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestRetractionCount(t *testing.T) {
	tests := []struct {
		name        string
		serviceType feedback.ServiceType
		suggestions string
		want        int
	}{
		{name: "maintenance, no suggestions", serviceType: feedback.ServiceMaintenance, want: 22},
		{name: "maintenance with suggestions", serviceType: feedback.ServiceMaintenance, suggestions: "чище", want: 23},
		{name: "general, no suggestions", serviceType: feedback.ServiceGeneral, want: 29},
		{name: "general with suggestions", serviceType: feedback.ServiceGeneral, suggestions: "чище", want: 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, conversation.RetractionCount(tt.serviceType, tt.suggestions))
		})
	}
}

func TestRetract(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()

	t.Run("walks down from anchor+1", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		m := sharedmock.NewMockMessenger(ctrl)
		gomock.InOrder(
			m.EXPECT().Delete(gomock.Any(), chatID, 51).Return(nil),
			m.EXPECT().Delete(gomock.Any(), chatID, 50).Return(nil),
			m.EXPECT().Delete(gomock.Any(), chatID, 49).Return(nil),
		)

		skipped, err := conversation.Retract(ctx, m, logger, chatID, 50, 3)
		require.NoError(t, err)
		assert.Zero(t, skipped)
	})

	t.Run("already deleted messages are skipped", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		m := sharedmock.NewMockMessenger(ctrl)
		m.EXPECT().Delete(gomock.Any(), chatID, 11).Return(errs.Wrap(shared.ErrMessageNotFound, "message 11"))
		m.EXPECT().Delete(gomock.Any(), chatID, 10).Return(nil)
		m.EXPECT().Delete(gomock.Any(), chatID, 9).Return(shared.ErrMessageNotFound)

		skipped, err := conversation.Retract(ctx, m, logger, chatID, 10, 3)
		require.NoError(t, err)
		assert.Equal(t, 2, skipped)
	})

	t.Run("stops at the start of the chat", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		m := sharedmock.NewMockMessenger(ctrl)
		for id := 4; id >= 1; id-- {
			m.EXPECT().Delete(gomock.Any(), chatID, id).Return(nil)
		}

		_, err := conversation.Retract(ctx, m, logger, chatID, 3, 22)
		require.NoError(t, err)
	})

	t.Run("other failures abort", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		m := sharedmock.NewMockMessenger(ctrl)
		m.EXPECT().Delete(gomock.Any(), chatID, 21).Return(nil)
		m.EXPECT().Delete(gomock.Any(), chatID, 20).Return(assert.AnError)

		_, err := conversation.Retract(ctx, m, logger, chatID, 20, 5)
		assert.ErrorIs(t, err, assert.AnError)
	})
}
