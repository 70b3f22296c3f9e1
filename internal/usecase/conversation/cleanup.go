package conversation

import (
	"context"
	"log/slog"

	"cleaning-feedback-bot/internal/domain/feedback"
	"cleaning-feedback-bot/internal/pkg/errs"
	"cleaning-feedback-bot/internal/usecase/shared"
)

const (
	baseRetraction        = 22
	suggestionsRetraction = 1
	generalRetraction     = 7
)

// RetractionCount is how many messages a finished conversation leaves behind. A typed
// suggestion adds one and the general branch adds seven.
func RetractionCount(t feedback.ServiceType, suggestions string) int {
	n := baseRetraction
	if suggestions != "" {
		n += suggestionsRetraction
	}
	if t == feedback.ServiceGeneral {
		n += generalRetraction
	}
	return n
}

// Retract deletes count messages walking down from anchor+1. Messages that are already
// gone are skipped and counted; any other failure stops the walk.
func Retract(ctx context.Context, m shared.Messenger, logger *slog.Logger, chatID int64, anchor, count int) (int, error) {
	skipped := 0
	for i := 0; i < count; i++ {
		id := anchor + 1 - i
		if id <= 0 {
			break
		}
		err := m.Delete(ctx, chatID, id)
		if err == nil {
			continue
		}
		if errs.Is(err, shared.ErrMessageNotFound) {
			skipped++
			logger.Debug("message already gone", slog.Int64("chat_id", chatID), slog.Int("message_id", id))
			continue
		}
		return skipped, err
	}
	return skipped, nil
}
