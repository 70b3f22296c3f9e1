package shared

//go:generate go run go.uber.org/mock/mockgen -source=types.go -destination=../../../tests/mock/shared/types.go -package=sharedmock

import (
	"context"
	"time"

	"cleaning-feedback-bot/internal/pkg/errs"
)

var (
	// ErrMessageNotFound is returned by Messenger.Delete when the message is already gone.
	ErrMessageNotFound      = errs.New("message to delete not found")
	ErrContinuationNotFound = errs.New("continuation not found")
)

type Affordance int

const (
	// FreeText expects a plain reply.
	FreeText Affordance = iota
	// ReplyKeyboard offers fixed labels; the reply still arrives as text.
	ReplyKeyboard
	// InlineChoices attaches buttons whose value comes back with the token.
	InlineChoices
)

type Option struct {
	Label string
	Value string
}

// Prompt is one outbound question together with the continuation token for its answer.
type Prompt struct {
	Text       string
	Affordance Affordance
	Options    []Option
	// Columns is the number of buttons per row; 0 puts every button on its own row.
	Columns int
	// RemoveKeyboard hides a reply keyboard left by an earlier prompt.
	RemoveKeyboard bool
	Token          string
}

// Messenger is the transport seen by the use cases.
type Messenger interface {
	SendPrompt(ctx context.Context, chatID int64, p Prompt) (int, error)
	SendText(ctx context.Context, chatID int64, text string) (int, error)
	SendDocument(ctx context.Context, chatID int64, name string, data []byte) error
	Delete(ctx context.Context, chatID int64, messageID int) error
}

type Continuation struct {
	Ref       string
	ChatID    int64
	Token     string
	CreatedAt time.Time
}

// ContinuationStore maps short refs to sealed tokens. It never interprets the token.
type ContinuationStore interface {
	Park(ctx context.Context, chatID int64, token string) (string, error)
	Resolve(ctx context.Context, ref string) (*Continuation, error)
	Latest(ctx context.Context, chatID int64) (*Continuation, error)
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
	// CloseChat drops every continuation of the chat and reports how many there were.
	CloseChat(ctx context.Context, chatID int64) (int64, error)
}
