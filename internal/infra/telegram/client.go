// Package telegram adapts the Bot API to the messenger the use cases talk to.
package telegram

import (
	"context"
	"log/slog"
	"strings"

	"cleaning-feedback-bot/internal/pkg/errs"
	"cleaning-feedback-bot/internal/usecase/shared"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// BotAPI is the part of *tgbotapi.BotAPI the adapter uses.
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

const deleteNotFound = "message to delete not found"

type Client struct {
	api    BotAPI
	store  shared.ContinuationStore
	logger *slog.Logger
}

func NewClient(api BotAPI, store shared.ContinuationStore, logger *slog.Logger) *Client {
	return &Client{api: api, store: store, logger: logger}
}

// SendPrompt parks the prompt's token and attaches its ref to every button.
func (c *Client) SendPrompt(ctx context.Context, chatID int64, p shared.Prompt) (int, error) {
	ref, err := c.store.Park(ctx, chatID, p.Token)
	if err != nil {
		return 0, err
	}

	msg := tgbotapi.NewMessage(chatID, p.Text)

	var inline *tgbotapi.InlineKeyboardMarkup
	switch p.Affordance {
	case shared.InlineChoices:
		markup, err := inlineKeyboard(p, ref)
		if err != nil {
			return 0, err
		}
		inline = &markup
	case shared.ReplyKeyboard:
		msg.ReplyMarkup = replyKeyboard(p)
	}

	switch {
	case inline != nil && p.RemoveKeyboard:
		// One message cannot carry both markups: hide the keyboard first, then attach buttons.
		msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(false)
	case inline != nil:
		msg.ReplyMarkup = *inline
	case p.RemoveKeyboard:
		msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(false)
	}

	sent, err := c.api.Send(msg)
	if err != nil {
		return 0, errs.Mark(errs.Wrap(err, "failed to send prompt"), errs.ErrTransportFailed)
	}

	if inline != nil && p.RemoveKeyboard {
		edit := tgbotapi.NewEditMessageReplyMarkup(chatID, sent.MessageID, *inline)
		if _, err := c.api.Request(edit); err != nil {
			return 0, errs.Mark(errs.Wrap(err, "failed to attach buttons"), errs.ErrTransportFailed)
		}
	}
	return sent.MessageID, nil
}

func (c *Client) SendText(_ context.Context, chatID int64, text string) (int, error) {
	sent, err := c.api.Send(tgbotapi.NewMessage(chatID, text))
	if err != nil {
		return 0, errs.Mark(errs.Wrap(err, "failed to send message"), errs.ErrTransportFailed)
	}
	return sent.MessageID, nil
}

func (c *Client) SendDocument(_ context.Context, chatID int64, name string, data []byte) error {
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: name, Bytes: data})
	if _, err := c.api.Send(doc); err != nil {
		return errs.Mark(errs.Wrap(err, "failed to send document"), errs.ErrTransportFailed)
	}
	return nil
}

func (c *Client) Delete(_ context.Context, chatID int64, messageID int) error {
	_, err := c.api.Request(tgbotapi.NewDeleteMessage(chatID, messageID))
	if err == nil {
		return nil
	}
	if strings.Contains(err.Error(), deleteNotFound) {
		return errs.Wrapf(shared.ErrMessageNotFound, "message %d", messageID)
	}
	return errs.Mark(errs.Wrapf(err, "failed to delete message %d", messageID), errs.ErrTransportFailed)
}

// AckCallback stops the spinner on the pressed button.
func (c *Client) AckCallback(_ context.Context, callbackID string) error {
	if _, err := c.api.Request(tgbotapi.NewCallback(callbackID, "")); err != nil {
		return errs.Mark(errs.Wrap(err, "failed to answer callback"), errs.ErrTransportFailed)
	}
	return nil
}

// SetWebhook registers url with Telegram.
func (c *Client) SetWebhook(url string) error {
	wh, err := tgbotapi.NewWebhook(url)
	if err != nil {
		return errs.Wrap(err, "invalid webhook url")
	}
	if _, err := c.api.Request(wh); err != nil {
		return errs.Mark(errs.Wrap(err, "failed to set webhook"), errs.ErrTransportFailed)
	}
	c.logger.Info("webhook registered")
	return nil
}

// DeleteWebhook switches the bot back to getUpdates.
func (c *Client) DeleteWebhook() error {
	if _, err := c.api.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
		return errs.Mark(errs.Wrap(err, "failed to delete webhook"), errs.ErrTransportFailed)
	}
	return nil
}

func inlineKeyboard(p shared.Prompt, ref string) (tgbotapi.InlineKeyboardMarkup, error) {
	buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(p.Options))
	for _, o := range p.Options {
		data, err := EncodeCallback(o.Value, ref)
		if err != nil {
			return tgbotapi.InlineKeyboardMarkup{}, err
		}
		buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(o.Label, data))
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, row := range chunk(buttons, p.Columns) {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(row...))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...), nil
}

func replyKeyboard(p shared.Prompt) tgbotapi.ReplyKeyboardMarkup {
	buttons := make([]tgbotapi.KeyboardButton, 0, len(p.Options))
	for _, o := range p.Options {
		buttons = append(buttons, tgbotapi.NewKeyboardButton(o.Label))
	}

	var rows [][]tgbotapi.KeyboardButton
	for _, row := range chunk(buttons, p.Columns) {
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(row...))
	}
	kb := tgbotapi.NewReplyKeyboard(rows...)
	kb.OneTimeKeyboard = true
	return kb
}

func chunk[T any](items []T, size int) [][]T {
	if size <= 0 {
		size = 1
	}
	var out [][]T
	for len(items) > 0 {
		n := min(size, len(items))
		out = append(out, items[:n])
		items = items[n:]
	}
	return out
}
