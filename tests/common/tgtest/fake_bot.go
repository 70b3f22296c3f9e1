//go:build unit || e2e

// Package tgtest provides an in-memory Bot API that records what the bot sends.
package tgtest

import (
	"errors"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

var ErrDeleteNotFound = errors.New("Bad Request: message to delete not found")

type FakeBot struct {
	mu sync.Mutex

	nextID   int
	Sent     []tgbotapi.Chattable
	Requests []tgbotapi.Chattable
	Deleted  []int

	// Missing holds message ids whose deletion reports "not found".
	Missing map[int]bool
	SendErr error

	lastInline *tgbotapi.InlineKeyboardMarkup
	lastSent   int

	updates chan tgbotapi.Update
}

// NewFakeBot numbers outgoing messages from firstID.
func NewFakeBot(firstID int) *FakeBot {
	return &FakeBot{
		nextID:  firstID,
		Missing: map[int]bool{},
		updates: make(chan tgbotapi.Update, 16),
	}
}

func (f *FakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.SendErr != nil {
		return tgbotapi.Message{}, f.SendErr
	}
	f.Sent = append(f.Sent, c)
	if m, ok := c.(tgbotapi.MessageConfig); ok {
		f.lastInline = nil
		if kb, ok := m.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup); ok {
			f.lastInline = &kb
		}
	}
	id := f.nextID
	f.nextID++
	f.lastSent = id
	return tgbotapi.Message{MessageID: id}, nil
}

func (f *FakeBot) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if del, ok := c.(tgbotapi.DeleteMessageConfig); ok {
		if f.Missing[del.MessageID] {
			return nil, ErrDeleteNotFound
		}
		f.Deleted = append(f.Deleted, del.MessageID)
		return &tgbotapi.APIResponse{Ok: true}, nil
	}
	f.Requests = append(f.Requests, c)
	if e, ok := c.(tgbotapi.EditMessageReplyMarkupConfig); ok && e.ReplyMarkup != nil {
		f.lastInline = e.ReplyMarkup
	}
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *FakeBot) GetUpdatesChan(_ tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return f.updates
}

func (f *FakeBot) StopReceivingUpdates() {}

// Push queues an update for the poller.
func (f *FakeBot) Push(u tgbotapi.Update) {
	f.updates <- u
}

// NextInboundID reserves an id for a message the user sends, so ids keep increasing
// across both sides of the chat.
func (f *FakeBot) NextInboundID() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextID
	f.nextID++
	return id
}

// Texts returns the text of every sent message in order.
func (f *FakeBot) Texts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []string
	for _, c := range f.Sent {
		if m, ok := c.(tgbotapi.MessageConfig); ok {
			out = append(out, m.Text)
		}
	}
	return out
}

// LastMessageID is the id of the latest message the bot sent.
func (f *FakeBot) LastMessageID() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastSent
}

// TextsTo returns the text of every message sent to chatID in order.
func (f *FakeBot) TextsTo(chatID int64) []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []string
	for _, c := range f.Sent {
		if m, ok := c.(tgbotapi.MessageConfig); ok && m.ChatID == chatID {
			out = append(out, m.Text)
		}
	}
	return out
}

func (f *FakeBot) LastText() string {
	texts := f.Texts()
	if len(texts) == 0 {
		return ""
	}
	return texts[len(texts)-1]
}

// Buttons maps label to callback data for the inline keyboard of the latest message,
// including buttons attached afterwards by an edit.
func (f *FakeBot) Buttons() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := map[string]string{}
	if f.lastInline == nil {
		return out
	}
	for _, row := range f.lastInline.InlineKeyboard {
		for _, b := range row {
			if b.CallbackData != nil {
				out[b.Text] = *b.CallbackData
			}
		}
	}
	return out
}

// Documents returns the file names of sent documents.
func (f *FakeBot) Documents() []tgbotapi.DocumentConfig {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []tgbotapi.DocumentConfig
	for _, c := range f.Sent {
		if d, ok := c.(tgbotapi.DocumentConfig); ok {
			out = append(out, d)
		}
	}
	return out
}

func (f *FakeBot) DeletedIDs() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.Deleted...)
}
