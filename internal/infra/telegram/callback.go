package telegram

import (
	"strings"

	"cleaning-feedback-bot/internal/pkg/errs"
)

// Telegram rejects callback data longer than this.
const maxCallbackData = 64

const callbackSeparator = ":"

var ErrBadCallback = errs.New("bad callback data")

// EncodeCallback packs a button value with the ref of the parked token.
func EncodeCallback(value, ref string) (string, error) {
	if strings.Contains(value, callbackSeparator) {
		return "", errs.Wrapf(ErrBadCallback, "value %q contains separator", value)
	}
	data := value + callbackSeparator + ref
	if len(data) > maxCallbackData {
		return "", errs.Wrapf(ErrBadCallback, "%d bytes exceeds limit", len(data))
	}
	return data, nil
}

func ParseCallback(data string) (value, ref string, err error) {
	value, ref, ok := strings.Cut(data, callbackSeparator)
	if !ok || value == "" || ref == "" {
		return "", "", errs.Wrapf(ErrBadCallback, "%q", data)
	}
	return value, ref, nil
}
