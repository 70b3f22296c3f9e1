package token

import (
	"strconv"

	"github.com/golang-jwt/jwt/v5"

	"cleaning-feedback-bot/internal/pkg/errs"
)

// Envelope is the continuation attached to an outgoing prompt: the step that will consume
// the next reply and the encoded answers collected so far.
type Envelope struct {
	Step    string
	Payload string
	Chat    int64
}

type claims struct {
	Step    string `json:"st"`
	Payload string `json:"p"`
	jwt.RegisteredClaims
}

// Sealer signs envelopes so that a tampered or foreign token is rejected on return.
// Tokens carry no expiry: an abandoned conversation stays resumable.
type Sealer struct {
	secret []byte
	parser *jwt.Parser
}

func NewSealer(secret string) *Sealer {
	return &Sealer{
		secret: []byte(secret),
		parser: jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})),
	}
}

func (s *Sealer) Seal(env Envelope) (string, error) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Step:    env.Step,
		Payload: env.Payload,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: strconv.FormatInt(env.Chat, 10),
		},
	})

	signed, err := tok.SignedString(s.secret)
	if err != nil {
		return "", errs.Wrap(err, "failed to sign token")
	}
	return signed, nil
}

// Open verifies the signature and that the token was issued to chat.
func (s *Sealer) Open(raw string, chat int64) (Envelope, error) {
	var c claims
	_, err := s.parser.ParseWithClaims(raw, &c, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		return Envelope{}, errs.Mark(errs.Wrap(err, "failed to verify token"), ErrMalformed)
	}

	if c.Subject != strconv.FormatInt(chat, 10) {
		return Envelope{}, errs.Wrapf(ErrMalformed, "token issued to chat %s", c.Subject)
	}
	if c.Step == "" {
		return Envelope{}, errs.Wrap(ErrMalformed, "token carries no step")
	}

	return Envelope{Step: c.Step, Payload: c.Payload, Chat: chat}, nil
}
