package coupon

import (
	"crypto/rand"
	"errors"
	"io"
	"math/big"
	"regexp"
)

const (
	Length   = 6
	Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

var ErrInvalidCouponCode = errors.New("invalid coupon code format")

var couponCodeRegex = regexp.MustCompile(`^[A-Z]{6}$`)

type Code string

func NewCode(code string) (Code, error) {
	if !couponCodeRegex.MatchString(code) {
		return Code(""), ErrInvalidCouponCode
	}
	return Code(code), nil
}

func (c Code) String() string {
	return string(c)
}

// Issuer draws codes uniformly from Alphabet. Codes are not checked for collisions.
type Issuer struct {
	rand io.Reader
}

func NewIssuer() *Issuer {
	return &Issuer{rand: rand.Reader}
}

// NewIssuerWithSource is for tests that need a deterministic source.
func NewIssuerWithSource(r io.Reader) *Issuer {
	return &Issuer{rand: r}
}

func (i *Issuer) Issue() (Code, error) {
	size := big.NewInt(int64(len(Alphabet)))
	buf := make([]byte, Length)
	for n := range buf {
		idx, err := rand.Int(i.rand, size)
		if err != nil {
			return "", err
		}
		buf[n] = Alphabet[idx.Int64()]
	}
	return Code(buf), nil
}
