// Package token carries the answers of an in-flight conversation between steps.
//
// A payload is a fixed-order tuple of typed fields joined by Delimiter. Text fields are
// escaped so they can never contain the delimiter, which keeps decoding positional and
// lossless for arbitrary user input.
package token

import (
	"strconv"
	"strings"

	"cleaning-feedback-bot/internal/pkg/errs"
)

const (
	// Delimiter separates fields in a payload.
	Delimiter = "_"
	// Absent marks an optional flag that does not apply to the conversation branch.
	Absent = "None"
)

var ErrMalformed = errs.New("malformed token")

var (
	escaper   = strings.NewReplacer("%", "%25", Delimiter, "%5F")
	unescaper = strings.NewReplacer("%5F", Delimiter, "%25", "%")
)

// Escape makes s safe to embed as a single field.
func Escape(s string) string {
	return escaper.Replace(s)
}

// Unescape reverses Escape. It rejects stray '%' sequences that Escape never produces.
func Unescape(s string) (string, error) {
	for i := 0; i < len(s); i++ {
		if s[i] != '%' {
			continue
		}
		if i+2 >= len(s) || (s[i+1:i+3] != "25" && s[i+1:i+3] != "5F") {
			return "", errs.Wrapf(ErrMalformed, "bad escape at offset %d", i)
		}
	}
	return unescaper.Replace(s), nil
}

// Writer appends fields in order.
type Writer struct {
	fields []string
}

func NewWriter() *Writer {
	return &Writer{}
}

func (w *Writer) Text(s string) *Writer {
	w.fields = append(w.fields, Escape(s))
	return w
}

func (w *Writer) Int(n int) *Writer {
	w.fields = append(w.fields, strconv.Itoa(n))
	return w
}

func (w *Writer) Bool(b bool) *Writer {
	w.fields = append(w.fields, formatBool(b))
	return w
}

// OptBool writes Absent for nil.
func (w *Writer) OptBool(b *bool) *Writer {
	if b == nil {
		w.fields = append(w.fields, Absent)
		return w
	}
	return w.Bool(*b)
}

func (w *Writer) String() string {
	return strings.Join(w.fields, Delimiter)
}

func (w *Writer) Len() int {
	return len(w.fields)
}

// Reader consumes fields in the order they were written. The first failure sticks and is
// reported by Err; later reads return zero values.
type Reader struct {
	fields []string
	pos    int
	err    error
}

// NewReader splits payload and requires exactly want fields.
func NewReader(payload string, want int) (*Reader, error) {
	fields := strings.Split(payload, Delimiter)
	if len(fields) != want {
		return nil, errs.Wrapf(ErrMalformed, "expected %d fields, got %d", want, len(fields))
	}
	return &Reader{fields: fields}, nil
}

func (r *Reader) next() (string, bool) {
	if r.err != nil {
		return "", false
	}
	if r.pos >= len(r.fields) {
		r.err = errs.Wrap(ErrMalformed, "read past last field")
		return "", false
	}
	f := r.fields[r.pos]
	r.pos++
	return f, true
}

func (r *Reader) Text() string {
	f, ok := r.next()
	if !ok {
		return ""
	}
	s, err := Unescape(f)
	if err != nil {
		r.err = err
		return ""
	}
	return s
}

func (r *Reader) Int() int {
	f, ok := r.next()
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(f)
	if err != nil {
		r.err = errs.Wrapf(ErrMalformed, "field %d is not an integer", r.pos-1)
		return 0
	}
	return n
}

func (r *Reader) Bool() bool {
	f, ok := r.next()
	if !ok {
		return false
	}
	b, err := parseBool(f)
	if err != nil {
		r.err = errs.Wrapf(err, "field %d", r.pos-1)
		return false
	}
	return b
}

func (r *Reader) OptBool() *bool {
	f, ok := r.next()
	if !ok {
		return nil
	}
	if f == Absent {
		return nil
	}
	b, err := parseBool(f)
	if err != nil {
		r.err = errs.Wrapf(err, "field %d", r.pos-1)
		return nil
	}
	return &b
}

func (r *Reader) Err() error {
	return r.err
}

func formatBool(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func parseBool(s string) (bool, error) {
	switch s {
	case "1":
		return true, nil
	case "0":
		return false, nil
	default:
		return false, errs.Wrapf(ErrMalformed, "unexpected flag %q", s)
	}
}
