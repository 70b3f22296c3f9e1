// Package cooldown decides whether a user may submit another checklist.
package cooldown

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultWindow = 72 * time.Hour
	// StoredLayout is how last-check timestamps are written to the store.
	StoredLayout = "2006-01-02 15:04:05"
)

var ErrUnparsableTimestamp = errors.New("unparsable last check timestamp")

// Allow denies only when there is a previous check less than window ago.
func Allow(now time.Time, lastCheck *time.Time, window time.Duration) bool {
	if lastCheck == nil {
		return true
	}
	return now.Sub(*lastCheck) >= window
}

// ParseLastCheck reads a stored timestamp. Both unix seconds and StoredLayout (interpreted
// in loc) are accepted; RFC3339 is tolerated as well. An empty value means never checked.
func ParseLastCheck(raw string, loc *time.Location) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if loc == nil {
		loc = time.UTC
	}

	if secs, err := strconv.ParseInt(raw, 10, 64); err == nil {
		t := time.Unix(secs, 0).In(loc)
		return &t, nil
	}
	if t, err := time.ParseInLocation(StoredLayout, raw, loc); err == nil {
		return &t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	return nil, ErrUnparsableTimestamp
}

// FormatLastCheck writes t in its own location; ParseLastCheck must be given the same one.
func FormatLastCheck(t time.Time) string {
	return t.Format(StoredLayout)
}

// Guard binds a window so callers do not pass it around.
type Guard struct {
	window time.Duration
	loc    *time.Location
}

func NewGuard(window time.Duration, loc *time.Location) *Guard {
	if window <= 0 {
		window = DefaultWindow
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Guard{window: window, loc: loc}
}

// Check parses the stored value and applies the window.
func (g *Guard) Check(now time.Time, stored string) (bool, error) {
	last, err := ParseLastCheck(stored, g.loc)
	if err != nil {
		return false, err
	}
	return Allow(now, last, g.window), nil
}

func (g *Guard) Location() *time.Location { return g.loc }
func (g *Guard) Window() time.Duration    { return g.window }
