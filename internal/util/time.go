package util

import (
	"fmt"
	"sync"
	"time"
)

const (
	// DateFormat is the day/month/year layout used on screen.
	DateFormat = "02/01/2006"

	// DateTimeFormat adds hours and minutes to DateFormat.
	DateTimeFormat = "02/01/2006 15:04"
)

// Clock supplies the current time. Services take one so tests can pin it.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in UTC.
type SystemClock struct{}

// Now returns the current UTC time.
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// FixedClock returns a settable time.
type FixedClock struct {
	mu sync.Mutex
	t  time.Time
}

// NewFixedClock creates a clock stopped at t.
func NewFixedClock(t time.Time) *FixedClock {
	return &FixedClock{t: t}
}

// Now returns the stored time.
func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

// Advance moves the clock forward by d.
func (c *FixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// FormatDate formats t as dd/mm/yyyy in local time.
func FormatDate(t time.Time) string {
	return t.Local().Format(DateFormat)
}

// FormatDateTime formats t as dd/mm/yyyy hh:mm in local time.
func FormatDateTime(t time.Time) string {
	return t.Local().Format(DateTimeFormat)
}

// ParseStored parses an RFC3339 timestamp read from the database. An empty
// string yields the zero time.
func ParseStored(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", s, err)
	}
	return t, nil
}

// FormatStored formats t for storage.
func FormatStored(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// RelativeTimeString describes t relative to now in Portuguese,
// e.g. "há 5 minutos" or "ontem".
func RelativeTimeString(t, now time.Time) string {
	diff := now.Sub(t)
	if diff < 0 {
		return FormatDate(t)
	}

	switch {
	case diff < time.Minute:
		return "agora mesmo"
	case diff < time.Hour:
		return plural(int(diff.Minutes()), "minuto", "minutos")
	case diff < 24*time.Hour:
		return plural(int(diff.Hours()), "hora", "horas")
	case diff < 48*time.Hour:
		return "ontem"
	case diff < 30*24*time.Hour:
		return plural(int(diff.Hours()/24), "dia", "dias")
	default:
		return FormatDate(t)
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return "há 1 " + one
	}
	return fmt.Sprintf("há %d %s", n, many)
}
