package domain

import (
	"fmt"
	"time"
)

// ParseClock converts a same-day "HH:MM" wall-clock string to minutes since
// midnight. Cross-midnight ranges are not supported; a day's slots are assumed
// to fit within 00:00-23:59.
func ParseClock(s string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid clock time %q (expected HH:MM)", s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("clock time %q out of range", s)
	}
	return h*60 + m, nil
}

// MustClock is ParseClock for literals in tests and fixtures; panics on error.
func MustClock(s string) int {
	m, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return m
}

// FormatClock converts minutes since midnight back to "HH:MM".
func FormatClock(min int) string {
	if min < 0 {
		min = 0
	}
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}

// MinutesOfDay projects a time.Time onto minutes since local midnight.
func MinutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
