package domain

import (
	"fmt"
	"time"
)

const (
	DateLayout = "2006-01-02"
	// Persisted times carry seconds; input parsers accept HH:MM as well.
	TimeLayout      = "15:04:05"
	TimeLayoutShort = "15:04"
)

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}

	return d, nil
}

// ParseTimeOfDay returns minutes since midnight for an HH:MM or HH:MM:SS
// value; seconds are ignored.
func ParseTimeOfDay(s string) (int, error) {
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		t, err = time.Parse(TimeLayoutShort, s)
	}
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", s, err)
	}

	return t.Hour()*60 + t.Minute(), nil
}

// NormalizeTimeOfDay rewrites an HH:MM value to the persisted HH:MM:SS form.
// Values already carrying seconds pass through unchanged.
func NormalizeTimeOfDay(s string) (string, error) {
	if t, err := time.Parse(TimeLayout, s); err == nil {
		return t.Format(TimeLayout), nil
	}

	t, err := time.Parse(TimeLayoutShort, s)
	if err != nil {
		return "", fmt.Errorf("invalid time of day %q: %w", s, err)
	}

	return t.Format(TimeLayout), nil
}

// WindowMinutes converts start/end times of day to a duration in minutes,
// wrapping past midnight when the end precedes the start.
func WindowMinutes(start, end string) (float64, error) {
	s, err := ParseTimeOfDay(start)
	if err != nil {
		return 0, err
	}

	e, err := ParseTimeOfDay(end)
	if err != nil {
		return 0, err
	}

	if e <= s {
		e += 24 * 60
	}

	return float64(e - s), nil
}
