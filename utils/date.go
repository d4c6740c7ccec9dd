package utils

import (
	"fmt"
	"time"
)

const isoDateLayout = "2006-01-02"

// MustParseDate parses a yyyy-MM-dd string as a UTC midnight, returning the
// zero time on bad input. Test fixtures and trusted config only.
func MustParseDate(s string) time.Time {
	t, _ := time.ParseInLocation(isoDateLayout, s, time.UTC)
	return t
}

// ParseISOTime accepts RFC3339 timestamps plus the date-only and
// space-separated forms that show up in event payloads and CLI flags.
func ParseISOTime(s string) (*time.Time, error) {
	if s == "" {
		return nil, fmt.Errorf("empty time string")
	}

	for _, layout := range []string{time.RFC3339, time.RFC3339Nano} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}

	for _, layout := range []string{
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		isoDateLayout,
	} {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return &t, nil
		}
	}

	return nil, fmt.Errorf("failed to parse time: %v", s)
}
