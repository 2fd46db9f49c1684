package timeutil

import (
	"time"

	"github.com/araddon/dateparse"
)

// ContestDateLayout is the date format the upstream provider expects (MM/DD/YYYY).
const ContestDateLayout = "01/02/2006"

// TimestampLayout is the wall-clock format stamped into export documents.
const TimestampLayout = "2006-01-02 15:04:05"

// ParseContestDate parses an MM/DD/YYYY date string.
func ParseContestDate(value string) (time.Time, error) {
	return time.Parse(ContestDateLayout, value)
}

// FormatContestDate formats a time as MM/DD/YYYY in its current location.
func FormatContestDate(t time.Time) string {
	return t.Format(ContestDateLayout)
}

// NormalizeContestDate coerces an arbitrary date string into MM/DD/YYYY.
// Strings already in that layout pass through unchanged, and anything that
// cannot be parsed is returned as-is rather than failing.
func NormalizeContestDate(value string) string {
	if value == "" {
		return value
	}
	if _, err := ParseContestDate(value); err == nil {
		return value
	}
	parsed, err := dateparse.ParseAny(value)
	if err != nil {
		return value
	}
	return FormatContestDate(parsed)
}

// FormatTimestamp formats a wall-clock time for export metadata.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}
