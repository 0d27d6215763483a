package models

import (
	"errors"
	"time"
)

// TimestampLayout is the format used when the server assigns a timestamp.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// timestampLayouts are the date-time shapes accepted from clients, most
// specific first. Values without a zone are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

var errBadTimestamp = errors.New("not an ISO 8601 date-time")

// ParseTimestamp parses an ISO 8601 date or date-time string.
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errBadTimestamp
}

// FormatTimestamp renders t the way server-assigned timestamps are stored.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
