package utils

import (
	"strconv"
	"time"
)

// Iso8601Now returns the current time in ISO8601 format
func Iso8601Now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// Iso8601FromUnixSeconds converts Unix timestamp to ISO8601 format
func Iso8601FromUnixSeconds(sec int64) string {
	return time.Unix(sec, 0).UTC().Format(time.RFC3339)
}

// timestampLayouts are the formats the live-location API has been observed
// to use for estimatedArrival and scheduledTime fields.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"15:04:05",
	"15:04",
}

// ParseTimestamp parses an opaque API timestamp string. Plain digit strings
// of epoch magnitude (at least nine digits) are treated as unix seconds;
// shorter digit runs like a bare year are not a timestamp and fail the
// parse. Returns false when no layout matches.
func ParseTimestamp(ts string) (time.Time, bool) {
	if ts == "" {
		return time.Time{}, false
	}
	if len(ts) >= 9 {
		if sec, err := strconv.ParseInt(ts, 10, 64); err == nil {
			return time.Unix(sec, 0).UTC(), true
		}
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, ts); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}
