// Package timeparse is the single normalization boundary for time-of-day
// values. Upstream layers have historically produced three shapes for the
// same field: a plain clock string ("9:00"), a full ISO-8601 datetime, and a
// stringified shift object. Everything funnels through Normalize so no other
// component ever inspects a raw value's shape.
package timeparse

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// isoLayouts are tried in order for datetime-shaped input. Only the clock
// component is kept; date and offset are discarded.
var isoLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// Normalize parses a heterogeneous time-of-day value into canonical
// zero-padded "HH:MM" form. The boolean is false when the input is absent,
// malformed, or out of range; callers must treat that as "time unknown",
// never as midnight.
func Normalize(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", false
	}

	if hhmm, ok := parseClock(s); ok {
		return hhmm, true
	}

	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute()), true
		}
	}

	// A whole shift object occasionally gets serialized where a single time
	// belongs. Recover the first recognizable field instead of rejecting.
	if strings.HasPrefix(s, "{") {
		return fromEmbeddedEntry(s)
	}

	return "", false
}

// Minutes converts a canonical or near-canonical clock value to minutes
// since midnight.
func Minutes(raw string) (int, bool) {
	hhmm, ok := Normalize(raw)
	if !ok {
		return 0, false
	}
	h, _ := strconv.Atoi(hhmm[:2])
	m, _ := strconv.Atoi(hhmm[3:])
	return h*60 + m, true
}

// parseClock handles "H:MM" and "HH:MM", validating field ranges.
func parseClock(s string) (string, bool) {
	sep := strings.IndexByte(s, ':')
	if sep < 1 || sep > 2 || len(s) != sep+3 {
		return "", false
	}
	h, err := strconv.Atoi(s[:sep])
	if err != nil {
		return "", false
	}
	m, err := strconv.Atoi(s[sep+1:])
	if err != nil {
		return "", false
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return "", false
	}
	return fmt.Sprintf("%02d:%02d", h, m), true
}

// fromEmbeddedEntry pulls the first shift field out of a JSON-encoded
// object and normalizes it recursively.
func fromEmbeddedEntry(s string) (string, bool) {
	var entry struct {
		StartTime      string `json:"startTime"`
		EndTime        string `json:"endTime"`
		LunchStartTime string `json:"lunchStartTime"`
		LunchEndTime   string `json:"lunchEndTime"`
	}
	if err := json.Unmarshal([]byte(s), &entry); err != nil {
		return "", false
	}
	for _, candidate := range []string{entry.StartTime, entry.EndTime, entry.LunchStartTime, entry.LunchEndTime} {
		if candidate == "" {
			continue
		}
		return Normalize(candidate)
	}
	return "", false
}
