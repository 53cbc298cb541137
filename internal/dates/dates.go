// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dates parses the date and timestamp representations found across
// Fitbit Takeout files and provides the inclusive range filter that gates
// every record before aggregation.
package dates

import (
	"fmt"
	"strings"
	"time"
)

// dateLayouts are the calendar-date and datetime layouts seen across export
// generations, tried in order. The MM/DD/YY forms come from the older
// Global Export Data files.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01/02/06 15:04:05",
	"01/02/06",
	"01/02/2006 15:04:05",
	"01/02/2006",
}

// timestampLayouts are the full-timestamp layouts used by sleep and minute
// level records. The "-0700" form covers offsets written without a colon,
// e.g. "2025-12-03 21:12:30+0000".
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05-0700",
	"2006-01-02 15:04:05-07:00",
	"2006-01-02 15:04:05",
}

// ParseDay parses a source date or datetime string and normalizes it to a
// plain calendar date (midnight UTC), which is the keying and filtering
// granularity for all daily tables.
func ParseDay(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if strings.Contains(s, "T") {
		t, err := ParseTimestamp(s)
		if err != nil {
			return time.Time{}, err
		}
		return Day(t), nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Day(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// ParseTimestamp parses a full date+time string, preserving the time of day.
// Sleep sessions key on these; everything else reduces them to a day via
// ParseDay.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	if strings.HasSuffix(s, "Z") {
		s = strings.TrimSuffix(s, "Z") + "+00:00"
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// Day truncates a timestamp to its calendar date at midnight UTC.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Range is an inclusive calendar-date range. A zero Start or End leaves
// that side unbounded, matching the CLI's optional --start/--end flags.
type Range struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether the calendar date of t falls within the range,
// inclusive on both ends. A zero t (the unparsable-date sentinel) is never
// within any range.
func (r Range) Contains(t time.Time) bool {
	if t.IsZero() {
		return false
	}
	d := Day(t)
	if !r.Start.IsZero() && d.Before(Day(r.Start)) {
		return false
	}
	if !r.End.IsZero() && d.After(Day(r.End)) {
		return false
	}
	return true
}
