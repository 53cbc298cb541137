// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseDay(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		want  time.Time
		fails bool
	}{
		{"iso date", "2025-03-01", day(2025, time.March, 1), false},
		{"iso datetime", "2025-03-01T08:30:00Z", day(2025, time.March, 1), false},
		{"short us date", "03/01/25", day(2025, time.March, 1), false},
		{"minute sample datetime", "03/01/25 00:01:00", day(2025, time.March, 1), false},
		{"long us date", "03/01/2025", day(2025, time.March, 1), false},
		{"space separated datetime", "2025-03-01 23:59:00", day(2025, time.March, 1), false},
		{"padded", "  2025-03-01 ", day(2025, time.March, 1), false},
		{"empty", "", time.Time{}, true},
		{"garbage", "not-a-date", time.Time{}, true},
		{"month out of range", "2025-13-01", time.Time{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDay(tt.in)
			if tt.fails {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
		})
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want time.Time
	}{
		{
			"compact offset",
			"2025-12-03 21:12:30+0000",
			time.Date(2025, time.December, 3, 21, 12, 30, 0, time.UTC),
		},
		{
			"iso with millis",
			"2025-12-03T21:12:30.000",
			time.Date(2025, time.December, 3, 21, 12, 30, 0, time.UTC),
		},
		{
			"iso zulu",
			"2025-12-03T21:12:30Z",
			time.Date(2025, time.December, 3, 21, 12, 30, 0, time.UTC),
		},
		{
			"no offset",
			"2025-12-03 21:12:30",
			time.Date(2025, time.December, 3, 21, 12, 30, 0, time.UTC),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimestamp(tt.in)
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
		})
	}

	_, err := ParseTimestamp("yesterday evening")
	require.Error(t, err)
}

func TestRangeContains(t *testing.T) {
	r := Range{Start: day(2025, time.January, 1), End: day(2025, time.December, 31)}

	assert.True(t, r.Contains(day(2025, time.June, 15)))
	assert.True(t, r.Contains(day(2025, time.January, 1)), "start bound is inclusive")
	assert.True(t, r.Contains(day(2025, time.December, 31)), "end bound is inclusive")
	assert.False(t, r.Contains(day(2024, time.December, 31)), "one day before start")
	assert.False(t, r.Contains(day(2026, time.January, 1)), "one day after end")

	// Time of day never affects membership.
	assert.True(t, r.Contains(time.Date(2025, time.December, 31, 23, 59, 0, 0, time.UTC)))

	// Unbounded sides.
	assert.True(t, Range{}.Contains(day(1999, time.July, 4)))
	assert.True(t, Range{End: day(2025, time.January, 1)}.Contains(day(2020, time.March, 3)))

	// The unparsable-date sentinel is always excluded.
	assert.False(t, Range{}.Contains(time.Time{}))
}
