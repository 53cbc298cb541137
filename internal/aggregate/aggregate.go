// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package aggregate merges extractor output into exactly one row per key:
// calendar date for the daily tables, exact start timestamp for sleep
// sessions. Scalar fields merge field-by-field with last-write-wins;
// cumulative activity samples for the same day sum into the daily total.
package aggregate

import (
	"math"
	"sort"
	"time"

	"github.com/pdiddy/fitbit2garmin/pkg/types"
)

// Body merges body composition records by date. A later record overwrites
// earlier values field-by-field; fields it does not carry keep the earlier
// value. Rows with no observed fields are dropped.
func Body(records []types.DailyBody) []types.DailyBody {
	byDay := make(map[time.Time]*types.DailyBody)
	for _, rec := range records {
		cur := byDay[rec.Date]
		if cur == nil {
			c := rec
			byDay[rec.Date] = &c
			continue
		}
		if rec.WeightKg != nil {
			cur.WeightKg = rec.WeightKg
		}
		if rec.BMI != nil {
			cur.BMI = rec.BMI
		}
		if rec.FatPct != nil {
			cur.FatPct = rec.FatPct
		}
	}

	rows := make([]types.DailyBody, 0, len(byDay))
	for _, rec := range byDay {
		if rec.WeightKg == nil && rec.BMI == nil && rec.FatPct == nil {
			continue
		}
		rows = append(rows, *rec)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date.Before(rows[j].Date) })
	return rows
}

// Activity sums per-minute samples into daily totals, one row per date.
// Every activity metric is cumulative, so all samples for a (date, metric)
// pair add up; a metric with no samples on a date stays unobserved (nil).
func Activity(samples []types.ActivitySample) []types.DailyActivity {
	type dayTotals struct {
		sums map[types.ActivityMetric]float64
	}
	byDay := make(map[time.Time]*dayTotals)
	for _, s := range samples {
		d := byDay[s.Date]
		if d == nil {
			d = &dayTotals{sums: make(map[types.ActivityMetric]float64)}
			byDay[s.Date] = d
		}
		d.sums[s.Metric] += s.Value
	}

	rows := make([]types.DailyActivity, 0, len(byDay))
	for day, d := range byDay {
		if len(d.sums) == 0 {
			continue
		}
		row := types.DailyActivity{Date: day}
		if v, ok := d.sums[types.MetricSteps]; ok {
			n := int(math.Round(v))
			row.Steps = &n
		}
		if v, ok := d.sums[types.MetricCalories]; ok {
			c := v
			row.Calories = &c
		}
		if v, ok := d.sums[types.MetricDistanceKm]; ok {
			km := v
			row.DistanceKm = &km
		}
		if v, ok := d.sums[types.MetricFloors]; ok {
			n := int(math.Round(v))
			row.Floors = &n
		}
		if v, ok := d.sums[types.MetricActiveMinutes]; ok {
			n := int(math.Round(v))
			row.ActiveMinutes = &n
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date.Before(rows[j].Date) })
	return rows
}

// Sleep deduplicates sessions by exact start timestamp (last record wins)
// and orders them by start time. Sessions are never merged: two sessions
// on the same calendar date with different start times stay separate rows.
func Sleep(sessions []types.SleepSession) []types.SleepSession {
	byStart := make(map[int64]types.SleepSession)
	for _, s := range sessions {
		byStart[s.Start.UnixNano()] = s
	}

	rows := make([]types.SleepSession, 0, len(byStart))
	for _, s := range byStart {
		rows = append(rows, s)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Start.Before(rows[j].Start) })
	return rows
}

// Supplements merges supplementary records by date with a field-level
// union: a later record's columns overwrite, columns it lacks survive.
// Rows with no values after merge are dropped.
func Supplements(records []types.SupplementRecord) []types.SupplementRecord {
	byDay := make(map[time.Time]map[string]string)
	for _, rec := range records {
		values := byDay[rec.Date]
		if values == nil {
			values = make(map[string]string)
			byDay[rec.Date] = values
		}
		for col, v := range rec.Values {
			values[col] = v
		}
	}

	rows := make([]types.SupplementRecord, 0, len(byDay))
	for day, values := range byDay {
		if len(values) == 0 {
			continue
		}
		rows = append(rows, types.SupplementRecord{Date: day, Values: values})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date.Before(rows[j].Date) })
	return rows
}
