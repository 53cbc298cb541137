// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the normalized health records shared across the
// fitbit2garmin pipeline stages: extraction, aggregation, and export.
package types

import "time"

// DailyBody holds one day's body composition measurements. All fields are
// optional; a nil pointer means the source data never reported the value,
// and the CSV writer emits an empty field for it. Weight is always in
// kilograms by the time a record leaves an extractor.
type DailyBody struct {
	// Date is the calendar day the measurement belongs to. Only the
	// year/month/day components are meaningful.
	Date time.Time

	// WeightKg is the body weight in kilograms.
	WeightKg *float64

	// BMI is the body mass index.
	BMI *float64

	// FatPct is the body fat percentage.
	FatPct *float64
}

// ActivityMetric names one of the cumulative daily activity totals.
type ActivityMetric string

const (
	MetricSteps         ActivityMetric = "steps"
	MetricCalories      ActivityMetric = "calories"
	MetricDistanceKm    ActivityMetric = "distance_km"
	MetricFloors        ActivityMetric = "floors"
	MetricActiveMinutes ActivityMetric = "active_minutes"
)

// ActivitySample is a single raw reading from a per-minute (or per-day)
// activity source file. Samples for the same date and metric are summed by
// the aggregator into the daily total; distance samples are already in
// kilometers when they leave the extractor.
type ActivitySample struct {
	Date   time.Time
	Metric ActivityMetric
	Value  float64
}

// DailyActivity holds one day's aggregated activity totals. Nil means the
// metric was never observed for that day.
type DailyActivity struct {
	Date          time.Time
	Steps         *int
	Calories      *float64
	DistanceKm    *float64
	Floors        *int
	ActiveMinutes *int
}

// SleepStageType categorizes a sleep stage interval.
type SleepStageType string

const (
	StageREM   SleepStageType = "rem"
	StageLight SleepStageType = "light"
	StageDeep  SleepStageType = "deep"
	StageAwake SleepStageType = "awake"
)

// SleepStage is the total time a session spent in one stage.
type SleepStage struct {
	Type    SleepStageType
	Minutes float64
}

// SleepSession is one contiguous sleep period with its stage breakdown.
// Sessions keep their full start/end timestamps; two sessions on the same
// calendar date are distinct records keyed by start time.
type SleepSession struct {
	Start  time.Time
	End    time.Time
	Stages []SleepStage
}

// StageMinutes returns the total minutes the session spent in the given
// stage, or 0 if the stage never occurred.
func (s SleepSession) StageMinutes(t SleepStageType) float64 {
	var total float64
	for _, st := range s.Stages {
		if st.Type == t {
			total += st.Minutes
		}
	}
	return total
}

// SupplementRecord is one day's values for a supplementary health table
// (resting heart rate, HRV, respiratory rate, SpO2, sleep score,
// readiness). Values are keyed by output column name and already formatted
// for CSV emission; columns absent from the map are written as empty
// fields.
type SupplementRecord struct {
	Date   time.Time
	Values map[string]string
}
