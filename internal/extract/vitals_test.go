// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/fitbit2garmin/internal/dates"
)

func TestRestingHeartRateNestedValue(t *testing.T) {
	root := t.TempDir()
	writeSource(t, root, physicalActivityDir, "resting_heart_rate-2025-03-01.json", `[
		{"dateTime": "03/01/25 00:00:00", "value": {"date": "03/01/25", "value": 57.3, "error": 5.2}},
		{"dateTime": "03/02/25 00:00:00", "value": 58}
	]`)

	var buf bytes.Buffer
	records := RestingHeartRate(NewLayout(root), dates.Range{}, &buf)

	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}
	if got := records[0].Values["resting_hr"]; got != "57.3" {
		t.Errorf("nested value = %q, want 57.3", got)
	}
	if got := records[1].Values["resting_hr"]; got != "58" {
		t.Errorf("plain value = %q, want 58", got)
	}
}

func TestHRVColumns(t *testing.T) {
	root := t.TempDir()
	writeSource(t, root, physicalActivityDir, "Daily Heart Rate Variability Summary - 2025-03.json", `[
		{"timestamp": "2025-03-01T00:00:00", "rmssd": 42.5, "nremhr": 55.1, "entropy": 2.813, "deep_rmssd": 48.2}
	]`)

	var buf bytes.Buffer
	records := HRV(NewLayout(root), dates.Range{}, &buf)

	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}
	want := map[string]string{
		"hrv_rmssd":        "42.5",
		"nrem_hr":          "55.1",
		"entropy":          "2.813",
		"deep_sleep_rmssd": "48.2",
	}
	for col, v := range want {
		if got := records[0].Values[col]; got != v {
			t.Errorf("%s = %q, want %q", col, got, v)
		}
	}
}

func TestRespiratoryRate(t *testing.T) {
	root := t.TempDir()
	writeSource(t, root, physicalActivityDir, "Daily Respiratory Rate Summary - 2025-03-01.json",
		`[{"timestamp": "2025-03-01T00:00:00", "daily_respiratory_rate": 14.8}]`)

	var buf bytes.Buffer
	records := RespiratoryRate(NewLayout(root), dates.Range{}, &buf)

	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}
	if got := records[0].Values["respiratory_rate"]; got != "14.8" {
		t.Errorf("respiratory_rate = %q, want 14.8", got)
	}
}

func TestSleepScores(t *testing.T) {
	root := t.TempDir()
	writeSource(t, root, sleepScoreDir, "sleep_score.json", `[
		{"timestamp": "2025-03-02T07:10:00Z", "overall_score": 82, "composition_score": 21,
		 "revitalization_score": 18, "duration_score": 43, "deep_sleep_in_minutes": 85,
		 "resting_heart_rate": 56.4}
	]`)

	var buf bytes.Buffer
	records := SleepScores(NewLayout(root), dates.Range{}, &buf)

	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}
	if got := records[0].Values["overall_score"]; got != "82" {
		t.Errorf("overall_score = %q, want 82", got)
	}
	if got := records[0].Values["deep_sleep_min"]; got != "85" {
		t.Errorf("deep_sleep_min = %q, want 85", got)
	}
}

func TestReadinessLevelString(t *testing.T) {
	root := t.TempDir()
	writeSource(t, root, physicalActivityDir, "Daily Readiness Score - 2025-03-01.json", `[
		{"date": "2025-03-01", "readiness_score_value": 71.5, "readiness_state": "ready",
		 "hrv_subcomponent": 24, "rhr_subcomponent": 28, "sleep_subcomponent": 19.5}
	]`)

	var buf bytes.Buffer
	records := Readiness(NewLayout(root), dates.Range{}, &buf)

	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}
	if got := records[0].Values["score"]; got != "71.5" {
		t.Errorf("score = %q, want 71.5", got)
	}
	if got := records[0].Values["level"]; got != "ready" {
		t.Errorf("level = %q, want ready (string state preserved)", got)
	}
}

func TestSpO2DailySummary(t *testing.T) {
	root := t.TempDir()
	writeSource(t, root, spo2Dir, "Daily SpO2 - 2025-03-01.json",
		`[{"timestamp": "2025-03-01T00:00:00", "average_value": 96.1, "lower_bound": 92.0, "upper_bound": 99.0}]`)

	var buf bytes.Buffer
	records := SpO2(NewLayout(root), dates.Range{}, &buf)

	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}
	if got := records[0].Values["avg_spo2"]; got != "96.1" {
		t.Errorf("avg_spo2 = %q, want 96.1", got)
	}
}

func TestSpO2MinuteAggregation(t *testing.T) {
	root := t.TempDir()
	writeSource(t, root, spo2Dir, "Minute SpO2 - 2025-03-02.json", `[
		{"timestamp": "2025-03-02T01:00:00", "value": 95.0},
		{"timestamp": "2025-03-02T01:01:00", "value": 97.0},
		{"timestamp": "2025-03-02T01:02:00", "value": 93.0}
	]`)

	var buf bytes.Buffer
	records := SpO2(NewLayout(root), dates.Range{}, &buf)

	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1 daily representative row", len(records))
	}
	v := records[0].Values
	if v["avg_spo2"] != "95.0" {
		t.Errorf("avg_spo2 = %q, want 95.0", v["avg_spo2"])
	}
	if v["min_spo2"] != "93" {
		t.Errorf("min_spo2 = %q, want 93", v["min_spo2"])
	}
	if v["max_spo2"] != "97" {
		t.Errorf("max_spo2 = %q, want 97", v["max_spo2"])
	}
}

func TestSpO2DailyWinsOverMinuteDerived(t *testing.T) {
	root := t.TempDir()
	writeSource(t, root, spo2Dir, "Daily SpO2 - 2025-03-02.json",
		`[{"timestamp": "2025-03-02T00:00:00", "average_value": 96.5, "lower_bound": 94.0, "upper_bound": 98.5}]`)
	writeSource(t, root, spo2Dir, "Minute SpO2 - 2025-03-02.json", `[
		{"timestamp": "2025-03-02T01:00:00", "value": 90.0}
	]`)

	var buf bytes.Buffer
	records := SpO2(NewLayout(root), dates.Range{}, &buf)

	// Minute-derived rows come first so a later daily summary overrides
	// them in the aggregator's last-write-wins merge.
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2 (minute-derived then daily)", len(records))
	}
	if records[0].Values["avg_spo2"] != "90.0" {
		t.Errorf("first record should be minute-derived, got %v", records[0].Values)
	}
	if records[1].Values["avg_spo2"] != "96.5" {
		t.Errorf("second record should be the daily summary, got %v", records[1].Values)
	}
}

func TestVitalsDayBoundaries(t *testing.T) {
	root := t.TempDir()
	writeSource(t, root, physicalActivityDir, "resting_heart_rate-span.json", `[
		{"dateTime": "2025-01-01", "value": 55},
		{"dateTime": "2025-07-01", "value": 56},
		{"dateTime": "2026-01-01", "value": 57}
	]`)

	r := dates.Range{
		Start: day(2025, time.January, 1),
		End:   day(2025, time.December, 31),
	}
	var buf bytes.Buffer
	records := RestingHeartRate(NewLayout(root), r, &buf)

	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}
}

func TestVitalsMissingFolderWarnsOnce(t *testing.T) {
	var buf bytes.Buffer
	records := SleepScores(NewLayout(t.TempDir()), dates.Range{}, &buf)

	if records != nil {
		t.Errorf("records = %v, want nil", records)
	}
	if got := strings.Count(buf.String(), "warning:"); got != 1 {
		t.Errorf("warning count = %d, want 1", got)
	}
}
