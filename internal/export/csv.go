// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export serializes aggregated rows into the fixed set of output
// tables: nine CSV files with exact headers and formatting, an optional
// SQLite database, and a YAML run summary.
package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/pdiddy/fitbit2garmin/internal/units"
	"github.com/pdiddy/fitbit2garmin/pkg/types"
)

// Output file names, fixed by the destination importer.
const (
	BodyFile            = "garmin_body.csv"
	ActivitiesFile      = "garmin_activities.csv"
	SleepFile           = "garmin_sleep.csv"
	RestingHRFile       = "garmin_supplement_resting_hr.csv"
	HRVFile             = "garmin_supplement_hrv.csv"
	RespiratoryRateFile = "garmin_supplement_respiratory_rate.csv"
	SpO2File            = "garmin_supplement_spo2.csv"
	SleepScoresFile     = "garmin_supplement_sleep_scores.csv"
	ReadinessFile       = "garmin_supplement_readiness.csv"
)

// Supplement table columns, in output order. The leading date column is
// implicit in every table.
var (
	RestingHRColumns       = []string{"resting_hr"}
	HRVColumns             = []string{"hrv_rmssd", "nrem_hr", "entropy", "deep_sleep_rmssd"}
	RespiratoryRateColumns = []string{"respiratory_rate"}
	SpO2Columns            = []string{"avg_spo2", "min_spo2", "max_spo2"}
	SleepScoresColumns     = []string{"overall_score", "composition_score", "revitalization_score", "duration_score", "deep_sleep_min", "resting_hr"}
	ReadinessColumns       = []string{"score", "level", "hrv_readiness", "rhr_readiness", "sleep_readiness"}
)

const (
	dayFormat       = "2006-01-02"
	timestampFormat = "01/02/2006 15:04"
)

// writeCSV creates (or truncates) path and writes the header row followed
// by the data rows. Writing is a single pass over in-memory rows, so the
// file is either complete or the whole run has already failed.
func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header to %s: %w", path, err)
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row to %s: %w", path, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing %s: %w", path, err)
	}
	return f.Close()
}

// WriteBody writes the body composition table. Weight, BMI, and fat carry
// one decimal; unobserved fields are empty.
func WriteBody(path string, rows []types.DailyBody) (int, error) {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			r.Date.Format(dayFormat),
			units.OptFloat(r.WeightKg, 1),
			units.OptFloat(r.BMI, 1),
			units.OptFloat(r.FatPct, 1),
		})
	}
	return len(out), writeCSV(path, []string{"Date", "Weight", "BMI", "Fat"}, out)
}

// WriteActivities writes the daily activity table. Calories round to whole
// numbers and distance carries two decimals.
func WriteActivities(path string, rows []types.DailyActivity) (int, error) {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			r.Date.Format(dayFormat),
			units.OptInt(r.Steps),
			units.OptFloat(r.Calories, 0),
			units.OptFloat(r.DistanceKm, 2),
			units.OptInt(r.Floors),
			units.OptInt(r.ActiveMinutes),
		})
	}
	header := []string{"Date", "Steps", "Calories", "Distance", "Floors", "Active Minutes"}
	return len(out), writeCSV(path, header, out)
}

// WriteSleep writes one row per sleep session with MM/DD/YYYY HH:MM
// timestamps and whole-minute stage totals.
func WriteSleep(path string, rows []types.SleepSession) (int, error) {
	out := make([][]string, 0, len(rows))
	for _, s := range rows {
		out = append(out, []string{
			s.Start.Format(timestampFormat),
			s.End.Format(timestampFormat),
			units.Float(s.StageMinutes(types.StageREM), 0),
			units.Float(s.StageMinutes(types.StageLight), 0),
			units.Float(s.StageMinutes(types.StageDeep), 0),
			units.Float(s.StageMinutes(types.StageAwake), 0),
		})
	}
	header := []string{
		"Start Time", "End Time",
		"Minutes REM Sleep", "Minutes Light Sleep", "Minutes Deep Sleep", "Minutes Awake",
	}
	return len(out), writeCSV(path, header, out)
}

// WriteSupplement writes a supplementary table: a date column followed by
// the given columns, with empty fields for unobserved values.
func WriteSupplement(path string, columns []string, rows []types.SupplementRecord) (int, error) {
	header := append([]string{"date"}, columns...)
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		row := make([]string, 0, len(header))
		row = append(row, r.Date.Format(dayFormat))
		for _, col := range columns {
			row = append(row, r.Values[col])
		}
		out = append(out, row)
	}
	return len(out), writeCSV(path, header, out)
}
