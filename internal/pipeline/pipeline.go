// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline orchestrates a conversion run: validate directories,
// extract and aggregate every metric domain, then emit the fixed registry
// of output tables.
package pipeline

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/fitbit2garmin/internal/aggregate"
	"github.com/pdiddy/fitbit2garmin/internal/dates"
	"github.com/pdiddy/fitbit2garmin/internal/export"
	"github.com/pdiddy/fitbit2garmin/internal/extract"
	"github.com/pdiddy/fitbit2garmin/pkg/types"
)

// Config holds one run's settings, supplied by the CLI layer.
type Config struct {
	// InputDir is the Fitbit folder inside a Google Takeout export.
	InputDir string

	// OutputDir receives the CSV files (and optional database).
	OutputDir string

	// Range restricts output to records within the inclusive date range.
	Range dates.Range

	// DBPath, when non-empty, additionally exports every table into a
	// SQLite database at that path.
	DBPath string
}

// Summary reports what a run produced.
type Summary struct {
	Tables   []export.TableSummary
	Warnings int
}

// TotalRows returns the row count across all output tables.
func (s Summary) TotalRows() int {
	total := 0
	for _, t := range s.Tables {
		total += t.Rows
	}
	return total
}

// warnCounter counts warning lines passing through to the underlying
// writer so the summary can report them.
type warnCounter struct {
	w io.Writer
	n int
}

func (c *warnCounter) Write(p []byte) (int, error) {
	c.n += strings.Count(string(p), "warning:")
	return c.w.Write(p)
}

// table couples an output table with the writer that produces it. The
// registry of all nine tables is built once per run and iterated in fixed
// order.
type table struct {
	name  string
	file  string
	write func(path string) (int, error)
}

// Run executes the whole conversion. Only configuration failures (missing
// input root, uncreatable output directory) abort the run, and they do so
// before any output file is written; everything else degrades to warnings
// on w.
func Run(cfg Config, w io.Writer) (Summary, error) {
	info, err := os.Stat(cfg.InputDir)
	if err != nil || !info.IsDir() {
		return Summary{}, fmt.Errorf("input directory not found: %s", cfg.InputDir)
	}
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return Summary{}, fmt.Errorf("creating output directory %s: %w", cfg.OutputDir, err)
	}

	cw := &warnCounter{w: w}
	layout := extract.NewLayout(cfg.InputDir)

	body := aggregate.Body(extract.Body(layout, cfg.Range, cw))
	activities := aggregate.Activity(extract.Activity(layout, cfg.Range, cw))
	sleep := aggregate.Sleep(extract.Sleep(layout, cfg.Range, cw))
	restingHR := aggregate.Supplements(extract.RestingHeartRate(layout, cfg.Range, cw))
	hrv := aggregate.Supplements(extract.HRV(layout, cfg.Range, cw))
	respiratory := aggregate.Supplements(extract.RespiratoryRate(layout, cfg.Range, cw))
	spo2 := aggregate.Supplements(extract.SpO2(layout, cfg.Range, cw))
	sleepScores := aggregate.Supplements(extract.SleepScores(layout, cfg.Range, cw))
	readiness := aggregate.Supplements(extract.Readiness(layout, cfg.Range, cw))

	registry := []table{
		{"body", export.BodyFile, func(p string) (int, error) {
			return export.WriteBody(p, body)
		}},
		{"activities", export.ActivitiesFile, func(p string) (int, error) {
			return export.WriteActivities(p, activities)
		}},
		{"sleep", export.SleepFile, func(p string) (int, error) {
			return export.WriteSleep(p, sleep)
		}},
		{"resting_hr", export.RestingHRFile, func(p string) (int, error) {
			return export.WriteSupplement(p, export.RestingHRColumns, restingHR)
		}},
		{"hrv", export.HRVFile, func(p string) (int, error) {
			return export.WriteSupplement(p, export.HRVColumns, hrv)
		}},
		{"respiratory_rate", export.RespiratoryRateFile, func(p string) (int, error) {
			return export.WriteSupplement(p, export.RespiratoryRateColumns, respiratory)
		}},
		{"spo2", export.SpO2File, func(p string) (int, error) {
			return export.WriteSupplement(p, export.SpO2Columns, spo2)
		}},
		{"sleep_scores", export.SleepScoresFile, func(p string) (int, error) {
			return export.WriteSupplement(p, export.SleepScoresColumns, sleepScores)
		}},
		{"readiness", export.ReadinessFile, func(p string) (int, error) {
			return export.WriteSupplement(p, export.ReadinessColumns, readiness)
		}},
	}

	summary := Summary{}
	for _, t := range registry {
		rows, err := t.write(filepath.Join(cfg.OutputDir, t.file))
		if err != nil {
			return summary, fmt.Errorf("writing %s: %w", t.file, err)
		}
		fmt.Fprintf(w, "  %s: %d rows -> %s\n", t.name, rows, t.file)
		summary.Tables = append(summary.Tables, export.TableSummary{Name: t.name, File: t.file, Rows: rows})
	}

	if cfg.DBPath != "" {
		if err := exportDB(cfg.DBPath, body, activities, sleep, map[string]supplementTable{
			"resting_hr":       {export.RestingHRColumns, restingHR},
			"hrv":              {export.HRVColumns, hrv},
			"respiratory_rate": {export.RespiratoryRateColumns, respiratory},
			"spo2":             {export.SpO2Columns, spo2},
			"sleep_scores":     {export.SleepScoresColumns, sleepScores},
			"readiness":        {export.ReadinessColumns, readiness},
		}); err != nil {
			return summary, fmt.Errorf("exporting database: %w", err)
		}
		fmt.Fprintf(w, "  database -> %s\n", cfg.DBPath)
	}

	summary.Warnings = cw.n

	run := export.RunSummary{
		GeneratedAt: time.Now().UTC(),
		InputDir:    cfg.InputDir,
		OutputDir:   cfg.OutputDir,
		Tables:      summary.Tables,
		Warnings:    summary.Warnings,
	}
	if !cfg.Range.Start.IsZero() {
		run.Start = cfg.Range.Start.Format("2006-01-02")
	}
	if !cfg.Range.End.IsZero() {
		run.End = cfg.Range.End.Format("2006-01-02")
	}
	if err := export.WriteSummary(filepath.Join(cfg.OutputDir, export.SummaryFile), run); err != nil {
		return summary, err
	}

	return summary, nil
}

type supplementTable struct {
	columns []string
	rows    []types.SupplementRecord
}

func exportDB(path string, body []types.DailyBody, activities []types.DailyActivity, sleep []types.SleepSession, supplements map[string]supplementTable) error {
	db, err := export.OpenDB(path)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.InsertBody(body); err != nil {
		return err
	}
	if err := db.InsertActivities(activities); err != nil {
		return err
	}
	if err := db.InsertSleep(sleep); err != nil {
		return err
	}
	for name, t := range supplements {
		if err := db.InsertSupplement(name, t.columns, t.rows); err != nil {
			return err
		}
	}
	return nil
}
