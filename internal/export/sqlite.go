// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/fitbit2garmin/pkg/types"
)

// DB is an optional second export target: every aggregated table lands in
// one SQLite database for ad-hoc querying. It is write-only from the
// pipeline's point of view and recreated from scratch each run.
type DB struct {
	db *sql.DB
}

// OpenDB creates the export database at path, replacing any database left
// by a previous run.
func OpenDB(path string) (*DB, error) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("removing stale database %s: %w", path, err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	d := &DB{db: db}
	if err := d.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return d, nil
}

// Close releases the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS body (
			date TEXT PRIMARY KEY,
			weight_kg REAL,
			bmi REAL,
			fat_pct REAL
		)`,
		`CREATE TABLE IF NOT EXISTS activities (
			date TEXT PRIMARY KEY,
			steps INTEGER,
			calories REAL,
			distance_km REAL,
			floors INTEGER,
			active_minutes INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS sleep (
			start_time TEXT PRIMARY KEY,
			end_time TEXT,
			rem_minutes REAL,
			light_minutes REAL,
			deep_minutes REAL,
			awake_minutes REAL
		)`,
	}
	for _, stmt := range statements {
		if _, err := d.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// InsertBody stores the body composition rows.
func (d *DB) InsertBody(rows []types.DailyBody) error {
	for _, r := range rows {
		_, err := d.db.Exec(
			`INSERT OR REPLACE INTO body (date, weight_kg, bmi, fat_pct) VALUES (?, ?, ?, ?)`,
			r.Date.Format(dayFormat), r.WeightKg, r.BMI, r.FatPct,
		)
		if err != nil {
			return fmt.Errorf("inserting body row %s: %w", r.Date.Format(dayFormat), err)
		}
	}
	return nil
}

// InsertActivities stores the daily activity rows.
func (d *DB) InsertActivities(rows []types.DailyActivity) error {
	for _, r := range rows {
		_, err := d.db.Exec(
			`INSERT OR REPLACE INTO activities
			 (date, steps, calories, distance_km, floors, active_minutes)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			r.Date.Format(dayFormat), r.Steps, r.Calories, r.DistanceKm, r.Floors, r.ActiveMinutes,
		)
		if err != nil {
			return fmt.Errorf("inserting activity row %s: %w", r.Date.Format(dayFormat), err)
		}
	}
	return nil
}

// InsertSleep stores one row per sleep session.
func (d *DB) InsertSleep(rows []types.SleepSession) error {
	for _, s := range rows {
		_, err := d.db.Exec(
			`INSERT OR REPLACE INTO sleep
			 (start_time, end_time, rem_minutes, light_minutes, deep_minutes, awake_minutes)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			s.Start.Format(timestampFormat), s.End.Format(timestampFormat),
			s.StageMinutes(types.StageREM), s.StageMinutes(types.StageLight),
			s.StageMinutes(types.StageDeep), s.StageMinutes(types.StageAwake),
		)
		if err != nil {
			return fmt.Errorf("inserting sleep row %s: %w", s.Start.Format(timestampFormat), err)
		}
	}
	return nil
}

// InsertSupplement creates a table named supplement_<name> with a date
// column plus the given columns, and stores the rows. Column names come
// from the fixed table registry, never from input data.
func (d *DB) InsertSupplement(name string, columns []string, rows []types.SupplementRecord) error {
	table := "supplement_" + name

	defs := make([]string, 0, len(columns)+1)
	defs = append(defs, "date TEXT PRIMARY KEY")
	for _, col := range columns {
		defs = append(defs, col+" TEXT")
	}
	create := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", table, strings.Join(defs, ", "))
	if _, err := d.db.Exec(create); err != nil {
		return fmt.Errorf("creating table %s: %w", table, err)
	}

	cols := append([]string{"date"}, columns...)
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	insert := fmt.Sprintf(
		"INSERT OR REPLACE INTO %s (%s) VALUES (%s)",
		table, strings.Join(cols, ", "), placeholders,
	)

	for _, r := range rows {
		args := make([]any, 0, len(cols))
		args = append(args, r.Date.Format(dayFormat))
		for _, col := range columns {
			if v, ok := r.Values[col]; ok {
				args = append(args, v)
			} else {
				args = append(args, nil)
			}
		}
		if _, err := d.db.Exec(insert, args...); err != nil {
			return fmt.Errorf("inserting %s row %s: %w", table, r.Date.Format(dayFormat), err)
		}
	}
	return nil
}
