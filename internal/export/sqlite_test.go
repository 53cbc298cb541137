// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/fitbit2garmin/pkg/types"
)

func TestDBExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garmin_metrics.db")

	db, err := OpenDB(path)
	require.NoError(t, err)

	body := []types.DailyBody{
		{Date: time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), WeightKg: fp(70.0), FatPct: fp(22.1)},
		{Date: time.Date(2025, time.March, 2, 0, 0, 0, 0, time.UTC), BMI: fp(23.0)},
	}
	require.NoError(t, db.InsertBody(body))

	require.NoError(t, db.InsertActivities([]types.DailyActivity{
		{Date: time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), Steps: ip(7500)},
	}))

	require.NoError(t, db.InsertSleep([]types.SleepSession{
		{
			Start:  time.Date(2025, time.March, 5, 23, 0, 0, 0, time.UTC),
			End:    time.Date(2025, time.March, 6, 7, 0, 0, 0, time.UTC),
			Stages: []types.SleepStage{{Type: types.StageDeep, Minutes: 90}},
		},
	}))

	require.NoError(t, db.InsertSupplement("spo2", SpO2Columns, []types.SupplementRecord{
		{
			Date:   time.Date(2025, time.March, 2, 0, 0, 0, 0, time.UTC),
			Values: map[string]string{"avg_spo2": "96.5"},
		},
	}))
	require.NoError(t, db.Close())

	// Verify through a fresh connection.
	conn, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer conn.Close()

	var n int
	require.NoError(t, conn.QueryRow(`SELECT count(*) FROM body`).Scan(&n))
	assert.Equal(t, 2, n)

	var weight sql.NullFloat64
	require.NoError(t, conn.QueryRow(`SELECT weight_kg FROM body WHERE date = '2025-03-02'`).Scan(&weight))
	assert.False(t, weight.Valid, "unobserved weight stored as NULL")

	var steps int
	require.NoError(t, conn.QueryRow(`SELECT steps FROM activities WHERE date = '2025-03-01'`).Scan(&steps))
	assert.Equal(t, 7500, steps)

	var deep float64
	require.NoError(t, conn.QueryRow(`SELECT deep_minutes FROM sleep`).Scan(&deep))
	assert.Equal(t, 90.0, deep)

	var avg sql.NullString
	require.NoError(t, conn.QueryRow(`SELECT min_spo2 FROM supplement_spo2`).Scan(&avg))
	assert.False(t, avg.Valid, "missing supplement column stored as NULL")
}

func TestOpenDBReplacesPreviousRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garmin_metrics.db")

	db, err := OpenDB(path)
	require.NoError(t, err)
	require.NoError(t, db.InsertBody([]types.DailyBody{
		{Date: time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), WeightKg: fp(70.0)},
	}))
	require.NoError(t, db.Close())

	db, err = OpenDB(path)
	require.NoError(t, err)
	defer db.Close()

	var n int
	require.NoError(t, db.db.QueryRow(`SELECT count(*) FROM body`).Scan(&n))
	assert.Zero(t, n, "previous run's rows are gone")
}
