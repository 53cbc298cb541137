// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"
	"io"
	"math"
	"sort"
	"time"

	"github.com/pdiddy/fitbit2garmin/internal/dates"
	"github.com/pdiddy/fitbit2garmin/internal/units"
	"github.com/pdiddy/fitbit2garmin/pkg/types"
)

// vitalsField maps an output column to the source keys tried in priority
// order for its value.
type vitalsField struct {
	column string
	keys   []string
}

// dailyVitals reads per-day records matching pattern under dir, mapping
// each entry's fields onto output columns. Entries with no recognizable
// field are skipped with a warning; entries with no parseable date are
// excluded silently.
func dailyVitals(dir, pattern string, fields []vitalsField, r dates.Range, w io.Writer) []types.SupplementRecord {
	var records []types.SupplementRecord
	for _, path := range sourceFiles(dir, pattern) {
		doc, err := decodeFile(path)
		if err != nil {
			fmt.Fprintf(w, "warning: %v\n", err)
			continue
		}
		for i, e := range flattenDoc(doc) {
			day, ok := entryDay(e, "timestamp", "dateTime", "date")
			if !ok {
				continue
			}
			if !r.Contains(day) {
				continue
			}
			values := make(map[string]string)
			for _, f := range fields {
				if v, ok := num(e.obj, f.keys...); ok {
					values[f.column] = units.Num(v)
				} else if s, ok := str(e.obj, f.keys...); ok {
					values[f.column] = s
				}
			}
			if len(values) == 0 {
				fmt.Fprintf(w, "warning: %s: skipping entry %d with no recognized fields\n", path, i)
				continue
			}
			records = append(records, types.SupplementRecord{Date: day, Values: values})
		}
	}
	return records
}

// RestingHeartRate extracts the daily resting heart rate. The value is
// sometimes a plain number and sometimes nested as {"value": {"value": n}}
// depending on export generation; toFloat unwraps both.
func RestingHeartRate(l Layout, r dates.Range, w io.Writer) []types.SupplementRecord {
	if !checkSource(l.PhysicalActivity, w) {
		return nil
	}
	return dailyVitals(l.PhysicalActivity, "resting_heart_rate-*.json", []vitalsField{
		{column: "resting_hr", keys: []string{"value", "beats per minute", "bpm"}},
	}, r, w)
}

// HRV extracts the daily heart rate variability summary.
func HRV(l Layout, r dates.Range, w io.Writer) []types.SupplementRecord {
	if !checkSource(l.PhysicalActivity, w) {
		return nil
	}
	return dailyVitals(l.PhysicalActivity, "Daily Heart Rate Variability Summary - *.json", []vitalsField{
		{column: "hrv_rmssd", keys: []string{"rmssd", "dailyRmssd", "average heart rate variability milliseconds"}},
		{column: "nrem_hr", keys: []string{"nremhr", "nremHR", "non rem heart rate beats per minute"}},
		{column: "entropy", keys: []string{"entropy"}},
		{column: "deep_sleep_rmssd", keys: []string{"deep_rmssd", "deepRmssd", "deep sleep root mean square of successive differences milliseconds"}},
	}, r, w)
}

// RespiratoryRate extracts the daily respiratory rate summary.
func RespiratoryRate(l Layout, r dates.Range, w io.Writer) []types.SupplementRecord {
	if !checkSource(l.PhysicalActivity, w) {
		return nil
	}
	return dailyVitals(l.PhysicalActivity, "Daily Respiratory Rate Summary - *.json", []vitalsField{
		{column: "respiratory_rate", keys: []string{"daily_respiratory_rate", "full_sleep_breathing_rate", "breaths per minute"}},
	}, r, w)
}

// SleepScores extracts nightly sleep scores from the Sleep Score folder.
func SleepScores(l Layout, r dates.Range, w io.Writer) []types.SupplementRecord {
	if !checkSource(l.SleepScore, w) {
		return nil
	}
	return dailyVitals(l.SleepScore, "sleep_score*.json", []vitalsField{
		{column: "overall_score", keys: []string{"overall_score"}},
		{column: "composition_score", keys: []string{"composition_score"}},
		{column: "revitalization_score", keys: []string{"revitalization_score"}},
		{column: "duration_score", keys: []string{"duration_score"}},
		{column: "deep_sleep_min", keys: []string{"deep_sleep_in_minutes"}},
		{column: "resting_hr", keys: []string{"resting_heart_rate"}},
	}, r, w)
}

// Readiness extracts the daily readiness score and its subcomponents.
func Readiness(l Layout, r dates.Range, w io.Writer) []types.SupplementRecord {
	if !checkSource(l.PhysicalActivity, w) {
		return nil
	}
	return dailyVitals(l.PhysicalActivity, "Daily Readiness Score - *.json", []vitalsField{
		{column: "score", keys: []string{"readiness_score_value", "score"}},
		{column: "level", keys: []string{"readiness_state", "type", "level"}},
		{column: "hrv_readiness", keys: []string{"hrv_subcomponent", "heart rate variability readiness"}},
		{column: "rhr_readiness", keys: []string{"rhr_subcomponent", "resting heart rate readiness"}},
		{column: "sleep_readiness", keys: []string{"sleep_subcomponent", "sleep readiness"}},
	}, r, w)
}

// SpO2 extracts daily blood oxygen saturation. Daily summary files supply
// avg/min/max directly; days covered only by minute-level readings get a
// representative row computed from those readings. A daily summary always
// wins over a minute-derived row for the same day.
func SpO2(l Layout, r dates.Range, w io.Writer) []types.SupplementRecord {
	if !checkSource(l.SpO2, w) {
		return nil
	}

	minuteDerived := minuteSpO2(l, r, w)

	daily := dailyVitals(l.SpO2, "Daily SpO2 - *.json", []vitalsField{
		{column: "avg_spo2", keys: []string{"average_value"}},
		{column: "min_spo2", keys: []string{"lower_bound"}},
		{column: "max_spo2", keys: []string{"upper_bound"}},
	}, r, w)

	// Minute-derived rows first: the aggregator's last-write-wins merge
	// then lets daily summaries override them.
	return append(minuteDerived, daily...)
}

// minuteSpO2 reduces minute-level SpO2 readings to one avg/min/max record
// per day.
func minuteSpO2(l Layout, r dates.Range, w io.Writer) []types.SupplementRecord {
	type daySpO2 struct {
		sum, min, max float64
		n             int
	}
	byDay := make(map[time.Time]*daySpO2)

	for _, path := range sourceFiles(l.SpO2, "Minute SpO2 - *.json") {
		doc, err := decodeFile(path)
		if err != nil {
			fmt.Fprintf(w, "warning: %v\n", err)
			continue
		}
		for _, e := range flattenDoc(doc) {
			day, ok := entryDay(e, "timestamp", "dateTime", "date")
			if !ok {
				continue
			}
			if !r.Contains(day) {
				continue
			}
			v, ok := num(e.obj, "value")
			if !ok {
				continue
			}
			d := byDay[day]
			if d == nil {
				d = &daySpO2{min: math.MaxFloat64}
				byDay[day] = d
			}
			d.sum += v
			d.n++
			d.min = math.Min(d.min, v)
			d.max = math.Max(d.max, v)
		}
	}

	days := make([]time.Time, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	records := make([]types.SupplementRecord, 0, len(days))
	for _, day := range days {
		d := byDay[day]
		records = append(records, types.SupplementRecord{
			Date: day,
			Values: map[string]string{
				"avg_spo2": units.Float(d.sum/float64(d.n), 1),
				"min_spo2": units.Num(d.min),
				"max_spo2": units.Num(d.max),
			},
		})
	}
	return records
}
