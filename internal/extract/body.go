// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"
	"io"

	"github.com/pdiddy/fitbit2garmin/internal/dates"
	"github.com/pdiddy/fitbit2garmin/internal/units"
	"github.com/pdiddy/fitbit2garmin/pkg/types"
)

// bodyParser attempts one historical weight-entry shape. It returns false
// to decline, letting the next shape in bodyParsers try the entry.
type bodyParser func(e rawEntry) (types.DailyBody, bool)

// bodyParsers is the fixed priority order of weight record shapes. The
// pounds shape is the common one in Global Export Data; the grams shape
// appears in older Google-merged exports.
var bodyParsers = []bodyParser{parseWeightLbs, parseWeightGrams}

// Body extracts per-day body composition records from weight-*.json files.
// Weight is converted to kilograms before the record leaves the extractor.
func Body(l Layout, r dates.Range, w io.Writer) []types.DailyBody {
	if !checkSource(l.GlobalExport, w) {
		return nil
	}

	var records []types.DailyBody
	for _, path := range sourceFiles(l.GlobalExport, "weight-*.json") {
		doc, err := decodeFile(path)
		if err != nil {
			fmt.Fprintf(w, "warning: %v\n", err)
			continue
		}
		for i, e := range flattenDoc(doc) {
			rec, ok := parseBodyEntry(e)
			if !ok {
				fmt.Fprintf(w, "warning: %s: skipping unrecognized weight entry %d\n", path, i)
				continue
			}
			if !r.Contains(rec.Date) {
				continue
			}
			records = append(records, rec)
		}
	}
	return records
}

func parseBodyEntry(e rawEntry) (types.DailyBody, bool) {
	for _, p := range bodyParsers {
		if rec, ok := p(e); ok {
			return rec, true
		}
	}
	return types.DailyBody{}, false
}

// parseWeightLbs handles the primary shape: weight in pounds with optional
// bmi and body fat, the latter sometimes under "bodyFat" instead of "fat".
// Values may be numbers or strings.
func parseWeightLbs(e rawEntry) (types.DailyBody, bool) {
	day, ok := entryDay(e, "date", "dateTime", "timestamp")
	if !ok {
		return types.DailyBody{}, false
	}

	rec := types.DailyBody{Date: day}
	if lbs, ok := num(e.obj, "weight"); ok {
		kg := units.LbsToKg(lbs)
		rec.WeightKg = &kg
	}
	if bmi, ok := num(e.obj, "bmi"); ok {
		rec.BMI = &bmi
	}
	if fat, ok := num(e.obj, "fat", "bodyFat", "body_fat", "body_fat_percentage"); ok {
		rec.FatPct = &fat
	}
	if rec.WeightKg == nil && rec.BMI == nil && rec.FatPct == nil {
		return types.DailyBody{}, false
	}
	return rec, true
}

// parseWeightGrams handles the Google-merged shape where weight is recorded
// in grams under a "weight grams" style key.
func parseWeightGrams(e rawEntry) (types.DailyBody, bool) {
	day, ok := entryDay(e, "timestamp", "date", "dateTime")
	if !ok {
		return types.DailyBody{}, false
	}

	g, ok := num(e.obj, "weight grams", "weight_grams", "weightGrams")
	if !ok {
		return types.DailyBody{}, false
	}
	kg := g / 1000

	rec := types.DailyBody{Date: day, WeightKg: &kg}
	if fat, ok := num(e.obj, "body fat percentage", "body_fat_percentage"); ok {
		rec.FatPct = &fat
	}
	return rec, true
}
