// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"
	"io"

	"github.com/pdiddy/fitbit2garmin/internal/dates"
	"github.com/pdiddy/fitbit2garmin/internal/units"
	"github.com/pdiddy/fitbit2garmin/pkg/types"
)

// activitySource maps one per-minute file family to its output metric and
// the unit conversion applied to each raw value.
type activitySource struct {
	pattern string
	metric  types.ActivityMetric
	convert func(float64) float64
}

// activitySources lists every activity file family. The three active-minute
// families all feed the single active_minutes daily total; distance files
// record meters and are converted to kilometers per sample.
var activitySources = []activitySource{
	{pattern: "steps-*.json", metric: types.MetricSteps},
	{pattern: "calories-*.json", metric: types.MetricCalories},
	{pattern: "distance-*.json", metric: types.MetricDistanceKm, convert: units.MetersToKm},
	{pattern: "floors-*.json", metric: types.MetricFloors},
	{pattern: "lightly_active_minutes-*.json", metric: types.MetricActiveMinutes},
	{pattern: "moderately_active_minutes-*.json", metric: types.MetricActiveMinutes},
	{pattern: "very_active_minutes-*.json", metric: types.MetricActiveMinutes},
}

// Activity extracts raw activity samples from the per-minute metric files.
// Samples for the same day and metric are summed later by the aggregator;
// the extractor only normalizes dates and units.
func Activity(l Layout, r dates.Range, w io.Writer) []types.ActivitySample {
	if !checkSource(l.GlobalExport, w) {
		return nil
	}

	var samples []types.ActivitySample
	for _, src := range activitySources {
		for _, path := range sourceFiles(l.GlobalExport, src.pattern) {
			doc, err := decodeFile(path)
			if err != nil {
				fmt.Fprintf(w, "warning: %v\n", err)
				continue
			}
			for _, e := range flattenDoc(doc) {
				day, ok := entryDay(e, "dateTime", "date", "timestamp")
				if !ok {
					continue
				}
				if !r.Contains(day) {
					continue
				}
				v, ok := num(e.obj, "value")
				if !ok {
					fmt.Fprintf(w, "warning: %s: skipping %s sample without a numeric value\n", path, src.metric)
					continue
				}
				if src.convert != nil {
					v = src.convert(v)
				}
				samples = append(samples, types.ActivitySample{
					Date:   day,
					Metric: src.metric,
					Value:  v,
				})
			}
		}
	}
	return samples
}
