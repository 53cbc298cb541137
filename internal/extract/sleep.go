// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"
	"io"

	"github.com/pdiddy/fitbit2garmin/internal/dates"
	"github.com/pdiddy/fitbit2garmin/pkg/types"
)

// stageOrder fixes the emission order of stage totals within a session.
var stageOrder = []types.SleepStageType{
	types.StageREM,
	types.StageLight,
	types.StageDeep,
	types.StageAwake,
}

// stageNames maps source level names onto stage types. "wake" is the
// modern name, "awake" the classic one.
var stageNames = map[string]types.SleepStageType{
	"rem":   types.StageREM,
	"light": types.StageLight,
	"deep":  types.StageDeep,
	"wake":  types.StageAwake,
	"awake": types.StageAwake,
}

// Sleep extracts sleep sessions from sleep-*.json files. Sessions keep
// their full start/end timestamps; range filtering applies to the start
// date. Stage totals come from the levels summary when present, otherwise
// from summing the interval data.
func Sleep(l Layout, r dates.Range, w io.Writer) []types.SleepSession {
	if !checkSource(l.GlobalExport, w) {
		return nil
	}

	var sessions []types.SleepSession
	for _, path := range sourceFiles(l.GlobalExport, "sleep-*.json") {
		doc, err := decodeFile(path)
		if err != nil {
			fmt.Fprintf(w, "warning: %v\n", err)
			continue
		}
		for i, e := range flattenDoc(doc) {
			sess, ok := parseSession(e.obj)
			if !ok {
				fmt.Fprintf(w, "warning: %s: skipping unrecognized sleep entry %d\n", path, i)
				continue
			}
			if !r.Contains(sess.Start) {
				continue
			}
			sessions = append(sessions, sess)
		}
	}
	return sessions
}

func parseSession(m map[string]any) (types.SleepSession, bool) {
	startStr, ok := str(m, "startTime", "sleep_start", "start_time")
	if !ok {
		return types.SleepSession{}, false
	}
	start, err := dates.ParseTimestamp(startStr)
	if err != nil {
		return types.SleepSession{}, false
	}

	sess := types.SleepSession{Start: start}
	if endStr, ok := str(m, "endTime", "sleep_end", "end_time"); ok {
		if end, err := dates.ParseTimestamp(endStr); err == nil {
			sess.End = end
		}
	}

	totals, ok := stageTotals(m)
	if !ok {
		return types.SleepSession{}, false
	}
	for _, st := range stageOrder {
		sess.Stages = append(sess.Stages, types.SleepStage{Type: st, Minutes: totals[st]})
	}
	return sess, true
}

// stageTotals computes per-stage minutes, trying the levels summary shape
// first and falling back to summing interval data.
func stageTotals(m map[string]any) (map[types.SleepStageType]float64, bool) {
	levels, ok := m["levels"].(map[string]any)
	if !ok {
		return nil, false
	}

	if summary, ok := levels["summary"].(map[string]any); ok {
		totals := make(map[types.SleepStageType]float64)
		found := false
		for name, stage := range stageNames {
			entry, ok := summary[name].(map[string]any)
			if !ok {
				continue
			}
			if mins, ok := num(entry, "minutes"); ok {
				totals[stage] += mins
				found = true
			}
		}
		if found {
			return totals, true
		}
	}

	data, ok := levels["data"].([]any)
	if !ok {
		return nil, false
	}
	totals := make(map[types.SleepStageType]float64)
	found := false
	for _, iv := range data {
		entry, ok := iv.(map[string]any)
		if !ok {
			continue
		}
		name, ok := str(entry, "level")
		if !ok {
			continue
		}
		stage, ok := stageNames[name]
		if !ok {
			continue
		}
		if secs, ok := num(entry, "seconds"); ok {
			totals[stage] += secs / 60
			found = true
		}
	}
	return totals, found
}
