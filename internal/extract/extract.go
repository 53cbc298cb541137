// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract scans a Fitbit Google Takeout export and produces
// normalized metric records. Each extractor tolerates the several JSON
// shapes the export has used over the years by trying a fixed priority
// list of parsers per record; a file or entry that fails every shape is
// skipped with a warning while extraction continues.
package extract

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/fitbit2garmin/internal/dates"
)

// Takeout subfolder names, fixed by the export format.
const (
	globalExportDir     = "Global Export Data"
	physicalActivityDir = "Physical Activity_GoogleData"
	sleepScoreDir       = "Sleep Score"
	spo2Dir             = "Oxygen Saturation (SpO2)"
)

// Layout resolves the fixed subfolder paths under a Takeout export root.
type Layout struct {
	Root             string
	GlobalExport     string
	PhysicalActivity string
	SleepScore       string
	SpO2             string
}

// NewLayout builds the folder layout for an export root.
func NewLayout(root string) Layout {
	return Layout{
		Root:             root,
		GlobalExport:     filepath.Join(root, globalExportDir),
		PhysicalActivity: filepath.Join(root, physicalActivityDir),
		SleepScore:       filepath.Join(root, sleepScoreDir),
		SpO2:             filepath.Join(root, spo2Dir),
	}
}

// checkSource reports whether a source folder exists, warning once when it
// does not. An absent folder empties that metric's table; it never aborts
// the run.
func checkSource(dir string, w io.Writer) bool {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		fmt.Fprintf(w, "warning: source folder not found: %s\n", dir)
		return false
	}
	return true
}

// sourceFiles lists files in dir matching pattern, sorted for deterministic
// processing order.
func sourceFiles(dir, pattern string) []string {
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil
	}
	sort.Strings(matches)
	return matches
}

// decodeFile parses one JSON document, preserving numeric precision via
// json.Number so string-vs-number field encodings can be coerced uniformly.
func decodeFile(path string) (any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return doc, nil
}

// rawEntry is one JSON record plus the day key it was nested under, when
// the file groups per-minute entries by day.
type rawEntry struct {
	obj map[string]any
	day string
}

// flattenDoc normalizes the three top-level file shapes into a flat entry
// list: an array of records, a single record object, or an object keyed by
// day whose values are arrays of per-minute records.
func flattenDoc(doc any) []rawEntry {
	switch v := doc.(type) {
	case []any:
		entries := make([]rawEntry, 0, len(v))
		for _, e := range v {
			if m, ok := e.(map[string]any); ok {
				entries = append(entries, rawEntry{obj: m})
			}
		}
		return entries
	case map[string]any:
		if looksLikeRecord(v) {
			return []rawEntry{{obj: v}}
		}
		days := make([]string, 0, len(v))
		for day := range v {
			days = append(days, day)
		}
		sort.Strings(days)
		var entries []rawEntry
		for _, day := range days {
			arr, ok := v[day].([]any)
			if !ok {
				continue
			}
			for _, e := range arr {
				if m, ok := e.(map[string]any); ok {
					entries = append(entries, rawEntry{obj: m, day: day})
				}
			}
		}
		return entries
	default:
		return nil
	}
}

// recordKeys are field names whose presence marks an object as a single
// record rather than a day-keyed container.
var recordKeys = []string{"dateTime", "date", "timestamp", "startTime", "value"}

func looksLikeRecord(m map[string]any) bool {
	for _, k := range recordKeys {
		if _, ok := m[k]; ok {
			return true
		}
	}
	return false
}

// toFloat coerces a JSON value into a float64, accepting numbers, numeric
// strings, and the nested {"value": ...} wrapper some export generations
// use.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float64:
		return n, true
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		return f, err == nil
	case map[string]any:
		if inner, ok := n["value"]; ok {
			return toFloat(inner)
		}
	}
	return 0, false
}

// num extracts a numeric field from a record, trying the given keys in
// priority order.
func num(m map[string]any, keys ...string) (float64, bool) {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			if f, ok := toFloat(v); ok {
				return f, true
			}
		}
	}
	return 0, false
}

// str extracts a string field, trying the given keys in priority order.
func str(m map[string]any, keys ...string) (string, bool) {
	for _, k := range keys {
		v, ok := m[k]
		if !ok || v == nil {
			continue
		}
		switch s := v.(type) {
		case string:
			if strings.TrimSpace(s) != "" {
				return s, true
			}
		case json.Number:
			return s.String(), true
		}
	}
	return "", false
}

// entryDay resolves the calendar date of an entry, preferring the enclosing
// day key and falling back to the entry's own date fields.
func entryDay(e rawEntry, keys ...string) (time.Time, bool) {
	if e.day != "" {
		if d, err := dates.ParseDay(e.day); err == nil {
			return d, true
		}
	}
	if s, ok := str(e.obj, keys...); ok {
		if d, err := dates.ParseDay(s); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}
