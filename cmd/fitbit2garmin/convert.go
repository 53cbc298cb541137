// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/fitbit2garmin/internal/dates"
	"github.com/pdiddy/fitbit2garmin/internal/pipeline"
)

var convertCmd = &cobra.Command{
	Use:   "convert <fitbit-dir>",
	Short: "Convert a Takeout export into Garmin CSV files",
	Long: `Convert reads the Fitbit folder inside a Google Takeout export and
writes the Garmin-importable tables (body, activities, sleep) and the
supplementary health metric tables to the output directory.

An optional inclusive date range restricts which records are converted.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringP("output", "o", "", "output directory (default: parent of the Fitbit folder)")
	convertCmd.Flags().StringP("start", "s", "", "inclusive start date (YYYY-MM-DD)")
	convertCmd.Flags().StringP("end", "e", "", "inclusive end date (YYYY-MM-DD)")
	convertCmd.Flags().String("db", "", "also export all tables into a SQLite database at this path")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	inputDir, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolving input path: %w", err)
	}

	outputDir, _ := cmd.Flags().GetString("output")
	if outputDir == "" {
		outputDir = viper.GetString("output")
	}
	if outputDir == "" {
		outputDir = filepath.Dir(inputDir)
	}

	r, err := rangeFromFlags(cmd)
	if err != nil {
		return err
	}

	dbPath, _ := cmd.Flags().GetString("db")
	if dbPath == "" {
		dbPath = viper.GetString("db")
	}

	cfg := pipeline.Config{
		InputDir:  inputDir,
		OutputDir: outputDir,
		Range:     r,
		DBPath:    dbPath,
	}

	fmt.Printf("Converting %s\n", inputDir)
	if r.Start.IsZero() && r.End.IsZero() {
		fmt.Println("Date range: all available data")
	} else {
		fmt.Printf("Date range: %s to %s\n", boundLabel(r.Start), boundLabel(r.End))
	}

	summary, err := pipeline.Run(cfg, os.Stderr)
	if err != nil {
		return err
	}

	fmt.Printf("\nWrote %d rows across %d tables to %s\n",
		summary.TotalRows(), len(summary.Tables), outputDir)
	if summary.Warnings > 0 {
		fmt.Printf("%d warning(s); see above\n", summary.Warnings)
	}
	fmt.Println("Upload the garmin_*.csv files at https://connect.garmin.com/modern/import-data")
	return nil
}

func rangeFromFlags(cmd *cobra.Command) (dates.Range, error) {
	var r dates.Range

	if s, _ := cmd.Flags().GetString("start"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return r, fmt.Errorf("invalid start date %q: use YYYY-MM-DD", s)
		}
		r.Start = t
	}
	if e, _ := cmd.Flags().GetString("end"); e != "" {
		t, err := time.Parse("2006-01-02", e)
		if err != nil {
			return r, fmt.Errorf("invalid end date %q: use YYYY-MM-DD", e)
		}
		r.End = t
	}
	if !r.Start.IsZero() && !r.End.IsZero() && r.End.Before(r.Start) {
		return r, fmt.Errorf("end date %s is before start date %s",
			r.End.Format("2006-01-02"), r.Start.Format("2006-01-02"))
	}
	return r, nil
}

func boundLabel(t time.Time) string {
	if t.IsZero() {
		return "open"
	}
	return t.Format("2006-01-02")
}
