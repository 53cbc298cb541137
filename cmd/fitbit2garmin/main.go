// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the fitbit2garmin CLI, which turns a
// Fitbit Google Takeout export into Garmin Connect importable CSV files.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the fitbit2garmin CLI.
var rootCmd = &cobra.Command{
	Use:   "fitbit2garmin",
	Short: "Convert Fitbit Google Takeout data to Garmin Connect CSV files",
	Long: `fitbit2garmin reads a Fitbit data export (Google Takeout format) and
generates CSV files that can be imported into Garmin Connect, plus
supplementary CSVs for health metrics Garmin does not support importing.

The expected export structure under the Fitbit folder:

  Global Export Data/
  Physical Activity_GoogleData/
  Sleep Score/
  Oxygen Saturation (SpO2)/

Do not open the generated CSV files in Excel before importing; Excel
rewrites the formatting and makes them invalid for Garmin.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./fitbit2garmin.yaml or ~/.config/fitbit2garmin/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("fitbit2garmin")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "fitbit2garmin"))
		}
	}

	viper.SetEnvPrefix("FITBIT2GARMIN")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
