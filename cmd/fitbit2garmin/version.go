package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of fitbit2garmin",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("fitbit2garmin %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
