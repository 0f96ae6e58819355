// Package cli implements planctl, an offline front end to the plan engine.
package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "planctl",
	Short:        "Generate and inspect training plans offline",
	Long:         `planctl runs the training plan engine against a profile file without a database, printing the plan or exporting it as a calendar or spreadsheet.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(phasesCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
