// Package health reports on the CSV data directory
package health

import (
	"encoding/json"
	"os"

	"github.com/krystal-group/stripe-statements/cmd/root"

	"github.com/spf13/cobra"
)

// Cmd represents the health command
var Cmd = &cobra.Command{
	Use:   "health",
	Short: "Check the CSV data directory",
	Long: `Check the CSV data directory and report per-company file counts,
record counts and any skipped rows.

The command exits non-zero when the data directory is missing or any file
contains rows that could not be parsed.

Example:
  stripe-statements health`,
	Run: healthFunc,
}

func healthFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Health command called")

	l, _, _, err := root.Components()
	if err != nil {
		root.Log.Fatalf("Failed to initialize: %v", err)
	}

	status := l.Health()

	data, err := json.MarshalIndent(status, "", "  ")
	if err != nil {
		root.Log.Fatalf("Failed to encode health report: %v", err)
	}
	data = append(data, '\n')
	if _, err := os.Stdout.Write(data); err != nil {
		root.Log.Fatalf("Failed to write health report: %v", err)
	}

	if !status.Healthy {
		root.Log.Warn("Data directory is not healthy")
		os.Exit(1)
	}
	root.Log.Info("Data directory is healthy")
}
