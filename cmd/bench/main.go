// Command bench times the container workloads and the blocking queue
// handoff, appends the sessions to a JSON file and renders them as a
// markdown table.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/makma3d/containers/internal/logging"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "bench",
	Short:         "benchmarks the containers",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "bench.toml",
		"TOML configuration file; a missing file means defaults")
	rootCmd.AddCommand(runCmd, tableCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logging.Error("%+v", err)
		os.Exit(1)
	}
}
