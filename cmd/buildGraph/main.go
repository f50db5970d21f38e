// Command buildGraph renders the stored benchmark sessions as one chart per
// workload: ns/op against element count, one line per implementation.
package main

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/makma3d/containers/internal/logging"
	"github.com/makma3d/containers/internal/testbench"
)

var (
	jsonFile     string
	outputPrefix string
)

var rootCmd = &cobra.Command{
	Use:           "buildGraph",
	Short:         "renders benchmark sessions as PNG charts",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		sessions, err := testbench.LoadReports(jsonFile)
		if err != nil {
			return err
		}
		if len(sessions) == 0 {
			return errors.Newf("no sessions found in %s", jsonFile)
		}
		files, err := renderAll(groupSessions(sessions), outputPrefix)
		for _, f := range files {
			fmt.Fprintf(cmd.OutOrStdout(), "Graph saved to %s\n", f)
		}
		return err
	},
}

func init() {
	rootCmd.Flags().StringVar(&jsonFile, "jsonfile", "test-results.json", "Path to JSON file containing test sessions")
	rootCmd.Flags().StringVar(&outputPrefix, "out", "benchmark_graph", "Output graph image filename prefix")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logging.Error("%+v", err)
		os.Exit(1)
	}
}
