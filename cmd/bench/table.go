package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/makma3d/containers/internal/testbench"
	"github.com/makma3d/containers/pkg/config"
)

var tableFile string

var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "prints the last stored session as a markdown table",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		path := tableFile
		if path == "" {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			path = cfg.Bench.ResultsFile
		}
		sessions, err := testbench.LoadReports(path)
		if err != nil {
			return err
		}
		if len(sessions) == 0 {
			return errors.Newf("no sessions found in %s", path)
		}
		return outputMarkdownTable(cmd.OutOrStdout(), sessions[len(sessions)-1])
	},
}

func init() {
	tableCmd.Flags().StringVar(&tableFile, "jsonfile", "",
		"results file to read (defaults to the configured one)")
}

type tableRow struct {
	workload       string
	implementation string
	runs           int
	operations     int64
	summary        testbench.Summary
}

// buildRows groups the session's results by workload and implementation.
// Rows are ordered by workload, fastest median first.
func buildRows(session testbench.FullReport) []tableRow {
	type key struct{ workload, implementation string }
	samples := map[key][]float64{}
	ops := map[key]int64{}
	var order []key
	for _, b := range session.Benchmarks {
		k := key{b.Workload, b.Implementation}
		if _, ok := samples[k]; !ok {
			order = append(order, k)
		}
		samples[k] = append(samples[k], b.NsPerOp)
		ops[k] += b.Operations
	}
	rows := make([]tableRow, 0, len(order))
	for _, k := range order {
		rows = append(rows, tableRow{
			workload:       k.workload,
			implementation: k.implementation,
			runs:           len(samples[k]),
			operations:     ops[k],
			summary:        testbench.Summarize(samples[k]),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].workload != rows[j].workload {
			return rows[i].workload < rows[j].workload
		}
		return rows[i].summary.Median < rows[j].summary.Median
	})
	return rows
}

// outputMarkdownTable writes one row per workload and implementation.
func outputMarkdownTable(w io.Writer, session testbench.FullReport) error {
	sys := session.SystemInfo
	fmt.Fprintln(w, "## Last Session Benchmark Summary")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Session %s at %s: %d CPUs %s, %s memory, %s\n",
		session.SessionID, session.SessionTime, sys.NumCPU, sys.CPUModel,
		humanize.IBytes(sys.TotalMemory), sys.GOARCH)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "| Workload       | Implementation     | Runs | Operations     | Low (ns/op) | Median (ns/op) | High (ns/op) |")
	fmt.Fprintln(w, "|----------------|--------------------|------|----------------|-------------|----------------|--------------|")
	for _, r := range buildRows(session) {
		_, err := fmt.Fprintf(w, "| %-14s | %-18s | %4d | %14s | %11.1f | %14.1f | %12.1f |\n",
			r.workload, r.implementation, r.runs, humanize.Comma(r.operations),
			r.summary.Low, r.summary.Median, r.summary.High)
		if err != nil {
			return errors.Wrap(err, "writing table")
		}
	}
	return nil
}
