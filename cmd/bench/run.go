package main

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/makma3d/containers/internal/logging"
	"github.com/makma3d/containers/internal/testbench"
	"github.com/makma3d/containers/pkg/config"
	"github.com/makma3d/containers/pkg/traits"
)

var runFlags struct {
	iterations int
	elements   int
	cpus       int
	handoff    bool
	progress   bool
	json       bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "runs the workloads and prints one line per measurement",
	Long: `
Runs every configured workload the configured number of times, then, with
--handoff, the timed producer/consumer runs through the blocking queue.
With --json the session is appended to the results file.
`,
	Args: cobra.NoArgs,
	RunE: runBench,
}

func init() {
	f := runCmd.Flags()
	f.IntVar(&runFlags.iterations, "iter", 0, "iterations per workload (overrides the config)")
	f.IntVar(&runFlags.elements, "elements", 0, "elements per workload (overrides the config)")
	f.IntVar(&runFlags.cpus, "cpu", 0, "GOMAXPROCS for the run; 0 keeps the default")
	f.BoolVar(&runFlags.handoff, "handoff", false, "include the producer/consumer runs")
	f.BoolVar(&runFlags.progress, "progress", false, "display a progress bar with ETA")
	f.BoolVar(&runFlags.json, "json", false, "append the session to the results file")
}

// loadConfig reads the config file and applies the command line overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, err
	}
	if runFlags.iterations > 0 {
		cfg.Bench.Iterations = runFlags.iterations
	}
	if runFlags.elements > 0 {
		cfg.Bench.Elements = runFlags.elements
	}
	if runFlags.progress {
		cfg.Bench.Progress = true
	}
	if err := logging.SetLevel(cfg.Log.Level); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func runBench(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if runFlags.cpus > 0 {
		runtime.GOMAXPROCS(min(runFlags.cpus, runtime.NumCPU()))
	}
	workloads := testbench.FilterWorkloads(testbench.Workloads(cfg.GrowthPolicy()), cfg.Bench.Workloads)
	if len(workloads) == 0 {
		return errors.Newf("no workload matches %v", cfg.Bench.Workloads)
	}

	total := cfg.Bench.Iterations * len(workloads)
	if runFlags.handoff {
		total += cfg.Bench.Iterations * len(cfg.Handoff.Concurrency)
	}
	out := cmd.OutOrStdout()
	bar := newProgress(cfg.Bench.Progress, total)

	sys := gatherSystemInfo()
	sys.NumCPU = runtime.GOMAXPROCS(0)
	logging.Info("session on %d CPUs (%s), %s memory", sys.NumCPU, sys.CPUModel,
		humanize.IBytes(sys.TotalMemory))

	var results []testbench.BenchmarkResult
	for iteration := 1; iteration <= cfg.Bench.Iterations; iteration++ {
		fmt.Fprintf(out, "iteration %d/%d\n", iteration, cfg.Bench.Iterations)
		for _, w := range workloads {
			r := testbench.RunWorkload(w, cfg.Bench.Elements)
			fmt.Fprintf(out, "  %-14s %-18s => %s ops, %.1f ns/op, took=%v\n",
				r.Workload, r.Implementation, humanize.Comma(r.Operations), r.NsPerOp, r.Elapsed)
			results = append(results, fromResult(r))
			_ = bar.Add(1)
		}
		if !runFlags.handoff {
			continue
		}
		hr, err := runHandoffs(out, cfg, bar)
		if err != nil {
			return err
		}
		results = append(results, hr...)
	}
	_ = bar.Finish()

	if !runFlags.json {
		return nil
	}
	session := testbench.FullReport{
		SessionID:   uuid.NewString(),
		SessionTime: time.Now().Format(time.RFC3339),
		SystemInfo:  sys,
		Benchmarks:  results,
	}
	if err := testbench.AppendReports(cfg.Bench.ResultsFile, session); err != nil {
		return err
	}
	logging.Info("wrote session %s to %s", session.SessionID, cfg.Bench.ResultsFile)
	return nil
}

func runHandoffs(out io.Writer, cfg config.Config, bar *progressbar.ProgressBar) ([]testbench.BenchmarkResult, error) {
	d, err := cfg.HandoffDuration()
	if err != nil {
		return nil, err
	}
	var results []testbench.BenchmarkResult
	for _, cc := range cfg.Handoff.Concurrency {
		runtime.GC()
		q := testbench.NewHandoff[int, traits.DCM](cfg.Handoff.Capacity)
		produced, consumed, elapsed, err := testbench.RunTimedTest(q, cc, d,
			func(i int) int { return i })
		if err != nil {
			return nil, errors.Wrapf(err, "handoff %d/%d", cc.NumProducers, cc.NumConsumers)
		}
		logging.Debug("handoff produced=%d consumed=%d", produced, consumed)
		nsPerOp := testbench.NsPerOp(elapsed.Nanoseconds(), consumed)
		impl := fmt.Sprintf("queue/blocking/%dx%d", cc.NumProducers, cc.NumConsumers)
		fmt.Fprintf(out, "  %-14s %-18s => %s msgs, %.1f ns/msg, took=%v\n",
			"handoff", impl, humanize.Comma(consumed), nsPerOp, elapsed)
		results = append(results, testbench.BenchmarkResult{
			Implementation: impl,
			Workload:       "handoff",
			Operations:     consumed,
			Elements:       cfg.Handoff.Capacity,
			Producers:      cc.NumProducers,
			Consumers:      cc.NumConsumers,
			Elapsed:        elapsed.String(),
			NsPerOp:        nsPerOp,
			Timestamp:      time.Now().Unix(),
			GoVersion:      runtime.Version(),
		})
		_ = bar.Add(1)
	}
	return results, nil
}

func fromResult(r testbench.Result) testbench.BenchmarkResult {
	return testbench.BenchmarkResult{
		Implementation: r.Implementation,
		Workload:       r.Workload,
		Operations:     r.Operations,
		Elements:       r.Elements,
		Elapsed:        r.Elapsed.String(),
		NsPerOp:        r.NsPerOp,
		Timestamp:      time.Now().Unix(),
		GoVersion:      runtime.Version(),
	}
}

// newProgress returns a progress bar on stderr, or one that draws nothing.
func newProgress(show bool, total int) *progressbar.ProgressBar {
	if !show {
		return progressbar.DefaultSilent(int64(total))
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("benchmarking"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionSetWidth(20),
		progressbar.OptionClearOnFinish(),
	)
}
