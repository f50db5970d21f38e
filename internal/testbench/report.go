package testbench

import (
	"encoding/json"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/errors/oserror"
)

// BenchmarkResult holds results for one run of one workload.
type BenchmarkResult struct {
	Implementation string  `json:"implementation"`
	Workload       string  `json:"workload"`
	Operations     int64   `json:"operations"`
	Elements       int     `json:"elements"`
	Producers      int     `json:"producers,omitempty"`
	Consumers      int     `json:"consumers,omitempty"`
	Elapsed        string  `json:"elapsed"` // measured time, e.g. "1.2s"
	NsPerOp        float64 `json:"ns_per_op"`
	Timestamp      int64   `json:"timestamp"`
	GoVersion      string  `json:"go_version"`
}

// SystemInfo holds system information.
type SystemInfo struct {
	NumCPU      int     `json:"num_cpu"`
	CPUModel    string  `json:"cpu_model,omitempty"`
	CPUSpeedMHz float64 `json:"cpu_speed_mhz,omitempty"`
	GOARCH      string  `json:"go_arch"`
	TotalMemory uint64  `json:"total_memory_bytes,omitempty"`
}

// FullReport represents a complete benchmark session.
type FullReport struct {
	SessionID   string            `json:"session_id"`
	SessionTime string            `json:"session_time"`
	SystemInfo  SystemInfo        `json:"system_info"`
	Benchmarks  []BenchmarkResult `json:"benchmarks"`
}

// LoadReports reads every session stored in path. A missing file holds no
// sessions.
func LoadReports(path string) ([]FullReport, error) {
	data, err := os.ReadFile(path)
	if oserror.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	if len(data) == 0 {
		return nil, nil
	}
	var sessions []FullReport
	if err := json.Unmarshal(data, &sessions); err != nil {
		return nil, errors.Wrapf(err, "decoding %s", path)
	}
	return sessions, nil
}

// AppendReports adds sessions to the ones already stored in path.
func AppendReports(path string, sessions ...FullReport) error {
	previous, err := LoadReports(path)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(append(previous, sessions...), "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding sessions")
	}
	return errors.Wrapf(os.WriteFile(path, data, 0644), "writing %s", path)
}
