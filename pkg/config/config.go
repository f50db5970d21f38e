// Package config holds the settings of the benchmark tools. Settings are
// read from a TOML file; anything the file leaves out keeps its default.
package config

import (
	"bytes"
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/errors/oserror"
	"github.com/pelletier/go-toml/v2"

	"github.com/makma3d/containers/internal/testbench"
	"github.com/makma3d/containers/pkg/array"
)

// Concurrency is an alias for testbench.Config. This allows other programs to
// import the producer/consumer configuration without pulling in the entire
// testbench package.
type Concurrency = testbench.Config

// Bench configures the workload runs.
type Bench struct {
	// Iterations is how many times every workload runs.
	Iterations int `toml:"iterations"`

	// Elements is the element count handed to each workload.
	Elements int `toml:"elements"`

	// Workloads restricts the run to the named workloads. Empty runs all.
	Workloads []string `toml:"workloads"`

	// Growth is the default growth policy, "exact" or "doubling".
	Growth string `toml:"growth"`

	// ResultsFile is where sessions are appended as JSON.
	ResultsFile string `toml:"results_file"`

	// Progress shows a progress bar on stderr.
	Progress bool `toml:"progress"`
}

// Handoff configures the timed producer/consumer runs on the blocking queue.
type Handoff struct {
	// Duration of one run, in time.ParseDuration syntax.
	Duration string `toml:"duration"`

	// Capacity of the blocking queue.
	Capacity int `toml:"capacity"`

	Concurrency []Concurrency `toml:"concurrency"`
}

// Log configures the logger.
type Log struct {
	Level string `toml:"level"`
}

// Config is the whole configuration file.
type Config struct {
	Bench   Bench   `toml:"bench"`
	Handoff Handoff `toml:"handoff"`
	Log     Log     `toml:"log"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Bench: Bench{
			Iterations:  5,
			Elements:    10_000,
			Growth:      array.GrowExact.String(),
			ResultsFile: "test-results.json",
		},
		Handoff: Handoff{
			Duration: "1s",
			Capacity: 1024,
			Concurrency: []Concurrency{
				{NumProducers: 2, NumConsumers: 2},
				{NumProducers: 10, NumConsumers: 10},
				{NumProducers: 50, NumConsumers: 50},
			},
		},
		Log: Log{Level: "info"},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if oserror.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrapf(err, "reading %s", path)
	}
	if err := Decode(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "loading %s", path)
	}
	return cfg, nil
}

// Decode parses TOML into cfg, keeping the values of fields the document
// does not set, and validates the result. Unknown keys are an error. A
// document that lists any concurrency settings replaces all of cfg's.
func Decode(data []byte, cfg *Config) error {
	fallback := cfg.Handoff.Concurrency
	cfg.Handoff.Concurrency = nil
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	err := dec.Decode(cfg)
	if len(cfg.Handoff.Concurrency) == 0 {
		cfg.Handoff.Concurrency = fallback
	}
	if err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return errors.Wrapf(err, "line %d column %d", row, col)
		}
		return errors.Wrap(err, "decoding config")
	}
	return cfg.Validate()
}

// Encode renders cfg as TOML.
func Encode(cfg Config) ([]byte, error) {
	data, err := toml.Marshal(cfg)
	return data, errors.Wrap(err, "encoding config")
}

// Validate checks that every setting is usable.
func (c Config) Validate() error {
	if c.Bench.Iterations < 1 {
		return errors.Newf("bench.iterations must be at least 1, got %d", c.Bench.Iterations)
	}
	if c.Bench.Elements < 1 {
		return errors.Newf("bench.elements must be at least 1, got %d", c.Bench.Elements)
	}
	if _, err := array.ParseGrowth(c.Bench.Growth); err != nil {
		return errors.Wrap(err, "bench.growth")
	}
	if _, err := c.HandoffDuration(); err != nil {
		return err
	}
	if c.Handoff.Capacity < 1 {
		return errors.Newf("handoff.capacity must be at least 1, got %d", c.Handoff.Capacity)
	}
	for i, cc := range c.Handoff.Concurrency {
		if cc.NumProducers < 1 || cc.NumConsumers < 1 {
			return errors.Newf("handoff.concurrency[%d]: need at least one producer and one consumer", i)
		}
	}
	return nil
}

// HandoffDuration parses Handoff.Duration.
func (c Config) HandoffDuration() (time.Duration, error) {
	d, err := time.ParseDuration(c.Handoff.Duration)
	if err != nil {
		return 0, errors.Wrap(err, "handoff.duration")
	}
	if d <= 0 {
		return 0, errors.Newf("handoff.duration must be positive, got %s", d)
	}
	return d, nil
}

// GrowthPolicy parses Bench.Growth.
func (c Config) GrowthPolicy() array.Growth {
	g, err := array.ParseGrowth(c.Bench.Growth)
	if err != nil {
		return array.GrowExact
	}
	return g
}
