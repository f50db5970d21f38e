// Package logging is the process-wide logger of the command line tools and
// the benchmark harness. The container packages never log.
package logging

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
)

var (
	once      sync.Once
	singleton *log.Logger
)

func get() *log.Logger {
	once.Do(func() {
		singleton = log.NewWithOptions(os.Stderr, log.Options{
			ReportCaller:    true,
			ReportTimestamp: true,
			TimeFormat:      time.RFC3339,
			Prefix:          "containers",
			Level:           log.InfoLevel,
		})
	})
	return singleton
}

// SetLevel sets the minimum level by name: debug, info, warn, error or
// fatal.
func SetLevel(name string) error {
	lvl, err := log.ParseLevel(name)
	if err != nil {
		return errors.Wrapf(err, "log level %q", name)
	}
	get().SetLevel(lvl)
	return nil
}

// SetOutput redirects the logger, e.g. to keep stderr free for a progress
// bar.
func SetOutput(w io.Writer) {
	get().SetOutput(w)
}

// Logger returns the shared logger for structured key/value logging.
func Logger() *log.Logger {
	return get()
}

func Debug(msg string, args ...interface{}) {
	get().Helper()
	get().Debugf(msg, args...)
}

func Info(msg string, args ...interface{}) {
	get().Helper()
	get().Infof(msg, args...)
}

func Warn(msg string, args ...interface{}) {
	get().Helper()
	get().Warnf(msg, args...)
}

func Error(msg string, args ...interface{}) {
	get().Helper()
	get().Errorf(msg, args...)
}

func Fatal(msg string, args ...interface{}) {
	get().Helper()
	get().Fatalf(msg, args...)
}
