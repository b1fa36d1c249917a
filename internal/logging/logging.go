// Package logging configures the process-wide zerolog logger.
//
// User-facing command output goes straight to stdout/stderr; this logger
// carries the operational trail (registry reads, process kills, imcl
// invocations) and is silent at the default level unless --debug or
// --log-level raises it.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Config controls logger construction.
type Config struct {
	Level  string // zerolog level name; empty means info
	Debug  bool   // forces debug level regardless of Level
	Format string // "console" (default) or "json"
}

var logger = zerolog.New(io.Discard)

// Init builds the package logger from cfg. Called once from the CLI root
// before any command runs.
func Init(cfg Config) error {
	level := zerolog.InfoLevel
	if cfg.Debug {
		level = zerolog.DebugLevel
	} else if cfg.Level != "" {
		parsed, err := zerolog.ParseLevel(cfg.Level)
		if err != nil {
			return fmt.Errorf("parse log level %q: %w", cfg.Level, err)
		}
		level = parsed
	}

	var out io.Writer = os.Stderr
	switch cfg.Format {
	case "", "console":
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}
	case "json":
	default:
		return fmt.Errorf("unknown log format %q (want console or json)", cfg.Format)
	}

	logger = zerolog.New(out).Level(level).With().Timestamp().Logger()

	return nil
}

// L returns the configured logger.
func L() zerolog.Logger {
	return logger
}

// WithRun returns a logger tagged with a reconciliation run id.
func WithRun(runID string) zerolog.Logger {
	return logger.With().Str("run_id", runID).Logger()
}

// SetOutput rebuilds the logger against w keeping the current level.
// Tests use it to capture the operational trail.
func SetOutput(w io.Writer) {
	logger = logger.Output(w)
}
