// Package logging provides the structured logger used throughout choreo.
// It is a thin wrapper over github.com/edaniels/golog so every package
// takes a Logger interface instead of reaching for a package-global
// default or fmt.Println.
package logging

import (
	"testing"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Logger is the structured logger type threaded through every long-running
// entry point (sequence.Search, sparseladder.Graph.FindPath, ...).
type Logger = golog.Logger

// New returns a development-mode logger named name.
func New(name string) Logger {
	return golog.NewDevelopmentLogger(name)
}

// NewTest returns a logger that also writes to t's test log.
func NewTest(t *testing.T) Logger {
	return golog.NewTestLogger(t)
}

// NewDebug returns a debug-level logger named name.
func NewDebug(name string) Logger {
	return golog.NewDebugLogger(name)
}

// NewZap builds a Logger from a caller-supplied zap.Config, for callers
// that need zap's own encoding/level knobs rather than golog's named
// development/debug constructors. A *zap.SugaredLogger satisfies
// Logger directly -- the same interop motionPlanner_test.go relies on
// when it passes logger.Sugar() anywhere a golog.Logger is expected.
func NewZap(cfg zap.Config) (Logger, error) {
	zl, err := cfg.Build()
	if err != nil {
		return nil, errors.Wrap(err, "logging: building zap logger")
	}
	return zl.Sugar(), nil
}

// NewJSON returns a production-configured, JSON-encoded Logger named
// name, for callers that want machine-parseable structured output
// (e.g. piping planlog-adjacent run logs into a log aggregator) instead
// of golog's human-readable development console format.
func NewJSON(name string) (Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.DisableStacktrace = true
	logger, err := NewZap(cfg)
	if err != nil {
		return nil, err
	}
	return logger.(*zap.SugaredLogger).Named(name), nil
}
