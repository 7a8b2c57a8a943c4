// Package logging builds the zap logger shared by the dashboard, the SSH
// server and the CLI. The interactive dashboard owns the terminal, so its
// logs only go to a file when one is configured.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options controls logger construction.
type Options struct {
	Verbose bool
	// Path receives the log output. "stderr" and "stdout" are accepted.
	// Empty disables logging entirely.
	Path string
}

// New builds a production zap logger for opts.
func New(opts Options) (*zap.Logger, error) {
	if opts.Path == "" {
		return zap.NewNop(), nil
	}

	config := zap.NewProductionConfig()
	config.Sampling = nil
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if opts.Verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	if opts.Path != "stderr" && opts.Path != "stdout" {
		if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
	}
	config.OutputPaths = []string{opts.Path}
	config.ErrorOutputPaths = []string{opts.Path}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
