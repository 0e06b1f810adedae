package main

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

// newLogger logs to stderr: colored console output on a terminal, JSON
// otherwise. The TUI owns the terminal, so quiet drops everything below
// error.
func newLogger(verbose, quiet bool) (*zap.Logger, error) {
	level := zap.InfoLevel
	switch {
	case quiet:
		level = zap.ErrorLevel
	case verbose:
		level = zap.DebugLevel
	}

	if term.IsTerminal(int(os.Stderr.Fd())) {
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(level)
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cfg.DisableStacktrace = !verbose
		return cfg.Build()
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	return cfg.Build()
}
