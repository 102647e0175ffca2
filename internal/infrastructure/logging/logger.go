// Package logging provides structured logging for the reconciliation
// service.
//
// Logs are formatted as [LEVEL] [SYSTEM] [HH:MM:SS] message key=value, with
// colors when writing to a terminal.
package logging

import (
	"log/slog"
	"os"

	"github.com/ledgerlens/reconcile/internal/infrastructure/config"
)

// New creates a structured logger based on config.
func New(cfg config.LoggingConfig) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	handler := NewConsoleHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}

// NewWithSystem creates a logger scoped to a subsystem (e.g. "engine",
// "ingest", "api"); the subsystem shows up in its own bracket.
func NewWithSystem(cfg config.LoggingConfig, system string) *slog.Logger {
	return New(cfg).With("system", system)
}
