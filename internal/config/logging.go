// Package config loads rendercheck settings from the environment and sets up logging.
package config

import (
	"io"
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"
)

// SetupLogger creates a dual-output logger: text to stderr, JSON to file.
// The CLI, MCP server and HTTP server share one log file, so every record
// carries the component that wrote it.
// Returns the logger and a cleanup function to close the file.
func SetupLogger(logFile string, level slog.Level, component string) (*slog.Logger, func() error) {
	opts := &slog.HandlerOptions{Level: level, AddSource: level <= slog.LevelDebug}
	stderrHandler := slog.NewTextHandler(os.Stderr, opts)

	if logFile == "" {
		return slog.New(stderrHandler).With("component", component), func() error { return nil }
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		// Fall back to stderr-only if file fails
		logger := slog.New(stderrHandler).With("component", component)
		logger.Error("failed to open log file, using stderr only", "error", err, "file", logFile)
		return logger, func() error { return nil }
	}

	logger := slog.New(slogmulti.Fanout(stderrHandler, slog.NewJSONHandler(file, opts)))
	return logger.With("component", component), file.Close
}

// SetupLoggerWithWriters creates a logger with custom writers (for testing).
func SetupLoggerWithWriters(stderr, file io.Writer, level slog.Level, component string) *slog.Logger {
	stderrHandler := slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})
	fileHandler := slog.NewJSONHandler(file, &slog.HandlerOptions{Level: level})
	return slog.New(slogmulti.Fanout(stderrHandler, fileHandler)).With("component", component)
}
