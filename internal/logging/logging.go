// Package logging constructs the structured file logger.
//
// Every run appends text-format slog records to a log file under the user's
// library directory. Logging is never load-bearing: when the file cannot be
// opened the caller downgrades to [Discard] and the run proceeds.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// FileName is the log file name created under the log directory.
const FileName = "macup.log"

// DefaultDir returns the standard log directory, ~/Library/Logs/macup.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate home directory: %w", err)
	}
	return filepath.Join(home, "Library", "Logs", "macup"), nil
}

// ParseLevel maps a level name to its slog level. Unrecognized names fall
// back to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Open appends to [FileName] under dir, creating the directory as needed,
// and returns a text-handler logger filtering at the given level.
func Open(dir string, level slog.Level) (*slog.Logger, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, FileName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}

	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})), nil
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
