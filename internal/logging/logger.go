package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// Log is the package-global logger configured by Init. Before Init is called
// it discards everything, so packages may log unconditionally.
var Log = zerolog.Nop()

// Get returns a pointer to the package-global logger.
func Get() *zerolog.Logger {
	return &Log
}

// ParseLevel maps "debug", "info", "warn" and "error" (any case) to a zerolog
// level, falling back to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Init initializes the global logger. If logFilePath is non-empty, logs are
// written to both stdout and the file. The returned func closes the file.
func Init(logFilePath, level string) (func(), error) {
	zerolog.SetGlobalLevel(ParseLevel(level))

	writers := []io.Writer{os.Stdout}
	var f *os.File
	if logFilePath != "" {
		if err := os.MkdirAll(filepath.Dir(logFilePath), 0o700); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		var err error
		f, err = os.OpenFile(logFilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		writers = append(writers, f)
	}
	Log = zerolog.New(io.MultiWriter(writers...)).With().Timestamp().Str("app", "dockwatch").Logger()
	return func() {
		if f != nil {
			_ = f.Close()
		}
	}, nil
}
