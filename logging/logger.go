// Package logging provides the run-wide append-only log sink. Every
// pipeline component writes through it; the console only carries styled
// status lines.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// LogFileName is the file created inside the log directory.
const LogFileName = "convert.log"

// Logger writes timestamped, leveled lines to a single log file opened in
// append mode. One line per event, no rotation. Open it at run start and
// Close it when the run ends.
type Logger struct {
	zl   zerolog.Logger
	file *os.File
	path string
}

// New opens (or creates) the log file inside dir and returns a ready
// Logger.
func New(dir string) (*Logger, error) {
	path := filepath.Join(dir, LogFileName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}

	writer := zerolog.ConsoleWriter{
		Out:        f,
		NoColor:    true,
		TimeFormat: "2006-01-02 15:04:05",
		FormatLevel: func(i interface{}) string {
			return strings.ToUpper(fmt.Sprintf("%s", i))
		},
	}
	zl := zerolog.New(writer).With().Timestamp().Logger()

	return &Logger{zl: zl, file: f, path: path}, nil
}

// Path returns the location of the log file.
func (l *Logger) Path() string {
	return l.path
}

// Close flushes and closes the log file.
func (l *Logger) Close() error {
	return l.file.Close()
}

// Info logs at INFO level.
func (l *Logger) Info(format string, args ...interface{}) {
	l.zl.Info().Msgf(format, args...)
}

// Warn logs at WARN level.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.zl.Warn().Msgf(format, args...)
}

// Error logs at ERROR level.
func (l *Logger) Error(format string, args ...interface{}) {
	l.zl.Error().Msgf(format, args...)
}
