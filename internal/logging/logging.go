// Package logging builds the editor's structured logger.
//
// The terminal owns stdout and stderr while the editor runs, so log output
// goes to a file or is discarded.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// Config configures the logger.
type Config struct {
	// Level is the minimum level written.
	Level logrus.Level

	// Output is where logs are written. If nil, File is opened; if File is
	// also empty, logs are discarded.
	Output io.Writer

	// File is a path to append logs to.
	File string

	// JSON selects the JSON formatter instead of text.
	JSON bool
}

// DefaultConfig returns the default configuration: info level, written to
// DefaultFile.
func DefaultConfig() Config {
	return Config{
		Level: logrus.InfoLevel,
		File:  DefaultFile(),
	}
}

// DefaultFile returns the default log path, or "" if no cache directory is
// available.
func DefaultFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "quill", "quill.log")
}

// ParseLevel parses a level name, accepting any case and "warning".
// Unknown names yield info.
func ParseLevel(s string) logrus.Level {
	level, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

// New creates a logger. The returned closer releases the log file, if one
// was opened, and is never nil.
func New(cfg Config) (*logrus.Logger, io.Closer, error) {
	logger := logrus.New()
	logger.SetLevel(cfg.Level)
	if cfg.JSON {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			DisableColors:   true,
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02T15:04:05.000",
		})
	}

	switch {
	case cfg.Output != nil:
		logger.SetOutput(cfg.Output)
		return logger, nopCloser{}, nil
	case cfg.File != "":
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		logger.SetOutput(f)
		return logger, f, nil
	default:
		logger.SetOutput(io.Discard)
		return logger, nopCloser{}, nil
	}
}

// Discard returns a logger that writes nothing.
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// Component returns an entry tagged with the component field.
func Component(logger logrus.FieldLogger, name string) *logrus.Entry {
	if logger == nil {
		logger = Discard()
	}
	return logger.WithField("component", name)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
