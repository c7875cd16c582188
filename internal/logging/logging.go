// Package logging provides the application-wide slog setup: console output
// plus a rotating log file under the user's config directory.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds logging configuration options.
type Config struct {
	// Level is the minimum log level to emit.
	Level slog.Level
	// Dir is the directory for log files. If empty, defaults to
	// os.UserConfigDir()/tweetmoji/logs.
	Dir string
	// MaxSizeMB is the maximum size of a single log file before rotation.
	MaxSizeMB int
	// MaxBackups is the maximum number of old log files to retain.
	MaxBackups int
	// MaxAgeDays is the maximum number of days to retain old log files.
	MaxAgeDays int
	// Compress determines if rotated log files should be compressed.
	Compress bool
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Level:      slog.LevelInfo,
		MaxSizeMB:  10,
		MaxBackups: 5,
		MaxAgeDays: 14,
		Compress:   true,
	}
}

// DefaultLogDir returns the default log directory path. Tries
// os.UserConfigDir, falls back to os.UserCacheDir, then os.TempDir.
func DefaultLogDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir, err = os.UserCacheDir()
		if err != nil {
			dir = os.TempDir()
		}
	}
	return filepath.Join(dir, "tweetmoji", "logs")
}

// Setup initializes logging. Records go to stdout and to a rotating file.
// Returns the configured logger, a close function for the log file, and any
// error.
func Setup(cfg *Config) (*slog.Logger, func() error, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	dir := cfg.Dir
	if dir == "" {
		dir = DefaultLogDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, err
	}

	lj := &lumberjack.Logger{
		Filename:   filepath.Join(dir, "tweetmoji.log"),
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
		LocalTime:  true,
	}

	handler := slog.NewTextHandler(io.MultiWriter(os.Stdout, lj), &slog.HandlerOptions{
		Level: cfg.Level,
	})
	logger := slog.New(handler)
	slog.SetDefault(logger)

	return logger, lj.Close, nil
}
