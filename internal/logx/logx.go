// Package logx builds the loggers used across the CLI.
package logx

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
)

// New creates a logger writing to stderr. Debug level is enabled when
// verbose is set; otherwise informational and above.
func New(verbose bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}

// NewWithFile creates a logger that additionally mirrors all entries into a
// timestamped file inside logsDir. The returned closer should be closed when
// logging is no longer needed.
func NewWithFile(verbose bool, logsDir string) (*logrus.Logger, io.Closer, error) {
	file, err := openLogFile(logsDir)
	if err != nil {
		return nil, nil, err
	}

	logger := New(verbose)
	logger.SetOutput(io.MultiWriter(os.Stderr, file))
	return logger, file, nil
}

// NewFileOnly creates a logger that writes exclusively to a timestamped file
// inside logsDir, keeping the terminal free for interactive output.
func NewFileOnly(verbose bool, logsDir string) (*logrus.Logger, io.Closer, error) {
	file, err := openLogFile(logsDir)
	if err != nil {
		return nil, nil, err
	}

	logger := New(verbose)
	logger.SetOutput(file)
	return logger, file, nil
}

func openLogFile(logsDir string) (*os.File, error) {
	if err := os.MkdirAll(logsDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure logs directory: %w", err)
	}

	filename := time.Now().Format("20060102-150405") + ".log"
	file, err := os.OpenFile(filepath.Join(logsDir, filename), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return file, nil
}
