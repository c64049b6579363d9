package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

const logFileName = "php-cs-fixer.log"

// configureLogging installs the default slog logger. With the TUI active the
// terminal belongs to the progress view, so logs go to a file under the
// state directory. The returned func closes that file.
func configureLogging(verbose, tui bool) (*slog.Logger, func(), error) {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}

	var output io.Writer = os.Stderr
	closeFn := func() {}
	if tui {
		logPath, err := logFilePath()
		if err != nil {
			return nil, nil, err
		}
		if err := os.MkdirAll(filepath.Dir(logPath), 0o700); err != nil {
			return nil, nil, fmt.Errorf("log dir: %w", err)
		}
		if fi, err := os.Lstat(logPath); err == nil && (fi.Mode()&os.ModeSymlink) != 0 {
			return nil, nil, fmt.Errorf("refusing to log to symlink %s", logPath)
		}
		f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("log file: %w", err)
		}
		output = f
		closeFn = func() { _ = f.Close() }
	}

	logger := slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)
	return logger, closeFn, nil
}

func logFilePath() (string, error) {
	base := os.Getenv("XDG_STATE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(base, "php-cs-fixer", logFileName), nil
}
