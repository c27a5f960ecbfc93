// Package logging builds the process logger.
//
// The terminal belongs to the UI, so output goes to a file unless the
// caller asks otherwise.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// Options describes where and how verbosely to log
type Options struct {
	Level string
	File  string
	// Output overrides File when set
	Output io.Writer
	JSON   bool
}

// New creates a logger and returns a func that releases its output
func New(opts Options) (*logrus.Logger, func(), error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}

	l := logrus.New()
	l.SetLevel(level)
	if opts.JSON {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	}

	closer := func() {}
	switch {
	case opts.Output != nil:
		l.SetOutput(opts.Output)
	case opts.File != "":
		f, err := openFile(opts.File)
		if err != nil {
			return nil, nil, err
		}
		l.SetOutput(f)
		closer = func() { _ = f.Close() }
	default:
		l.SetOutput(io.Discard)
	}
	return l, closer, nil
}

// ParseLevel accepts logrus level names; empty means info
func ParseLevel(s string) (logrus.Level, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return logrus.InfoLevel, nil
	}
	level, err := logrus.ParseLevel(s)
	if err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

func openFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}
