// Package logging routes the standard logger to stderr and a rotating file.
package logging

import (
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"

	lj "gopkg.in/natefinch/lumberjack.v2"

	"github.com/boxbuddy/boxbuddy/internal/platform"
)

// Default rotation settings
const (
	DefaultMaxSizeMB  = 10 // MB
	DefaultMaxBackups = 3  // number of backup files
	DefaultMaxAgeDays = 7  // days
)

// Config describes where log output goes. Rotation parameters follow
// lumberjack semantics; zero values fall back to the defaults above.
type Config struct {
	File       string // log file path, empty disables the file
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool // gzip rotated files
	Quiet      bool // do not write to stderr
}

// DefaultConfig logs to the per-user cache directory
func DefaultConfig() Config {
	return Config{
		File:       platform.DefaultLogPath(),
		MaxSizeMB:  DefaultMaxSizeMB,
		MaxBackups: DefaultMaxBackups,
		MaxAgeDays: DefaultMaxAgeDays,
	}
}

// Writer returns the rotating file writer, or nil when File is empty
func (c Config) Writer() *lj.Logger {
	if c.File == "" {
		return nil
	}
	maxSize := c.MaxSizeMB
	if maxSize <= 0 {
		maxSize = DefaultMaxSizeMB
	}
	maxBackups := c.MaxBackups
	if maxBackups <= 0 {
		maxBackups = DefaultMaxBackups
	}
	maxAge := c.MaxAgeDays
	if maxAge <= 0 {
		maxAge = DefaultMaxAgeDays
	}
	return &lj.Logger{
		Filename:   c.File,
		MaxSize:    maxSize,
		MaxBackups: maxBackups,
		MaxAge:     maxAge,
		Compress:   c.Compress,
	}
}

// Setup points the standard logger at the configured destinations and
// returns a closer for the file. If the log directory cannot be created
// logging continues on stderr only and the error is returned alongside.
func Setup(c Config) (io.Closer, error) {
	var writers []io.Writer
	if !c.Quiet {
		writers = append(writers, os.Stderr)
	}

	var setupErr error
	var closer io.Closer = nopCloser{}
	if c.File != "" {
		if err := os.MkdirAll(filepath.Dir(c.File), platform.DefaultDirPermissions); err != nil {
			setupErr = err
		} else {
			w := c.Writer()
			writers = append(writers, w)
			closer = w
		}
	}

	switch len(writers) {
	case 0:
		log.SetOutput(io.Discard)
	case 1:
		log.SetOutput(writers[0])
	default:
		log.SetOutput(io.MultiWriter(writers...))
	}
	log.SetFlags(log.LstdFlags)

	if setupErr != nil {
		return closer, errors.Join(errors.New("log file disabled"), setupErr)
	}
	return closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
