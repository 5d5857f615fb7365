package slog

import (
	"io"
	"os"
	"path/filepath"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// FromEnv returns a debug Logger appending to logPath when envVar is set to a
// non-empty value, otherwise a Logger that discards everything. The returned
// Closer must be closed once the Logger is no longer used.
func FromEnv(envVar, logPath, prefix string) (*Logger, io.Closer, error) {
	if os.Getenv(envVar) == "" {
		return NewNopLogger(), nopCloser{}, nil
	}
	if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
		return NewNopLogger(), nopCloser{}, err
	}
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return NewNopLogger(), nopCloser{}, err
	}
	l := NewWriterLogger(f, prefix)
	l.WithDebug()
	return l, f, nil
}
