package slog

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetLevel(t *testing.T) {
	testCases := []struct {
		level     string
		wantDebug bool
		wantErr   bool
	}{
		{level: "debug", wantDebug: true},
		{level: "INFO"},
		{level: "warn"},
		{level: "error"},
		{level: "off"},
		{level: "verbose", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.level, func(t *testing.T) {
			l := NewWriterLogger(&bytes.Buffer{}, "test")
			err := l.SetLevel(tc.level)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantDebug, l.IsDebug())
		})
	}
}

func TestLevelFiltering(t *testing.T) {
	buf := &bytes.Buffer{}
	l := NewWriterLogger(buf, "test")
	require.NoError(t, l.SetLevel("warn"))

	l.Debugf("debug %d", 1)
	l.Infof("info %d", 2)
	l.Warnf("warn %d", 3)
	l.Errorf("error %d", 4)

	out := buf.String()
	assert.NotContains(t, out, "debug 1")
	assert.NotContains(t, out, "info 2")
	assert.Contains(t, out, "WARN - warn 3")
	assert.Contains(t, out, "ERRO - error 4")
	assert.Contains(t, out, "[test] ")
}

func TestStructuredFields(t *testing.T) {
	buf := &bytes.Buffer{}
	l := NewWriterLogger(buf, "")
	l.WithDebug()

	l.DebugWith("resolved",
		F("dir", "/repo/src"),
		F("fragment", "a b"),
		F("hidden", false),
		F("err", errors.New("boom")),
	)

	out := buf.String()
	assert.Contains(t, out, "DEBU - resolved")
	assert.Contains(t, out, "dir=/repo/src")
	assert.Contains(t, out, `fragment="a b"`)
	assert.Contains(t, out, "hidden=false")
	assert.Contains(t, out, `err="boom"`)
}

func TestColorsOnlyWhenEnabled(t *testing.T) {
	buf := &bytes.Buffer{}
	l := NewWriterLogger(buf, "")
	l.Infof("plain")
	assert.NotContains(t, buf.String(), keyEscape)

	buf.Reset()
	l.WithColors(true)
	l.Infof("colored")
	assert.Contains(t, buf.String(), cyanBold)
}

func TestNopLogger(t *testing.T) {
	l := NewNopLogger()
	assert.False(t, l.IsDebug())
	// Must not panic nor write anywhere
	l.Errorf("nothing %s", "here")
	l.ErrorWith("nothing", F("k", "v"))
}

func TestFromEnv(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "debug.log")

	t.Run("Unset variable gives a no-op logger", func(t *testing.T) {
		t.Setenv("PATHCTX_TEST_DEBUG", "")
		l, closer, err := FromEnv("PATHCTX_TEST_DEBUG", logPath, "test")
		require.NoError(t, err)
		defer func() { _ = closer.Close() }()
		l.Debugf("hidden")
		_, statErr := os.Stat(logPath)
		assert.True(t, os.IsNotExist(statErr), "log file should not be created")
	})

	t.Run("Set variable appends to the file", func(t *testing.T) {
		t.Setenv("PATHCTX_TEST_DEBUG", "1")
		l, closer, err := FromEnv("PATHCTX_TEST_DEBUG", logPath, "test")
		require.NoError(t, err)
		l.Debugf("visible %s", "line")
		require.NoError(t, closer.Close())

		data, err := os.ReadFile(logPath)
		require.NoError(t, err)
		assert.True(t, strings.Contains(string(data), "visible line"))
	})
}
