package slog

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

const (
	levelDebug = iota
	levelInfo
	levelWarn
	levelError
	levelOff
)

const separator = " - "

// Field is a key/value pair attached to a structured log line
type Field struct {
	Key   string
	Value interface{}
}

// F builds a Field
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

type Logger struct {
	logLevel int
	colorOn  bool
	logger   *log.Logger
}

// NewLogger returns a Logger writing to stdout at INFO level
func NewLogger(prefix string) *Logger {
	return NewWriterLogger(os.Stdout, prefix)
}

// NewWriterLogger returns a Logger writing to w at INFO level
func NewWriterLogger(w io.Writer, prefix string) *Logger {
	if prefix != "" {
		prefix = "[" + prefix + "] "
	}
	return &Logger{
		logLevel: levelInfo,
		logger:   log.New(w, prefix, log.LstdFlags|log.Lmsgprefix),
	}
}

// NewNopLogger discards everything, it's the default sink for library code
func NewNopLogger() *Logger {
	l := NewWriterLogger(io.Discard, "")
	l.logLevel = levelOff
	return l
}

func (l *Logger) WithDebug() {
	l.logLevel = levelDebug
}

func (l *Logger) WithInfo() {
	l.logLevel = levelInfo
}

func (l *Logger) WithWarn() {
	l.logLevel = levelWarn
}

func (l *Logger) WithError() {
	l.logLevel = levelError
}

func (l *Logger) WithColors(enabled bool) {
	l.colorOn = enabled
}

// IsDebug reports whether debug lines are emitted
func (l *Logger) IsDebug() bool {
	return l.logLevel == levelDebug
}

func (l *Logger) SetOutput(w io.Writer) {
	l.logger.SetOutput(w)
}

func (l *Logger) Printf(t string, args ...interface{}) {
	l.Infof(t, args...)
}

func (l *Logger) Debugf(t string, args ...interface{}) {
	if l.logLevel <= levelDebug {
		l.logger.Printf(colorDebug(l.colorOn)+separator+t, args...)
	}
}

func (l *Logger) Infof(t string, args ...interface{}) {
	if l.logLevel <= levelInfo {
		l.logger.Printf(colorInfo(l.colorOn)+separator+t, args...)
	}
}

func (l *Logger) Warnf(t string, args ...interface{}) {
	if l.logLevel <= levelWarn {
		l.logger.Printf(colorWarn(l.colorOn)+separator+t, args...)
	}
}

func (l *Logger) Errorf(t string, args ...interface{}) {
	if l.logLevel <= levelError {
		l.logger.Printf(colorError(l.colorOn)+separator+t, args...)
	}
}

func (l *Logger) Fatalf(t string, args ...interface{}) {
	l.logger.Fatalf(colorFatal(l.colorOn)+separator+t, args...)
}

func (l *Logger) DebugWith(msg string, fields ...Field) {
	if l.logLevel <= levelDebug {
		l.logger.Print(colorDebug(l.colorOn) + separator + msg + formatFields(fields, l.colorOn))
	}
}

func (l *Logger) InfoWith(msg string, fields ...Field) {
	if l.logLevel <= levelInfo {
		l.logger.Print(colorInfo(l.colorOn) + separator + msg + formatFields(fields, l.colorOn))
	}
}

func (l *Logger) WarnWith(msg string, fields ...Field) {
	if l.logLevel <= levelWarn {
		l.logger.Print(colorWarn(l.colorOn) + separator + msg + formatFields(fields, l.colorOn))
	}
}

func (l *Logger) ErrorWith(msg string, fields ...Field) {
	if l.logLevel <= levelError {
		l.logger.Print(colorError(l.colorOn) + separator + msg + formatFields(fields, l.colorOn))
	}
}

func (l *Logger) SetLevel(verbosity string) error {
	switch strings.ToUpper(verbosity) {
	case "DEBUG":
		l.WithDebug()
	case "INFO":
		l.WithInfo()
	case "WARN":
		l.WithWarn()
	case "ERROR":
		l.WithError()
	case "OFF":
		l.logLevel = levelOff
	default:
		return fmt.Errorf("incorrect log level, expected one of [debug|info|warn|error|off]")
	}
	return nil
}

func formatFields(fields []Field, colorOn bool) string {
	if len(fields) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, f := range fields {
		sb.WriteByte(' ')
		sb.WriteString(colorGreyOut(f.Key+"=", colorOn))
		switch v := f.Value.(type) {
		case string:
			if strings.ContainsAny(v, " \t\"") || v == "" {
				sb.WriteString(fmt.Sprintf("%q", v))
			} else {
				sb.WriteString(v)
			}
		case error:
			sb.WriteString(fmt.Sprintf("%q", v.Error()))
		default:
			sb.WriteString(fmt.Sprintf("%v", v))
		}
	}
	return sb.String()
}
