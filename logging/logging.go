// Package logging provides the structured logger used to trace evaluation
// steps. topdown logs each regular-operator dispatch and each dispatch
// failure at debug level; special-form branches are not logged.
// It mirrors the split the teacher uses between a small public Logger
// interface and a concrete logrus-backed implementation.
package logging

import (
	"github.com/sirupsen/logrus"
)

// Level is a log severity; each maps to the logrus level of the same name.
type Level uint8

const (
	Error Level = iota
	Warn
	Info
	Debug
)

func (l Level) toLogrus() logrus.Level {
	switch l {
	case Error:
		return logrus.ErrorLevel
	case Warn:
		return logrus.WarnLevel
	case Info:
		return logrus.InfoLevel
	case Debug:
		return logrus.DebugLevel
	default:
		return logrus.InfoLevel
	}
}

// Logger is the interface package topdown depends on for evaluation
// tracing. Hosts may supply their own implementation; StandardLogger and
// NoOpLogger below cover the common cases.
type Logger interface {
	Debug(fields map[string]any, format string, args ...any)
	Info(fields map[string]any, format string, args ...any)
	Warn(fields map[string]any, format string, args ...any)
	Error(fields map[string]any, format string, args ...any)
	// WithFields returns a Logger that merges fields into every subsequent
	// call's fields, the same way logrus.Entry.WithFields does.
	WithFields(fields map[string]any) Logger
}

// StandardLogger is the default Logger implementation, backed by logrus.
type StandardLogger struct {
	entry *logrus.Entry
}

// Format selects a StandardLogger's output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// New returns a StandardLogger at the given level and format. JSON is the
// teacher's default formatter for non-interactive use; text suits a
// terminal-attached CLI run.
func New(level Level, format Format) *StandardLogger {
	l := logrus.New()
	l.SetLevel(level.toLogrus())
	if format == FormatText {
		l.SetFormatter(&logrus.TextFormatter{})
	} else {
		l.SetFormatter(&logrus.JSONFormatter{})
	}
	return &StandardLogger{entry: logrus.NewEntry(l)}
}

func (s *StandardLogger) Debug(fields map[string]any, format string, args ...any) {
	s.entry.WithFields(logrus.Fields(fields)).Debugf(format, args...)
}

func (s *StandardLogger) Info(fields map[string]any, format string, args ...any) {
	s.entry.WithFields(logrus.Fields(fields)).Infof(format, args...)
}

func (s *StandardLogger) Warn(fields map[string]any, format string, args ...any) {
	s.entry.WithFields(logrus.Fields(fields)).Warnf(format, args...)
}

func (s *StandardLogger) Error(fields map[string]any, format string, args ...any) {
	s.entry.WithFields(logrus.Fields(fields)).Errorf(format, args...)
}

func (s *StandardLogger) WithFields(fields map[string]any) Logger {
	return &StandardLogger{entry: s.entry.WithFields(logrus.Fields(fields))}
}

// NoOpLogger discards everything. It is the default logger for
// topdown.Evaluator when the host supplies none.
type NoOpLogger struct{}

// NewNoOpLogger returns a Logger that discards all output.
func NewNoOpLogger() *NoOpLogger { return &NoOpLogger{} }

func (NoOpLogger) Debug(map[string]any, string, ...any) {}
func (NoOpLogger) Info(map[string]any, string, ...any)  {}
func (NoOpLogger) Warn(map[string]any, string, ...any)  {}
func (NoOpLogger) Error(map[string]any, string, ...any) {}
func (l NoOpLogger) WithFields(map[string]any) Logger   { return l }
