// Package log is the structured logger used across files-provider. It keeps a
// small printf-style API on top of logrus so call sites stay terse, and adds
// typed fields for the errors defined in internal/errors.
package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/thlorenz/files-provider/internal/errors"
)

var (
	isDebug atomic.Bool
	logger  = NewLogger()
)

// Field is a single structured key/value attached to a log line.
type Field struct {
	Key   string
	Value interface{}
}

// F is shorthand for building a Field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

type options struct {
	out  io.Writer
	json bool
	file string
}

// Option configures a Logger.
type Option func(*options)

// WithOutput sends log lines to w instead of stderr.
func WithOutput(w io.Writer) Option {
	return func(o *options) { o.out = w }
}

// WithJSON switches to one JSON object per line.
func WithJSON() Option {
	return func(o *options) { o.json = true }
}

// WithFile additionally appends log lines to the file at path.
func WithFile(path string) Option {
	return func(o *options) { o.file = path }
}

// Logger writes leveled, structured log lines.
type Logger struct {
	entry *logrus.Entry
	file  *os.File
}

// NewLogger creates a Logger. Without options it writes text lines to stderr.
func NewLogger(opts ...Option) *Logger {
	o := options{out: os.Stderr}
	for _, opt := range opts {
		opt(&o)
	}

	base := logrus.New()
	// Debug gating happens in this package so SetDebug applies to every logger.
	base.SetLevel(logrus.DebugLevel)

	if o.json {
		base.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime: "timestamp",
				logrus.FieldKeyMsg:  "message",
			},
		})
	} else {
		base.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	l := &Logger{entry: logrus.NewEntry(base)}

	out := o.out
	var fileErr error
	if o.file != "" {
		if err := os.MkdirAll(filepath.Dir(o.file), 0755); err != nil {
			fileErr = err
		} else if f, err := os.OpenFile(o.file, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644); err != nil {
			fileErr = err
		} else {
			l.file = f
			out = io.MultiWriter(o.out, f)
		}
	}
	base.SetOutput(out)

	if fileErr != nil {
		l.entry.WithError(fileErr).WithField("path", o.file).Warn("Failed to open log file, logging to output only")
	}
	return l
}

// SetDebug turns debug output on or off for all loggers.
func SetDebug(debug bool) {
	isDebug.Store(debug)
}

// IsDebug reports whether debug output is enabled.
func IsDebug() bool {
	return isDebug.Load()
}

// Configure replaces the package logger.
func Configure(opts ...Option) {
	logger = NewLogger(opts...)
}

// Default returns the package logger.
func Default() *Logger {
	return logger
}

// With returns a child logger carrying the given fields.
func (l *Logger) With(fields ...Field) *Logger {
	data := make(logrus.Fields, len(fields))
	for _, f := range fields {
		data[f.Key] = f.Value
	}
	return &Logger{entry: l.entry.WithFields(data), file: l.file}
}

// WithError returns a child logger carrying err and its typed details.
func (l *Logger) WithError(err error) *Logger {
	return l.With(errorFields(err)...)
}

// Close releases the log file opened by WithFile, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

func (l *Logger) Debug(args ...interface{}) {
	if isDebug.Load() {
		l.log(logrus.DebugLevel, fmt.Sprint(args...))
	}
}

func (l *Logger) Debugf(format string, args ...interface{}) {
	if isDebug.Load() {
		l.log(logrus.DebugLevel, fmt.Sprintf(format, args...))
	}
}

func (l *Logger) Info(args ...interface{}) {
	l.log(logrus.InfoLevel, fmt.Sprint(args...))
}

func (l *Logger) Infof(format string, args ...interface{}) {
	l.log(logrus.InfoLevel, fmt.Sprintf(format, args...))
}

func (l *Logger) Warn(args ...interface{}) {
	l.log(logrus.WarnLevel, fmt.Sprint(args...))
}

func (l *Logger) Warnf(format string, args ...interface{}) {
	l.log(logrus.WarnLevel, fmt.Sprintf(format, args...))
}

func (l *Logger) Error(args ...interface{}) {
	l.log(logrus.ErrorLevel, fmt.Sprint(args...))
}

func (l *Logger) Errorf(format string, args ...interface{}) {
	l.log(logrus.ErrorLevel, fmt.Sprintf(format, args...))
}

// log must be called directly by the exported functions so that the caller
// lookup lands on their call site.
func (l *Logger) log(level logrus.Level, msg string) {
	entry := l.entry
	if _, file, line, ok := runtime.Caller(2); ok {
		entry = entry.WithField("caller", fmt.Sprintf("%s:%d", filepath.Base(file), line))
	}
	entry.Log(level, msg)
}

func errorFields(err error) []Field {
	if err == nil {
		return nil
	}
	fields := []Field{
		F("error", err.Error()),
		F("error_kind", errors.KindOf(err).String()),
	}

	var configErr *errors.ConfigError
	var probeErr *errors.ProbeError
	var choiceErr *errors.ChoiceError
	switch {
	case errors.As(err, &configErr):
		fields = append(fields, F("param", configErr.Param()))
	case errors.As(err, &probeErr):
		fields = append(fields, F("path", probeErr.Path()))
	case errors.As(err, &choiceErr):
		fields = append(fields, F("token", choiceErr.Token()))
	}
	return fields
}

// Debug logs at debug level when debug output is enabled.
func Debug(args ...interface{}) {
	if isDebug.Load() {
		logger.log(logrus.DebugLevel, fmt.Sprint(args...))
	}
}

// Debugf logs a formatted message at debug level when debug output is enabled.
func Debugf(format string, args ...interface{}) {
	if isDebug.Load() {
		logger.log(logrus.DebugLevel, fmt.Sprintf(format, args...))
	}
}

func Info(args ...interface{}) {
	logger.log(logrus.InfoLevel, fmt.Sprint(args...))
}

func Infof(format string, args ...interface{}) {
	logger.log(logrus.InfoLevel, fmt.Sprintf(format, args...))
}

func Warn(args ...interface{}) {
	logger.log(logrus.WarnLevel, fmt.Sprint(args...))
}

func Warnf(format string, args ...interface{}) {
	logger.log(logrus.WarnLevel, fmt.Sprintf(format, args...))
}

func Error(args ...interface{}) {
	logger.log(logrus.ErrorLevel, fmt.Sprint(args...))
}

func Errorf(format string, args ...interface{}) {
	logger.log(logrus.ErrorLevel, fmt.Sprintf(format, args...))
}

// LogWithFields returns the package logger with the given fields attached.
func LogWithFields(fields ...Field) *Logger {
	return logger.With(fields...)
}

// LogWithError returns the package logger with err's fields attached.
func LogWithError(err error) *Logger {
	return logger.WithError(err)
}

// LogError logs err at error level with msg.
func LogError(err error, msg string) {
	logger.WithError(err).log(logrus.ErrorLevel, msg)
}
