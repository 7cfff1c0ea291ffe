package log

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/thlorenz/files-provider/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasicLogging(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf))

	l.Info("resolved directory")
	assert.Contains(t, buf.String(), "level=info")
	assert.Contains(t, buf.String(), "resolved directory")
	buf.Reset()

	l.Warn("using default settings")
	assert.Contains(t, buf.String(), "level=warning")
	assert.Contains(t, buf.String(), "using default settings")
	buf.Reset()

	l.Error("handler failed")
	assert.Contains(t, buf.String(), "level=error")
	assert.Contains(t, buf.String(), "handler failed")
	buf.Reset()

	l.Infof("matched %d files", 3)
	assert.Contains(t, buf.String(), "matched 3 files")
}

func TestDebugLogging(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf))
	defer SetDebug(false)

	SetDebug(false)
	l.Debug("prompt answered")
	assert.Empty(t, buf.String())

	SetDebug(true)
	assert.True(t, IsDebug())
	l.Debug("prompt answered")
	assert.Contains(t, buf.String(), "level=debug")
	assert.Contains(t, buf.String(), "prompt answered")
	buf.Reset()

	l.Debugf("key %s", "2")
	assert.Contains(t, buf.String(), "key 2")
}

func TestStructuredLogging(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf))

	l.With(F("root", "/tmp/src"), F("candidates", 2)).Info("menu built")
	output := buf.String()
	assert.Contains(t, output, "menu built")
	assert.Contains(t, output, "root=/tmp/src")
	assert.Contains(t, output, "candidates=2")
	buf.Reset()

	l.With(F("root", "/tmp/src")).With(F("candidates", 2)).Info("dispatch done")
	output = buf.String()
	assert.Contains(t, output, "root=/tmp/src")
	assert.Contains(t, output, "candidates=2")
}

func TestJSONLogging(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf), WithJSON())

	l.Info("watching")

	var logEntry map[string]interface{}
	err := json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &logEntry)
	require.NoError(t, err)

	assert.Equal(t, "info", logEntry["level"])
	assert.Equal(t, "watching", logEntry["message"])
	assert.Contains(t, logEntry, "timestamp")
	assert.Contains(t, logEntry, "caller")
	buf.Reset()

	l.With(F("root", "/tmp/src"), F("candidates", 2)).Info("watch change")
	err = json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &logEntry)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/src", logEntry["root"])
	assert.Equal(t, float64(2), logEntry["candidates"])
}

func TestErrorLogging(t *testing.T) {
	var buf bytes.Buffer

	originalLogger := logger
	Configure(WithOutput(&buf))
	defer func() { logger = originalLogger }()

	stdErr := fmt.Errorf("standard error")
	LogWithFields(F("error", stdErr.Error())).Error("error occurred")
	output := buf.String()
	assert.Contains(t, output, "error occurred")
	assert.Contains(t, output, "standard error")
	buf.Reset()

	probeErr := errors.NewProbeError("directory not found", "/path/to/dir", errors.DirectoryNotFound, nil)
	LogWithError(probeErr).Error("probe failed")
	output = buf.String()
	assert.Contains(t, output, "probe failed")
	assert.Contains(t, output, "path=/path/to/dir")
	assert.Contains(t, output, "error_kind=directory_not_found")
	buf.Reset()

	configErr := errors.NewConfigError("handler required", "handler", errors.MissingHandler, nil)
	LogWithError(configErr).Error("config rejected")
	output = buf.String()
	assert.Contains(t, output, "param=handler")
	assert.Contains(t, output, "error_kind=missing_handler")
	buf.Reset()

	choiceErr := errors.NewChoiceError("9")
	LogError(choiceErr, "bad choice")
	output = buf.String()
	assert.Contains(t, output, "bad choice")
	assert.Contains(t, output, "token=9")
	assert.Contains(t, output, "error_kind=invalid_choice")
}

func TestCallerInfo(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf))

	l.Info("caller test")
	assert.Contains(t, buf.String(), "logger_test.go:")
	buf.Reset()

	originalLogger := logger
	Configure(WithOutput(&buf))
	defer func() { logger = originalLogger }()

	Warnf("package %s", "level")
	assert.Contains(t, buf.String(), "logger_test.go:")
}

func TestFileOutput(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "nested", "files-provider.log")

	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf), WithFile(logPath))
	defer l.Close()

	l.Info("file test message")

	assert.Contains(t, buf.String(), "file test message")
	fileContent, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(fileContent), "file test message")
}

func TestNilErrorFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf))

	l.WithError(nil).Info("no error")
	assert.NotContains(t, buf.String(), "error_kind")
	assert.NoError(t, l.Close())
}
