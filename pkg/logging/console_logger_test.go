package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConsoleLogger(verbose bool) (*ConsoleLogger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	logger := NewConsoleLogger(verbose)
	logger.SetOutput(buf)
	logger.SetColor(false)
	return logger, buf
}

func TestConsoleLoggerLevels(t *testing.T) {
	tests := []struct {
		name string
		log  func(l *ConsoleLogger)
		want string
	}{
		{
			"info", func(l *ConsoleLogger) { l.Info("hello") },
			"[INFO ] hello",
		},
		{
			"warn", func(l *ConsoleLogger) { l.Warn("careful") },
			"[WARN ] careful",
		},
		{
			"error", func(l *ConsoleLogger) { l.Error("broken") },
			"[ERROR] broken",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, buf := newTestConsoleLogger(false)
			tt.log(logger)
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestConsoleLoggerDebugGatedByVerbose(t *testing.T) {
	logger, buf := newTestConsoleLogger(false)
	logger.Debug("hidden")
	assert.Empty(t, buf.String())

	logger, buf = newTestConsoleLogger(true)
	logger.Debug("visible")
	assert.Contains(t, buf.String(), "[DEBUG] visible")
}

func TestConsoleLoggerFields(t *testing.T) {
	logger, buf := newTestConsoleLogger(false)
	logger.Info("recorded",
		StringField("message", "values differ"),
		IntField("frames", 3),
	)

	out := buf.String()
	assert.Contains(t, out, "{frames=3, message=values differ}")
}

func TestConsoleLoggerWithFields(t *testing.T) {
	logger, buf := newTestConsoleLogger(false)
	derived := logger.WithFields(StringField("test", "TestFoo"))

	derived.Info("check failed", BoolField("suppressed", true))

	out := buf.String()
	assert.Contains(t, out, "suppressed=true")
	assert.Contains(t, out, "test=TestFoo")

	// The parent logger must not inherit derived fields.
	buf.Reset()
	logger.Info("plain")
	assert.NotContains(t, buf.String(), "test=TestFoo")
}

func TestConsoleLoggerColorOutput(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewConsoleLogger(false)
	logger.SetOutput(buf)

	logger.Error("boom")

	out := buf.String()
	require.True(t, strings.Contains(out, "\033[31m"),
		"expected red escape code in %q", out)
	assert.Contains(t, out, "boom")
}

func TestConsoleLoggerClose(t *testing.T) {
	logger, _ := newTestConsoleLogger(false)
	assert.NoError(t, logger.Close())
}

func TestLogLevelString(t *testing.T) {
	tests := []struct {
		level LogLevel
		want  string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{LogLevel(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.level.String())
	}
}

func TestErrorField(t *testing.T) {
	f := ErrorField(nil)
	assert.Equal(t, "error", f.Key)
	assert.Equal(t, "<nil>", f.Value)

	f = ErrorField(assert.AnError)
	assert.Equal(t, assert.AnError.Error(), f.Value)
}
