package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.softcheck/pkg/failure"
)

func writeSettingsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "softcheck.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaults(t *testing.T) {
	s := Defaults()
	assert.False(t, s.StopOnFail)
	assert.False(t, s.Verbose)
	assert.Equal(t, 32, s.MaxTraceFrames)
	assert.Empty(t, s.ReportPath)
}

func TestLoadFile(t *testing.T) {
	path := writeSettingsFile(t, `
stop_on_fail: true
verbose: true
max_trace_frames: 8
report_path: out/failures.json
`)

	s, err := LoadFile(path)
	require.NoError(t, err)

	assert.True(t, s.StopOnFail)
	assert.True(t, s.Verbose)
	assert.Equal(t, 8, s.MaxTraceFrames)
	assert.Equal(t, "out/failures.json", s.ReportPath)
}

func TestLoadFilePartialKeepsDefaults(t *testing.T) {
	path := writeSettingsFile(t, "stop_on_fail: true\n")

	s, err := LoadFile(path)
	require.NoError(t, err)

	assert.True(t, s.StopOnFail)
	assert.Equal(t, 32, s.MaxTraceFrames)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadFileMalformed(t *testing.T) {
	path := writeSettingsFile(t, "stop_on_fail: [not a bool\n")
	_, err := LoadFile(path)
	assert.ErrorContains(t, err, "parse settings file")
}

func TestWithEnvOverrides(t *testing.T) {
	t.Setenv(EnvStopOnFail, "true")
	t.Setenv(EnvVerbose, "1")
	t.Setenv(EnvMaxTraceFrames, "4")
	t.Setenv(EnvReportPath, "env/failures.json")

	s := Defaults().WithEnv()

	assert.True(t, s.StopOnFail)
	assert.True(t, s.Verbose)
	assert.Equal(t, 4, s.MaxTraceFrames)
	assert.Equal(t, "env/failures.json", s.ReportPath)
}

func TestWithEnvMalformedValuesIgnored(t *testing.T) {
	t.Setenv(EnvStopOnFail, "definitely")
	t.Setenv(EnvMaxTraceFrames, "-3")

	s := Defaults().WithEnv()

	assert.False(t, s.StopOnFail)
	assert.Equal(t, 32, s.MaxTraceFrames)
}

func TestLoadMissingFileFallsBackToEnv(t *testing.T) {
	t.Setenv(EnvStopOnFail, "true")

	s, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.True(t, s.StopOnFail)
}

func TestLoadEnvWinsOverFile(t *testing.T) {
	path := writeSettingsFile(t, "stop_on_fail: false\nmax_trace_frames: 8\n")
	t.Setenv(EnvStopOnFail, "true")

	s, err := Load(path)
	require.NoError(t, err)

	assert.True(t, s.StopOnFail, "environment overrides the file")
	assert.Equal(t, 8, s.MaxTraceFrames, "file values survive when not overridden")
}

func TestLoadMalformedFileIsAnError(t *testing.T) {
	path := writeSettingsFile(t, "stop_on_fail: [unclosed\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestApply(t *testing.T) {
	rec := failure.NewRecorder()

	Settings{StopOnFail: true, MaxTraceFrames: 2}.Apply(rec)
	assert.True(t, rec.StopOnFail())

	Settings{}.Apply(rec)
	assert.False(t, rec.StopOnFail())
}
