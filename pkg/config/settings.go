// Package config loads softcheck settings from YAML files and
// environment variables. Settings are typically resolved once at
// session start and applied to the recorder the whole run shares.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"digital.vasic.softcheck/pkg/failure"
	"digital.vasic.softcheck/pkg/stacktrace"
)

// Environment variable names. OS environment always wins over file
// values.
const (
	EnvStopOnFail     = "SOFTCHECK_STOP_ON_FAIL"
	EnvVerbose        = "SOFTCHECK_VERBOSE"
	EnvMaxTraceFrames = "SOFTCHECK_MAX_TRACE_FRAMES"
	EnvReportPath     = "SOFTCHECK_REPORT_PATH"
)

// Settings configures the soft-check machinery for a test session.
type Settings struct {
	// StopOnFail disables suppression: the first unmet check
	// propagates immediately instead of being recorded.
	StopOnFail bool `yaml:"stop_on_fail"`

	// Verbose enables debug logging of recorded failures and
	// suppression decisions.
	Verbose bool `yaml:"verbose"`

	// MaxTraceFrames bounds pseudo-traceback depth.
	MaxTraceFrames int `yaml:"max_trace_frames"`

	// ReportPath, when set, is where the runner writes the JSON
	// failure report.
	ReportPath string `yaml:"report_path"`
}

// Defaults returns the settings used when nothing is configured.
func Defaults() Settings {
	return Settings{
		MaxTraceFrames: stacktrace.DefaultMaxFrames,
	}
}

// LoadFile reads settings from a YAML file, starting from Defaults.
func LoadFile(path string) (Settings, error) {
	s := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("read settings file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parse settings file %s: %w", path, err)
	}
	return s, nil
}

// WithEnv returns a copy of s with environment overrides applied.
// Unset or malformed variables leave the existing value in place.
func (s Settings) WithEnv() Settings {
	if v, ok := boolEnv(EnvStopOnFail); ok {
		s.StopOnFail = v
	}
	if v, ok := boolEnv(EnvVerbose); ok {
		s.Verbose = v
	}
	if v, ok := intEnv(EnvMaxTraceFrames); ok && v > 0 {
		s.MaxTraceFrames = v
	}
	if v := os.Getenv(EnvReportPath); v != "" {
		s.ReportPath = v
	}
	return s
}

// Load resolves the effective settings: Defaults, the YAML file at
// path when it exists, then environment overrides. A missing file
// is not an error; any other read or parse failure is.
func Load(path string) (Settings, error) {
	s := Defaults()
	if path != "" {
		loaded, err := LoadFile(path)
		if err == nil {
			s = loaded
		} else if !errors.Is(err, os.ErrNotExist) {
			return s, err
		}
	}
	return s.WithEnv(), nil
}

// Apply configures rec according to the settings.
func (s Settings) Apply(rec *failure.Recorder) {
	rec.SetStopOnFail(s.StopOnFail)
	if s.MaxTraceFrames > 0 {
		rec.SetMaxFrames(s.MaxTraceFrames)
	}
}

func boolEnv(key string) (bool, bool) {
	raw := os.Getenv(key)
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}

func intEnv(key string) (int, bool) {
	raw := os.Getenv(key)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}
