package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.softcheck/pkg/failure"
	"digital.vasic.softcheck/pkg/metrics"
)

func sampleRecords() []failure.Record {
	return []failure.Record{
		{Message: "first", Trace: "a_test.go:10 in TestA() -> check.Equal(1, 2)"},
		{Message: "second", Trace: "a_test.go:12 in TestA() -> check.True(false)"},
	}
}

func TestTextReporterRender(t *testing.T) {
	text, err := NewTextReporter().Render(sampleRecords())
	require.NoError(t, err)

	out := string(text)
	assert.True(t, strings.HasPrefix(out, "2 soft check failure(s):\n"))
	assert.Contains(t, out, "FAILURE: first\na_test.go:10")
	assert.Contains(t, out, "FAILURE: second\na_test.go:12")
	assert.Less(
		t,
		strings.Index(out, "first"), strings.Index(out, "second"),
		"records render in detection order",
	)
}

func TestTextReporterEmptyLog(t *testing.T) {
	text, err := NewTextReporter().Render(nil)
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestTextReporterCustomSeparator(t *testing.T) {
	r := &TextReporter{Separator: "==="}
	text, err := r.Render(sampleRecords())
	require.NoError(t, err)
	assert.Contains(t, string(text), "===\nFAILURE: first")
}

func TestTextReporterWrite(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, NewTextReporter().Write(buf, sampleRecords()))
	assert.Contains(t, buf.String(), "FAILURE: first")
}

func TestJSONReporterRender(t *testing.T) {
	data, err := NewJSONReporter(false).Render(sampleRecords())
	require.NoError(t, err)

	var doc struct {
		Count    int              `json:"count"`
		Failures []failure.Record `json:"failures"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, 2, doc.Count)
	require.Len(t, doc.Failures, 2)
	assert.Equal(t, "first", doc.Failures[0].Message)
}

func TestJSONReporterEmptyLog(t *testing.T) {
	data, err := NewJSONReporter(false).Render(nil)
	require.NoError(t, err)

	assert.Contains(t, string(data), `"count":0`)
	assert.Contains(t, string(data), `"failures":[]`,
		"an empty log must render as an empty array, not null")
}

func TestJSONReporterPretty(t *testing.T) {
	data, err := NewJSONReporter(true).Render(sampleRecords())
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  ")
}

func TestJSONReporterWithStats(t *testing.T) {
	data, err := NewJSONReporter(false).
		WithStats(metrics.Stats{Checks: 5, Passed: 3, Failed: 2}).
		Render(sampleRecords())
	require.NoError(t, err)

	var doc struct {
		Stats *metrics.Stats `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	require.NotNil(t, doc.Stats)
	assert.Equal(t, 5, doc.Stats.Checks)
}

func TestSummarize(t *testing.T) {
	stats := metrics.Stats{Checks: 5, Passed: 3, Failed: 2, Suppressed: 1}
	s := Summarize(sampleRecords(), stats)

	assert.Equal(t, 5, s.Checks)
	assert.Equal(t, 3, s.Passed)
	assert.Equal(t, 2, s.Failures)
	assert.Equal(t, 1, s.Suppressed)
	assert.Equal(t, "first", s.First)
	assert.Equal(t, "second", s.Last)
	assert.Equal(t, []string{"first", "second"}, s.Messages)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, metrics.Stats{})

	assert.Equal(t, 0, s.Checks)
	assert.Equal(t, 0, s.Failures)
	assert.Empty(t, s.First)
	assert.Empty(t, s.Messages)
}
