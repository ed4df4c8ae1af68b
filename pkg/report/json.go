package report

import (
	"encoding/json"
	"io"
	"time"

	"digital.vasic.softcheck/pkg/failure"
	"digital.vasic.softcheck/pkg/metrics"
)

// JSONReporter renders the failure log as a machine-readable JSON
// document, suitable for archival next to other test artifacts.
type JSONReporter struct {
	pretty bool
	stats  *metrics.Stats
}

// NewJSONReporter creates a JSON reporter. When pretty is true,
// output is indented for readability.
func NewJSONReporter(pretty bool) *JSONReporter {
	return &JSONReporter{pretty: pretty}
}

// WithStats attaches check outcome counters to the generated
// report.
func (r *JSONReporter) WithStats(stats metrics.Stats) *JSONReporter {
	r.stats = &stats
	return r
}

// jsonReport is the on-disk structure of a JSON failure report.
type jsonReport struct {
	GeneratedAt time.Time        `json:"generated_at"`
	Count       int              `json:"count"`
	Failures    []failure.Record `json:"failures"`
	Stats       *metrics.Stats   `json:"stats,omitempty"`
}

// Render produces the JSON report body.
func (r *JSONReporter) Render(records []failure.Record) ([]byte, error) {
	doc := jsonReport{
		GeneratedAt: time.Now().UTC(),
		Count:       len(records),
		Failures:    records,
		Stats:       r.stats,
	}
	if doc.Failures == nil {
		doc.Failures = []failure.Record{}
	}

	if r.pretty {
		return json.MarshalIndent(doc, "", "  ")
	}
	return json.Marshal(doc)
}

// Write renders the records to the given writer.
func (r *JSONReporter) Write(w io.Writer, records []failure.Record) error {
	data, err := r.Render(records)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
