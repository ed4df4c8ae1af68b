// Package report renders the accumulated failure log into the
// aggregate artifacts consumed at test teardown: the single
// combined failure message, and an optional JSON report.
package report

import (
	"io"

	"digital.vasic.softcheck/pkg/failure"
)

// Reporter defines the interface for rendering a failure log.
type Reporter interface {
	// Render produces the report body for the given records.
	Render(records []failure.Record) ([]byte, error)

	// Write renders the records to the given writer.
	Write(w io.Writer, records []failure.Record) error
}
