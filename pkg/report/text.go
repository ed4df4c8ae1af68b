package report

import (
	"fmt"
	"io"
	"strings"

	"digital.vasic.softcheck/pkg/failure"
)

// TextReporter renders the failure log as the aggregate failure
// message reported to the test framework: a count header followed
// by every record in detection order, each with its message and
// pseudo-traceback.
type TextReporter struct {
	// Separator is inserted between records. Defaults to a
	// dashed line when empty.
	Separator string
}

// NewTextReporter creates a TextReporter with the default record
// separator.
func NewTextReporter() *TextReporter {
	return &TextReporter{}
}

const defaultSeparator = "----------------------------------------"

// Render produces the aggregate failure message.
func (r *TextReporter) Render(records []failure.Record) ([]byte, error) {
	if len(records) == 0 {
		return nil, nil
	}

	sep := r.Separator
	if sep == "" {
		sep = defaultSeparator
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d soft check failure(s):\n", len(records))
	for i, rec := range records {
		b.WriteString(sep)
		b.WriteByte('\n')
		b.WriteString(rec.String())
		if i < len(records)-1 {
			b.WriteByte('\n')
		}
	}
	return []byte(b.String()), nil
}

// Write renders the records to the given writer.
func (r *TextReporter) Write(w io.Writer, records []failure.Record) error {
	data, err := r.Render(records)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
