package report

import (
	"digital.vasic.softcheck/pkg/failure"
	"digital.vasic.softcheck/pkg/metrics"
)

// Summary condenses a failure log and its outcome counters for
// quick inspection.
type Summary struct {
	// Checks is the total number of checks evaluated.
	Checks int `json:"checks"`

	// Passed counts checks whose condition held.
	Passed int `json:"passed"`

	// Failures is the number of recorded failures.
	Failures int `json:"failures"`

	// Suppressed counts scope exits that swallowed a failure.
	Suppressed int `json:"suppressed"`

	// First is the message of the earliest failure, "" when the
	// log is empty.
	First string `json:"first,omitempty"`

	// Last is the message of the most recent failure.
	Last string `json:"last,omitempty"`

	// Messages holds every failure message in detection order.
	Messages []string `json:"messages,omitempty"`
}

// Summarize builds a Summary from the given records and counters.
func Summarize(records []failure.Record, stats metrics.Stats) Summary {
	s := Summary{
		Checks:     stats.Checks,
		Passed:     stats.Passed,
		Failures:   len(records),
		Suppressed: stats.Suppressed,
	}
	if len(records) == 0 {
		return s
	}

	s.First = records[0].Message
	s.Last = records[len(records)-1].Message
	s.Messages = make([]string, len(records))
	for i, rec := range records {
		s.Messages[i] = rec.Message
	}
	return s
}
