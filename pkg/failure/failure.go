// Package failure holds the tagged check-failure type and the
// recorder that accumulates soft failures during a test. A soft
// failure never reaches the test as an error; it is appended to the
// recorder's log together with a pseudo-traceback and surfaces only
// when the log is drained at test teardown.
package failure

import (
	"errors"
	"fmt"
)

// ErrCheckFailed is the sentinel error for failed checks.
var ErrCheckFailed = errors.New("check failed")

// Error is the tagged value raised (via panic) by a check whose
// condition did not hold. Scopes and the check-function wrapper
// intercept it at their boundary; any other panic value passes
// through them untouched.
type Error struct {
	// Message describes the failed condition.
	Message string

	// Trace is the pseudo-traceback captured where the failure
	// was raised. Frames between the raise site and the
	// intercepting scope are gone by the time a deferred recover
	// runs, so the raise site must capture them itself. Optional;
	// the recorder captures its own trace when empty.
	Trace string
}

// Error returns the failure message.
func (e *Error) Error() string {
	if e == nil || e.Message == "" {
		return ErrCheckFailed.Error()
	}
	return e.Message
}

// Unwrap returns the sentinel check error for errors.Is.
func (e *Error) Unwrap() error {
	return ErrCheckFailed
}

// AsError reports whether a recovered panic value is a tagged check
// failure, returning it when so.
func AsError(v any) (*Error, bool) {
	ferr, ok := v.(*Error)
	return ferr, ok
}

// Record is one entry in the failure log: the failure message plus
// the pseudo-traceback captured when the failure was detected.
// Records are immutable once appended.
type Record struct {
	// Message is the user-supplied or derived failure text. May
	// be empty.
	Message string `json:"message"`

	// Trace is the rendered pseudo-traceback, outermost test
	// frame first.
	Trace string `json:"trace"`
}

// String renders the record in the format consumed by the aggregate
// test-failure report.
func (r Record) String() string {
	return fmt.Sprintf("FAILURE: %s\n%s", r.Message, r.Trace)
}

// messageOf coerces a logged value into failure text. Errors render
// through their Error method, everything else through fmt.
func messageOf(v any) string {
	switch m := v.(type) {
	case nil:
		return ""
	case string:
		return m
	case error:
		return m.Error()
	default:
		return fmt.Sprint(m)
	}
}
