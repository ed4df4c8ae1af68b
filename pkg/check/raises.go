package check

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"digital.vasic.softcheck/pkg/failure"
	"digital.vasic.softcheck/pkg/stacktrace"
)

// RaisesScope asserts that the code it wraps panics with one of the
// expected targets, non-fatally when it does not. A target that is
// an error value matches any panic value satisfying errors.Is or
// sharing its dynamic type; a reflect.Type target matches panics of
// that type (or implementing it, for interface types); any other
// target matches panics of the same dynamic type.
//
// A scope observes at most one panic per activation: control cannot
// resume inside the block after the panic, so a block expected to
// fail in several places needs one activation per sub-block.
type RaisesScope struct {
	rec     *failure.Recorder
	targets []any
	msg     string

	observed any
	matched  bool
}

// Raises creates an expectation scope on this Checker's recorder
// for the given targets.
func (c *Checker) Raises(targets ...any) *RaisesScope {
	return &RaisesScope{rec: c.rec, targets: targets}
}

// Raises creates an expectation scope on the default recorder.
func Raises(targets ...any) *RaisesScope {
	return std.Raises(targets...)
}

// WithMessage configures the message used if the next activation
// records a failure, and returns the scope.
func (r *RaisesScope) WithMessage(msg string) *RaisesScope {
	r.msg = msg
	return r
}

// Run executes fn under the expectation. Exit behavior:
//
//   - fn panics with a matching value: the panic is suppressed and
//     nothing is recorded; the expectation was met.
//   - fn panics with a non-matching value: with fail-fast off the
//     panic is swallowed and a failure recorded (configured message,
//     or the panic value's text); with fail-fast on it propagates.
//   - fn returns normally: the expectation was not met, and a
//     "was not raised" failure is recorded (raised, under
//     fail-fast).
//
// The configured message is discarded on every exit. Run reports
// whether the expectation was met.
func (r *RaisesScope) Run(fn func()) (matched bool) {
	defer func() {
		msg := r.msg
		r.msg = ""

		v := recover()
		if v == nil {
			text := msg
			if text == "" {
				text = fmt.Sprintf(
					"expected %s was not raised",
					describeTargets(r.targets),
				)
			}
			if r.rec.StopOnFail() {
				panic(&failure.Error{
					Message: text,
					Trace: stacktrace.Capture(
						0, stacktrace.DefaultMaxFrames,
					),
				})
			}
			r.rec.Log(text)
			return
		}

		r.observed = v
		if matchesTarget(v, r.targets) {
			r.matched = true
			matched = true
			r.rec.MarkSuppressed()
			return
		}

		if r.rec.StopOnFail() {
			panic(v)
		}
		if msg != "" {
			r.rec.Log(msg)
		} else {
			r.rec.Log(v)
		}
		r.rec.MarkSuppressed()
	}()

	fn()
	return
}

// Call runs fn immediately under the same contract as Run, with an
// optional message, and returns the scope for inspection:
//
//	scope := check.Raises(strconv.ErrSyntax).Call(func() {
//		mustParse("not a number")
//	})
//	if scope.Matched() { ... }
func (r *RaisesScope) Call(fn func(), msg ...string) *RaisesScope {
	if len(msg) > 0 {
		r.msg = msg[0]
	}
	r.Run(fn)
	return r
}

// Observed returns the panic value seen by the last activation, or
// nil when the block returned normally.
func (r *RaisesScope) Observed() any {
	return r.observed
}

// Matched reports whether the last activation observed a panic
// matching one of the expected targets.
func (r *RaisesScope) Matched() bool {
	return r.matched
}

// matchesTarget reports whether the panic value v matches any of
// the expected targets.
func matchesTarget(v any, targets []any) bool {
	vt := reflect.TypeOf(v)
	for _, target := range targets {
		switch t := target.(type) {
		case nil:
		case reflect.Type:
			if vt == t {
				return true
			}
			if t.Kind() == reflect.Interface && vt != nil &&
				vt.Implements(t) {
				return true
			}
		case error:
			err, ok := v.(error)
			if !ok {
				continue
			}
			if errors.Is(err, t) ||
				reflect.TypeOf(err) == reflect.TypeOf(t) {
				return true
			}
		default:
			if vt == reflect.TypeOf(target) {
				return true
			}
		}
	}
	return false
}

// describeTargets renders the expected targets for the
// "was not raised" failure message.
func describeTargets(targets []any) string {
	if len(targets) == 0 {
		return "panic"
	}
	parts := make([]string, 0, len(targets))
	for _, target := range targets {
		switch t := target.(type) {
		case nil:
			parts = append(parts, "<nil>")
		case reflect.Type:
			parts = append(parts, t.String())
		case error:
			parts = append(parts, fmt.Sprintf("%q", t.Error()))
		default:
			parts = append(parts, fmt.Sprintf("%T", target))
		}
	}
	return strings.Join(parts, " or ")
}
