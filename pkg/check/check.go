// Package check provides soft assertions for Go tests: a failed
// condition is recorded together with a pseudo-traceback and the
// test keeps running, with every recorded failure reported as one
// aggregate test failure at teardown.
//
// The package-level functions operate on the process-wide default
// recorder, which matches the conventional one-test-at-a-time model.
// Tests that run in parallel, or that want explicit lifecycles,
// create their own recorder and bind a Checker to it:
//
//	rec := failure.NewRecorder()
//	c := check.New(rec)
//	c.Equal(2, got)
package check

import (
	"digital.vasic.softcheck/pkg/failure"
	"digital.vasic.softcheck/pkg/stacktrace"
)

// Checker evaluates soft checks against one failure recorder.
type Checker struct {
	rec *failure.Recorder
}

// New creates a Checker bound to the given recorder. A nil recorder
// binds to the process-wide default.
func New(rec *failure.Recorder) *Checker {
	if rec == nil {
		rec = failure.Default()
	}
	return &Checker{rec: rec}
}

var std = New(nil)

// Std returns the Checker bound to the process-wide default
// recorder. The package-level functions delegate to it.
func Std() *Checker {
	return std
}

// Recorder returns the recorder this Checker reports to.
func (c *Checker) Recorder() *failure.Recorder {
	return c.rec
}

// Fail raises a check failure carrying msg. It only returns when
// something up the stack recovers the failure; use it inside
// functions run through Do, Func, Block, or Raises.
func Fail(msg string) {
	panic(&failure.Error{
		Message: msg,
		Trace: stacktrace.Capture(
			1, stacktrace.DefaultMaxFrames,
		),
	})
}

// Expect raises a check failure carrying msg when cond is false.
func Expect(cond bool, msg string) {
	if cond {
		return
	}
	panic(&failure.Error{
		Message: msg,
		Trace: stacktrace.Capture(
			1, stacktrace.DefaultMaxFrames,
		),
	})
}

// Do runs fn under the check-function contract: when fn raises no
// failure, Do returns true with no other side effect. When fn raises
// a check failure and fail-fast is off, the failure is logged and Do
// returns false. With fail-fast on, the original failure propagates
// to the caller. Panics that are not check failures always
// propagate.
func (c *Checker) Do(fn func()) (ok bool) {
	defer func() {
		v := recover()
		if v == nil {
			return
		}
		if _, tagged := failure.AsError(v); !tagged ||
			c.rec.StopOnFail() {
			panic(v)
		}
		c.rec.Log(v)
		ok = false
	}()

	fn()
	c.rec.MarkPassed()
	return true
}

// Do runs fn under the check-function contract on the default
// recorder.
func Do(fn func()) bool {
	return std.Do(fn)
}

// Func adapts fn, an assertion-raising function, into a non-fatal
// check following the Do contract. It is the integration point for
// user-defined predicates:
//
//	noLeadingSpace := check.Func(func() {
//		check.Expect(!strings.HasPrefix(s, " "), "leading space")
//	})
//	noLeadingSpace()
func (c *Checker) Func(fn func()) func() bool {
	return func() bool {
		return c.Do(fn)
	}
}

// Func adapts fn into a non-fatal check on the default recorder.
func Func(fn func()) func() bool {
	return std.Func(fn)
}
