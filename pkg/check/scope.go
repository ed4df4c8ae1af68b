package check

import "digital.vasic.softcheck/pkg/failure"

// Scope suppresses check failures raised inside a block so the
// enclosing test keeps running. Each failure swallowed by the scope
// is recorded; the block stops at the failed statement but the test
// continues after Run returns:
//
//	check.Block().Run(func() {
//		check.Expect(resp.OK, "response not ok")
//	})
//
// A message configured on the scope replaces the failure's own text
// for the next activation only; it is discarded on every exit,
// whichever branch is taken.
type Scope struct {
	rec *failure.Recorder
	msg string
}

// Block creates a scope on this Checker's recorder. An optional
// message overrides the text of a failure suppressed by the next
// activation.
func (c *Checker) Block(msg ...string) *Scope {
	s := &Scope{rec: c.rec}
	if len(msg) > 0 {
		s.msg = msg[0]
	}
	return s
}

// Block creates a scope on the default recorder.
func Block(msg ...string) *Scope {
	return std.Block(msg...)
}

// WithMessage configures the message used for the next activation
// and returns the scope.
func (s *Scope) WithMessage(msg string) *Scope {
	s.msg = msg
	return s
}

// Run executes fn under the scope. A check failure raised inside fn
// is logged (using the configured message when one is set) and
// suppressed, unless fail-fast is on, in which case it propagates
// with the message discarded. Any other panic, and a clean return,
// pass through untouched. The configured message never survives the
// activation.
func (s *Scope) Run(fn func()) {
	defer func() {
		msg := s.msg
		s.msg = ""

		v := recover()
		if v == nil {
			return
		}
		ferr, tagged := failure.AsError(v)
		if !tagged || s.rec.StopOnFail() {
			panic(v)
		}
		if msg != "" {
			s.rec.Log(&failure.Error{
				Message: msg,
				Trace:   ferr.Trace,
			})
		} else {
			s.rec.Log(ferr)
		}
		s.rec.MarkSuppressed()
	}()

	fn()
}
