package failure

import (
	"sync"

	"digital.vasic.softcheck/pkg/logging"
	"digital.vasic.softcheck/pkg/metrics"
	"digital.vasic.softcheck/pkg/stacktrace"
)

// Recorder accumulates soft failures for one test run. It is safe
// for concurrent use, though the conventional model is one test at a
// time per recorder; parallel tests should each create their own.
//
// The log is append-only between calls to Clear. The test-runner
// integration is expected to Clear before each test and drain
// Failures at teardown; the recorder never resets itself.
type Recorder struct {
	mu         sync.Mutex
	records    []Record
	stopOnFail bool
	maxFrames  int
	logger     logging.Logger
	collector  metrics.Collector
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithLogger sets the logger receiving debug events for every
// recorded failure.
func WithLogger(logger logging.Logger) Option {
	return func(r *Recorder) {
		r.logger = logger
	}
}

// WithCollector sets the metrics collector notified of check
// outcomes.
func WithCollector(c metrics.Collector) Option {
	return func(r *Recorder) {
		r.collector = c
	}
}

// WithMaxFrames bounds the pseudo-traceback depth for recorded
// failures.
func WithMaxFrames(n int) Option {
	return func(r *Recorder) {
		r.maxFrames = n
	}
}

// NewRecorder creates an empty Recorder.
func NewRecorder(opts ...Option) *Recorder {
	r := &Recorder{
		maxFrames: stacktrace.DefaultMaxFrames,
		logger:    logging.NullLogger{},
		collector: metrics.NoopCollector{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Clear empties the failure log.
func (r *Recorder) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = nil
}

// Len returns the number of recorded failures.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

// Records returns a snapshot of the failure log in detection order.
func (r *Recorder) Records() []Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Record, len(r.records))
	copy(out, r.records)
	return out
}

// Failures returns the rendered failure log in detection order, one
// entry per recorded failure.
func (r *Recorder) Failures() []string {
	records := r.Records()
	out := make([]string, len(records))
	for i, rec := range records {
		out[i] = rec.String()
	}
	return out
}

// SetStopOnFail switches between accumulating soft failures (false)
// and fail-fast behavior (true), where the first unmet check
// propagates instead of being recorded. The switch applies to every
// check using this recorder until changed again.
func (r *Recorder) SetStopOnFail(stop bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopOnFail = stop
}

// StopOnFail reports whether fail-fast behavior is enabled.
func (r *Recorder) StopOnFail() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stopOnFail
}

// SetMaxFrames bounds the pseudo-traceback depth for subsequently
// recorded failures.
func (r *Recorder) SetMaxFrames(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.maxFrames = n
}

// SetCollector replaces the metrics collector notified of check
// outcomes. A nil collector disables collection.
func (r *Recorder) SetCollector(c metrics.Collector) {
	if c == nil {
		c = metrics.NoopCollector{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.collector = c
}

func (r *Recorder) getCollector() metrics.Collector {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.collector
}

// Log appends a failure record built from the current call stack
// and the given message. v may be a string, an error, or any value
// coercible to text. Log cannot itself fail.
func (r *Recorder) Log(v any) {
	msg := messageOf(v)

	r.mu.Lock()
	maxFrames := r.maxFrames
	r.mu.Unlock()

	var trace string
	if ferr, ok := AsError(v); ok && ferr.Trace != "" {
		trace = ferr.Trace
	} else {
		trace = stacktrace.Capture(1, maxFrames)
	}

	r.mu.Lock()
	r.records = append(r.records, Record{Message: msg, Trace: trace})
	total := len(r.records)
	collector := r.collector
	r.mu.Unlock()

	collector.RecordCheck(false)
	r.logger.Debug("soft failure recorded",
		logging.StringField("message", msg),
		logging.IntField("total", total),
	)
}

// MarkPassed notes a check whose condition held. It feeds metrics
// only; the failure log is untouched.
func (r *Recorder) MarkPassed() {
	r.getCollector().RecordCheck(true)
}

// MarkSuppressed notes a scope exit that swallowed a failure.
func (r *Recorder) MarkSuppressed() {
	r.getCollector().RecordSuppressed()
}

// Stats returns the current check outcome counters.
func (r *Recorder) Stats() metrics.Stats {
	return r.getCollector().Snapshot()
}

var (
	defaultOnce     sync.Once
	defaultRecorder *Recorder
)

// Default returns the process-wide Recorder used by the package
// convenience functions and by the check package's top-level API.
func Default() *Recorder {
	defaultOnce.Do(func() {
		defaultRecorder = NewRecorder()
	})
	return defaultRecorder
}

// Clear empties the default recorder's failure log.
func Clear() {
	Default().Clear()
}

// Failures returns the rendered failure log of the default recorder.
func Failures() []string {
	return Default().Failures()
}

// SetStopOnFail switches fail-fast behavior on the default recorder.
func SetStopOnFail(stop bool) {
	Default().SetStopOnFail(stop)
}

// Log appends a failure to the default recorder.
func Log(v any) {
	Default().Log(v)
}
