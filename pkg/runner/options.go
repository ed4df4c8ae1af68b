package runner

import (
	"digital.vasic.softcheck/pkg/config"
	"digital.vasic.softcheck/pkg/failure"
	"digital.vasic.softcheck/pkg/logging"
	"digital.vasic.softcheck/pkg/metrics"
	"digital.vasic.softcheck/pkg/report"
)

// binding holds the resolved collaborators for one Attach or
// Verify call.
type binding struct {
	rec        *failure.Recorder
	reporter   report.Reporter
	logger     logging.Logger
	collector  metrics.Collector
	reportPath string
	settings   *config.Settings
	stopOnFail *bool
}

// Option configures a binding.
type Option func(*binding)

// WithRecorder binds to the given recorder instead of the
// process-wide default. Parallel tests must each bring their own.
func WithRecorder(rec *failure.Recorder) Option {
	return func(b *binding) {
		b.rec = rec
	}
}

// WithReporter sets the reporter rendering the aggregate failure
// message.
func WithReporter(r report.Reporter) Option {
	return func(b *binding) {
		b.reporter = r
	}
}

// WithLogger sets the logger used for lifecycle events.
func WithLogger(logger logging.Logger) Option {
	return func(b *binding) {
		b.logger = logger
	}
}

// WithMetrics attaches a metrics collector to the recorder, so
// check outcome counters survive the drain and can feed an external
// sink.
func WithMetrics(c metrics.Collector) Option {
	return func(b *binding) {
		b.collector = c
	}
}

// WithStopOnFail switches the recorder to fail-fast for this test.
func WithStopOnFail(stop bool) Option {
	return func(b *binding) {
		v := stop
		b.stopOnFail = &v
	}
}

// WithJSONReportPath additionally writes a JSON failure report to
// the given path when the test recorded failures.
func WithJSONReportPath(path string) Option {
	return func(b *binding) {
		b.reportPath = path
	}
}

// WithSettings applies loaded session settings: fail-fast mode,
// trace depth, report path, and verbose console logging when no
// logger was set explicitly.
func WithSettings(s config.Settings) Option {
	return func(b *binding) {
		b.settings = &s
	}
}

func newBinding(opts []Option) *binding {
	b := &binding{}
	for _, opt := range opts {
		opt(b)
	}

	if b.rec == nil {
		b.rec = failure.Default()
	}
	if b.reporter == nil {
		b.reporter = report.NewTextReporter()
	}
	if b.logger == nil {
		if b.settings != nil && b.settings.Verbose {
			b.logger = logging.NewConsoleLogger(true)
		} else {
			b.logger = logging.NullLogger{}
		}
	}
	return b
}

// applySettings configures the resolved recorder from settings and
// explicit options. Explicit options win over settings.
func (b *binding) applySettings() {
	if b.collector != nil {
		b.rec.SetCollector(b.collector)
	}
	if b.settings != nil {
		b.settings.Apply(b.rec)
		if b.reportPath == "" {
			b.reportPath = b.settings.ReportPath
		}
	}
	if b.stopOnFail != nil {
		b.rec.SetStopOnFail(*b.stopOnFail)
	}
}
