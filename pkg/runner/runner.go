// Package runner binds the soft-check lifecycle to the Go test
// framework: the recorder is cleared when a test starts, and every
// failure it accumulated is drained into one aggregate test failure
// when the test finishes.
package runner

import (
	"os"
	"path/filepath"
	"testing"

	"digital.vasic.softcheck/pkg/failure"
	"digital.vasic.softcheck/pkg/logging"
	"digital.vasic.softcheck/pkg/metrics"
	"digital.vasic.softcheck/pkg/report"
)

// Attach binds the recorder lifecycle to t: the recorder is cleared
// immediately, and a cleanup registered on t drains it when the
// test finishes. A test with recorded failures fails exactly once,
// with the aggregate message.
//
//	func TestOrders(t *testing.T) {
//		runner.Attach(t)
//		check.Equal(2, placed)
//		check.True(confirmed)
//	}
func Attach(t testing.TB, opts ...Option) {
	t.Helper()

	b := newBinding(opts)
	b.rec.Clear()
	b.applySettings()
	t.Cleanup(func() {
		b.drain(t)
	})
}

// Verify drains the recorder into t immediately, for tests that
// manage the lifecycle themselves. The recorder is cleared whether
// or not failures were recorded.
func Verify(t testing.TB, opts ...Option) {
	t.Helper()

	b := newBinding(opts)
	b.applySettings()
	b.drain(t)
}

// drain reports the accumulated failures as one test failure and
// resets the recorder for the next test.
func (b *binding) drain(t testing.TB) {
	t.Helper()

	records := b.rec.Records()
	stats := b.rec.Stats()
	b.rec.Clear()

	if len(records) == 0 {
		b.logger.Debug("no soft failures recorded")
		return
	}

	if b.reportPath != "" {
		if err := b.writeArtifact(records, stats); err != nil {
			b.logger.Warn("failed to write failure report",
				logging.StringField("path", b.reportPath),
				logging.ErrorField(err),
			)
		}
	}

	text, err := b.reporter.Render(records)
	if err != nil {
		t.Errorf("softcheck: rendering failure report: %v", err)
		return
	}

	b.logger.Info("reporting soft failures",
		logging.IntField("count", len(records)),
	)
	t.Errorf("%s", text)
}

// writeArtifact stores the JSON failure report next to other test
// artifacts.
func (b *binding) writeArtifact(
	records []failure.Record, stats metrics.Stats,
) error {
	data, err := report.NewJSONReporter(true).
		WithStats(stats).
		Render(records)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(b.reportPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(b.reportPath, data, 0o644)
}
