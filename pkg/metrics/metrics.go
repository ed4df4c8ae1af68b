// Package metrics collects counters describing check outcomes
// during a test run.
package metrics

import "sync"

// Stats is a snapshot of check outcome counters.
type Stats struct {
	// Checks is the total number of checks evaluated.
	Checks int `json:"checks"`

	// Passed counts checks whose condition held.
	Passed int `json:"passed"`

	// Failed counts checks whose condition did not hold,
	// regardless of whether the failure was suppressed.
	Failed int `json:"failed"`

	// Suppressed counts scope exits that swallowed a failure
	// so the test could keep running.
	Suppressed int `json:"suppressed"`
}

// Collector defines the interface for recording check metrics.
type Collector interface {
	// RecordCheck records one evaluated check and its outcome.
	RecordCheck(passed bool)

	// RecordSuppressed records a scope exit that suppressed a
	// failure.
	RecordSuppressed()

	// Snapshot returns the current counter values.
	Snapshot() Stats

	// Reset zeroes all counters.
	Reset()
}

// NoopCollector is a no-op implementation of Collector useful when
// metrics collection is disabled.
type NoopCollector struct{}

func (NoopCollector) RecordCheck(_ bool) {}
func (NoopCollector) RecordSuppressed() {}
func (NoopCollector) Snapshot() Stats { return Stats{} }
func (NoopCollector) Reset() {}

// InMemoryCollector is the standard Collector implementation. It is
// safe for concurrent use.
type InMemoryCollector struct {
	mu    sync.Mutex
	stats Stats
}

// NewCollector creates an empty InMemoryCollector.
func NewCollector() *InMemoryCollector {
	return &InMemoryCollector{}
}

// RecordCheck records one evaluated check and its outcome.
func (c *InMemoryCollector) RecordCheck(passed bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats.Checks++
	if passed {
		c.stats.Passed++
	} else {
		c.stats.Failed++
	}
}

// RecordSuppressed records a scope exit that suppressed a failure.
func (c *InMemoryCollector) RecordSuppressed() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats.Suppressed++
}

// Snapshot returns the current counter values.
func (c *InMemoryCollector) Snapshot() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// Reset zeroes all counters.
func (c *InMemoryCollector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats = Stats{}
}
