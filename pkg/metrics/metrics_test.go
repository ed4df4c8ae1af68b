package metrics

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInMemoryCollectorCounts(t *testing.T) {
	c := NewCollector()

	c.RecordCheck(true)
	c.RecordCheck(true)
	c.RecordCheck(false)
	c.RecordSuppressed()

	stats := c.Snapshot()
	assert.Equal(t, 3, stats.Checks)
	assert.Equal(t, 2, stats.Passed)
	assert.Equal(t, 1, stats.Failed)
	assert.Equal(t, 1, stats.Suppressed)
}

func TestInMemoryCollectorReset(t *testing.T) {
	c := NewCollector()
	c.RecordCheck(false)
	c.RecordSuppressed()

	c.Reset()

	assert.Equal(t, Stats{}, c.Snapshot())
}

func TestInMemoryCollectorConcurrent(t *testing.T) {
	c := NewCollector()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.RecordCheck(j%2 == 0)
			}
		}()
	}
	wg.Wait()

	stats := c.Snapshot()
	assert.Equal(t, 1000, stats.Checks)
	assert.Equal(t, 500, stats.Passed)
	assert.Equal(t, 500, stats.Failed)
}

func TestNoopCollector(t *testing.T) {
	var c Collector = NoopCollector{}
	c.RecordCheck(true)
	c.RecordSuppressed()
	c.Reset()
	assert.Equal(t, Stats{}, c.Snapshot())
}
