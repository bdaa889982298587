package radix

import (
	"sync/atomic"
	"time"
)

// Stats is a point-in-time summary of a trie.
type Stats struct {
	// Operation counts
	Sets           uint64
	Gets           uint64
	Deletes        uint64
	LongestMatches uint64
	Misses         uint64 // Get/Delete/LongestMatch calls that found nothing
	Rejected       uint64 // operations failed with an error

	// Structure
	Splits   uint64
	Merges   uint64
	Nodes    int // root included
	Values   int
	KeyBytes int
	MaxDepth int

	// OpsPerSecond is the average rate since the trie was created.
	OpsPerSecond float64
}

// StatsCollector counts facade operations.
type StatsCollector struct {
	sets           uint64
	gets           uint64
	deletes        uint64
	longestMatches uint64
	misses         uint64
	rejected       uint64

	startTime time.Time
}

// NewStatsCollector creates a new statistics collector.
func NewStatsCollector() *StatsCollector {
	return &StatsCollector{startTime: time.Now()}
}

// RecordSet records a set operation.
func (sc *StatsCollector) RecordSet() { atomic.AddUint64(&sc.sets, 1) }

// RecordGet records a get operation.
func (sc *StatsCollector) RecordGet(found bool) {
	atomic.AddUint64(&sc.gets, 1)
	sc.recordMiss(found)
}

// RecordDelete records a delete operation.
func (sc *StatsCollector) RecordDelete(found bool) {
	atomic.AddUint64(&sc.deletes, 1)
	sc.recordMiss(found)
}

// RecordLongestMatch records a longest-prefix lookup.
func (sc *StatsCollector) RecordLongestMatch(found bool) {
	atomic.AddUint64(&sc.longestMatches, 1)
	sc.recordMiss(found)
}

// RecordRejected records an operation that returned an error.
func (sc *StatsCollector) RecordRejected() { atomic.AddUint64(&sc.rejected, 1) }

func (sc *StatsCollector) recordMiss(found bool) {
	if !found {
		atomic.AddUint64(&sc.misses, 1)
	}
}

// fill copies the operation counters into s.
func (sc *StatsCollector) fill(s *Stats) {
	s.Sets = atomic.LoadUint64(&sc.sets)
	s.Gets = atomic.LoadUint64(&sc.gets)
	s.Deletes = atomic.LoadUint64(&sc.deletes)
	s.LongestMatches = atomic.LoadUint64(&sc.longestMatches)
	s.Misses = atomic.LoadUint64(&sc.misses)
	s.Rejected = atomic.LoadUint64(&sc.rejected)

	elapsed := time.Since(sc.startTime).Seconds()
	if elapsed < 1.0 {
		elapsed = 1.0
	}
	s.OpsPerSecond = float64(s.Sets+s.Gets+s.Deletes+s.LongestMatches) / elapsed
}
