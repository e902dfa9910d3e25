package vegan

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    batchCounter   prometheus.Counter
//	    batchHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordBatch(nperm int, duration time.Duration, err error) {
//	    p.batchCounter.Inc()
//	    // ... record error state, duration, etc.
//	}
type MetricsCollector interface {
	// RecordBatch is called after each GetF batch.
	// nperm is the number of permutations requested, duration is the total
	// time taken, err is nil if successful.
	RecordBatch(nperm int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordBatch(int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	BatchCount       atomic.Int64
	BatchErrors      atomic.Int64
	BatchTotalNanos  atomic.Int64
	PermutationCount atomic.Int64
}

// RecordBatch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBatch(nperm int, duration time.Duration, err error) {
	b.BatchCount.Add(1)
	b.BatchTotalNanos.Add(duration.Nanoseconds())
	b.PermutationCount.Add(int64(nperm))
	if err != nil {
		b.BatchErrors.Add(1)
	}
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector counters.
type BasicMetricsStats struct {
	BatchCount       int64
	BatchErrors      int64
	BatchAvgNanos    int64
	PermutationCount int64
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	stats := BasicMetricsStats{
		BatchCount:       b.BatchCount.Load(),
		BatchErrors:      b.BatchErrors.Load(),
		PermutationCount: b.PermutationCount.Load(),
	}
	if stats.BatchCount > 0 {
		stats.BatchAvgNanos = b.BatchTotalNanos.Load() / stats.BatchCount
	}
	return stats
}
