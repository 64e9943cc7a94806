// Package metrics implements the load test's thread-safe metrics sink:
// success/failure counters, an append-only latency slice, an error-kind
// breakdown, rolling RPS, and the bounded time-series feed for live
// sparklines. Grounded on the teacher's pkg/core/tools/perf.go
// (percentileIndex, mutex-guarded latency slice) and torosent-crankfire's
// internal/metrics/collector.go (errorsByType map, Stats snapshot shape).
package metrics

import (
	"math"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/blackcoderx/volt/pkg/core"
)

// completion records when one request finished, for the trailing-window
// RPS computation.
type completion struct {
	at time.Time
}

// Collector is the internally synchronized metrics sink shared by the
// load-test engine's workers, its sampler goroutine, and the UI's
// read-only snapshot view. It is safe to share by pointer across
// goroutines (the spec's "reference-counted handle" is just a *Collector
// in Go).
type Collector struct {
	mu          sync.Mutex
	total       int64
	success     int64
	failure     int64
	latencies   []time.Duration
	completions []completion
	errors      map[core.ErrorKind]int64
	timeSeries  []core.TimeSeriesDataPoint

	currentRPS atomic.Value // float64
}

// New creates an empty Collector.
func New() *Collector {
	c := &Collector{
		errors: make(map[core.ErrorKind]int64),
	}
	c.currentRPS.Store(float64(0))
	return c
}

// RecordSuccess increments total and success, and appends latency.
func (c *Collector) RecordSuccess(latency time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.total++
	c.success++
	c.latencies = append(c.latencies, latency)
	c.completions = append(c.completions, completion{at: time.Now()})
}

// RecordFailure increments total and failure, appends latency, and
// increments errors[kind].
func (c *Collector) RecordFailure(kind core.ErrorKind, latency time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.total++
	c.failure++
	c.latencies = append(c.latencies, latency)
	c.completions = append(c.completions, completion{at: time.Now()})
	c.errors[kind]++
}

// UpdateRPS computes current_rps over the trailing window using the count
// of completions whose timestamp falls inside it, and stores it for
// lock-free reads by Snapshot.
func (c *Collector) UpdateRPS(window time.Duration) {
	c.mu.Lock()
	cutoff := time.Now().Add(-window)
	count := 0
	for i := len(c.completions) - 1; i >= 0; i-- {
		if c.completions[i].at.Before(cutoff) {
			break
		}
		count++
	}
	c.mu.Unlock()
	c.currentRPS.Store(float64(count) / window.Seconds())
}

// AddTimeSeriesPoint computes percentiles over all latencies to date, reads
// current_rps, and pushes a TimeSeriesDataPoint, dropping the oldest once
// length exceeds core.MaxTimeSeriesPoints.
func (c *Collector) AddTimeSeriesPoint(start time.Time) {
	c.mu.Lock()
	latenciesCopy := make([]time.Duration, len(c.latencies))
	copy(latenciesCopy, c.latencies)
	total := c.total
	c.mu.Unlock()

	pct := CalculatePercentiles(latenciesCopy)
	point := core.TimeSeriesDataPoint{
		ElapsedSecs:  time.Since(start).Seconds(),
		RPS:          c.currentRPS.Load().(float64),
		P50:          pct.P50,
		P90:          pct.P90,
		P95:          pct.P95,
		P99:          pct.P99,
		RequestCount: total,
	}

	c.mu.Lock()
	c.timeSeries = append(c.timeSeries, point)
	if len(c.timeSeries) > core.MaxTimeSeriesPoints {
		c.timeSeries = c.timeSeries[len(c.timeSeries)-core.MaxTimeSeriesPoints:]
	}
	c.mu.Unlock()
}

// Snapshot returns an immutable view sufficient for rendering.
func (c *Collector) Snapshot(start time.Time) core.MetricsSnapshot {
	c.mu.Lock()
	latenciesCopy := make([]time.Duration, len(c.latencies))
	copy(latenciesCopy, c.latencies)
	errorsCopy := make(map[string]int64, len(c.errors))
	for k, v := range c.errors {
		errorsCopy[string(k)] = v
	}
	seriesCopy := make([]core.TimeSeriesDataPoint, len(c.timeSeries))
	copy(seriesCopy, c.timeSeries)
	snap := core.MetricsSnapshot{
		Total:      c.total,
		Success:    c.success,
		Failure:    c.failure,
		Errors:     errorsCopy,
		TimeSeries: seriesCopy,
		Elapsed:    time.Since(start),
	}
	c.mu.Unlock()

	snap.CurrentRPS = c.currentRPS.Load().(float64)
	snap.Percentiles = CalculatePercentiles(latenciesCopy)
	return snap
}

// CalculatePercentiles sorts a copy of latencies and returns min/p50/p90/
// p95/p99/max using the ceiling-index method: index = ceil(P/100 * n) - 1,
// clamped to [0, n-1]. An empty input returns all zeros, matching the
// spec's "undefined behavior on empty" note.
func CalculatePercentiles(latencies []time.Duration) core.PercentileSet {
	n := len(latencies)
	if n == 0 {
		return core.PercentileSet{}
	}
	sorted := make([]time.Duration, n)
	copy(sorted, latencies)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	return core.PercentileSet{
		Min: sorted[0],
		P50: sorted[percentileIndex(n, 50)],
		P90: sorted[percentileIndex(n, 90)],
		P95: sorted[percentileIndex(n, 95)],
		P99: sorted[percentileIndex(n, 99)],
		Max: sorted[n-1],
	}
}

func percentileIndex(n, percentile int) int {
	index := int(math.Ceil(float64(n)*float64(percentile)/100.0)) - 1
	if index < 0 {
		index = 0
	}
	if index >= n {
		index = n - 1
	}
	return index
}
