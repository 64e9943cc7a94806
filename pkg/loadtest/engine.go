// Package loadtest implements the fixed-pool worker engine: ramp-up,
// cooperative cancellation, a 5s percentile/time-series sampler, and a
// separate 500ms RPS-only updater. Grounded on the teacher's
// pkg/core/tools/perf.go runTest (worker goroutines, ramp-up delay
// formula, sync.WaitGroup) generalized to a persistent metrics.Collector
// instead of local slices and an atomic.Bool cancel flag instead of only a
// context deadline, with a dedicated reporting goroutine in the shape of
// torosent-crankfire's internal/runner sampler.
package loadtest

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/blackcoderx/volt/pkg/core"
	"github.com/blackcoderx/volt/pkg/httpexec"
	"github.com/blackcoderx/volt/pkg/metrics"
)

// sampleInterval is how often the sampler computes percentiles and pushes
// a time-series point.
const sampleInterval = 5 * time.Second

// rpsInterval is how often the fast RPS-only updater refreshes current_rps
// for the UI between sampler ticks.
const rpsInterval = 500 * time.Millisecond

// rpsWindow is the trailing window used by UpdateRPS.
const rpsWindow = time.Second

// EngineHandle is returned by Start; it owns the worker pool for the
// duration of one run and exposes cooperative cancellation plus
// read-only access to the shared Collector for the UI to poll every frame.
type EngineHandle struct {
	collector  *metrics.Collector
	cancelFlag atomic.Bool
	done       chan struct{}
	start      time.Time
}

// Collector exposes the shared metrics sink for the UI's snapshot polling.
func (h *EngineHandle) Collector() *metrics.Collector { return h.collector }

// StartedAt returns the wall-clock instant the first worker began, used
// for elapsed-time display and as the sampler's reference instant.
func (h *EngineHandle) StartedAt() time.Time { return h.start }

// Stop sets the cancel flag; workers exit at their next iteration
// boundary, and any outstanding request completes and is recorded rather
// than being interrupted mid-flight.
func (h *EngineHandle) Stop() {
	h.cancelFlag.Store(true)
}

// AwaitDone blocks until every worker and the sampler have exited, whether
// by natural deadline or cancellation.
func (h *EngineHandle) AwaitDone() {
	<-h.done
}

// Start spawns config.Concurrency workers against endpoint using executor,
// each looping with inputs pre-resolved until config.DurationSec elapses or
// the handle is cancelled. Workers and the sampler share the returned
// Collector; the UI never touches engine internals directly.
func Start(endpoint core.ApiEndpoint, config core.LoadTestConfig, executor *httpexec.Executor, inputs core.RequestInputs) *EngineHandle {
	handle := &EngineHandle{
		collector: metrics.New(),
		done:      make(chan struct{}),
	}

	duration := time.Duration(config.DurationSec) * time.Second

	var wg sync.WaitGroup
	wg.Add(config.Concurrency)

	// Wall-clock duration is measured from first worker start, not from
	// ramp-up-complete, so the deadline is fixed before any worker's
	// ramp-up delay.
	handle.start = time.Now()
	deadline := handle.start.Add(duration)

	for i := 0; i < config.Concurrency; i++ {
		delay := rampUpDelay(i, config.RampUpSec, config.Concurrency)
		go runWorker(&wg, handle, executor, endpoint, inputs, deadline, delay)
	}

	samplerDone := make(chan struct{})
	samplerExited := make(chan struct{})
	go func() {
		runSampler(handle, samplerDone)
		close(samplerExited)
	}()

	go func() {
		wg.Wait()
		close(samplerDone)
		<-samplerExited
		close(handle.done)
	}()

	return handle
}

// rampUpDelay is worker i's start delay: i * rampUpSec / concurrency, or
// zero when there is no ramp-up.
func rampUpDelay(i, rampUpSec, concurrency int) time.Duration {
	if rampUpSec <= 0 {
		return 0
	}
	return time.Duration(i) * time.Duration(rampUpSec) * time.Second / time.Duration(concurrency)
}

func runWorker(wg *sync.WaitGroup, handle *EngineHandle, executor *httpexec.Executor, endpoint core.ApiEndpoint, inputs core.RequestInputs, deadline time.Time, delay time.Duration) {
	defer wg.Done()

	if delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		<-timer.C
	}

	for time.Now().Before(deadline) && !handle.cancelFlag.Load() {
		reqStart := time.Now()
		ctx, cancel := context.WithTimeout(context.Background(), endpoint.Timeout())
		resp, err := executor.Execute(ctx, endpoint, inputs)
		cancel()
		elapsed := time.Since(reqStart)

		if err != nil {
			handle.collector.RecordFailure(core.ClassifyError(err), elapsed)
			continue
		}
		handle.collector.RecordSuccess(resp.Duration)
	}
}

// runSampler runs alongside the workers: every 5s it refreshes RPS then
// pushes a time-series point; a second, faster loop refreshes current_rps
// alone every 500ms so the UI's live number does not wait a full 5s tick.
func runSampler(handle *EngineHandle, done chan struct{}) {
	sampleTicker := time.NewTicker(sampleInterval)
	defer sampleTicker.Stop()
	rpsTicker := time.NewTicker(rpsInterval)
	defer rpsTicker.Stop()

	for {
		select {
		case <-done:
			return
		case <-sampleTicker.C:
			handle.collector.UpdateRPS(rpsWindow)
			handle.collector.AddTimeSeriesPoint(handle.start)
		case <-rpsTicker.C:
			handle.collector.UpdateRPS(rpsWindow)
		}
	}
}
