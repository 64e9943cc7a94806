package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/blackcoderx/volt/pkg/core"
)

func TestCalculatePercentilesWorkedExample(t *testing.T) {
	ms := func(n int) time.Duration { return time.Duration(n) * time.Millisecond }
	latencies := []time.Duration{ms(10), ms(20), ms(30), ms(40), ms(50), ms(60), ms(70), ms(80), ms(90), ms(100)}
	got := CalculatePercentiles(latencies)
	want := core.PercentileSet{Min: ms(10), P50: ms(50), P90: ms(90), P95: ms(100), P99: ms(100), Max: ms(100)}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestCalculatePercentilesEmpty(t *testing.T) {
	got := CalculatePercentiles(nil)
	if got != (core.PercentileSet{}) {
		t.Fatalf("expected all zeros, got %+v", got)
	}
}

func TestCalculatePercentilesOrdering(t *testing.T) {
	latencies := make([]time.Duration, 0, 137)
	for i := 1; i <= 137; i++ {
		latencies = append(latencies, time.Duration(i)*time.Millisecond)
	}
	p := CalculatePercentiles(latencies)
	if !(p.Min <= p.P50 && p.P50 <= p.P90 && p.P90 <= p.P95 && p.P95 <= p.P99 && p.P99 <= p.Max) {
		t.Fatalf("percentiles not monotonic: %+v", p)
	}
}

func TestRecordSuccessAndFailureTotals(t *testing.T) {
	c := New()
	c.RecordSuccess(10 * time.Millisecond)
	c.RecordSuccess(20 * time.Millisecond)
	c.RecordFailure(core.ErrorKindTimeout, 30*time.Millisecond)

	snap := c.Snapshot(time.Now())
	if snap.Total != 3 || snap.Success != 2 || snap.Failure != 1 {
		t.Fatalf("got total=%d success=%d failure=%d", snap.Total, snap.Success, snap.Failure)
	}
	if snap.Errors[string(core.ErrorKindTimeout)] != 1 {
		t.Fatalf("expected 1 timeout error, got %v", snap.Errors)
	}
}

func TestConcurrentRecordingProducesDeterministicTotal(t *testing.T) {
	c := New()
	const n = 500
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			if i%7 == 0 {
				c.RecordFailure(core.ErrorKindOther, time.Millisecond)
			} else {
				c.RecordSuccess(time.Millisecond)
			}
		}(i)
	}
	wg.Wait()

	snap := c.Snapshot(time.Now())
	if snap.Total != n {
		t.Fatalf("expected total %d, got %d", n, snap.Total)
	}
	if snap.Success+snap.Failure != snap.Total {
		t.Fatalf("success+failure != total: %d+%d != %d", snap.Success, snap.Failure, snap.Total)
	}
}

func TestAddTimeSeriesPointBoundedTo12(t *testing.T) {
	c := New()
	c.RecordSuccess(10 * time.Millisecond)
	start := time.Now()
	for i := 0; i < 20; i++ {
		c.AddTimeSeriesPoint(start)
	}
	snap := c.Snapshot(start)
	if len(snap.TimeSeries) != core.MaxTimeSeriesPoints {
		t.Fatalf("expected %d points, got %d", core.MaxTimeSeriesPoints, len(snap.TimeSeries))
	}
}

func TestUpdateRPSWindow(t *testing.T) {
	c := New()
	c.RecordSuccess(time.Millisecond)
	c.RecordSuccess(time.Millisecond)
	c.UpdateRPS(time.Second)
	snap := c.Snapshot(time.Now())
	if snap.CurrentRPS <= 0 {
		t.Fatalf("expected positive rps, got %v", snap.CurrentRPS)
	}
}
