package tui

import (
	"time"

	"github.com/blackcoderx/volt/pkg/core"
)

// animTickMsg drives the harmonica spring powering the LoadTestRunning
// pulsing indicator, at ~30fps. Grounded on the teacher's animTick/
// animTickMsg pair (pkg/tui/update.go).
type animTickMsg time.Time

// requestDoneMsg carries the outcome of a blocking single-shot execute
// (`x` from CollectionList or EndpointDetail, or Enter on VariableInput
// after EndpointDetail `e`). Per §5 the UI is
// unresponsive for the duration of the call; it arrives as one message
// when the request finishes.
type requestDoneMsg struct {
	response *core.HttpResponse
	err      error
}

// collectionsLoadedMsg is sent once at startup after the storage read.
type collectionsLoadedMsg struct {
	collections []core.ApiCollection
	variables   core.VariableSet
	loadErrors  []error
}

// sampleTickMsg fires every 5s while a load test is running, at §4.6's
// sampler cadence. It only causes a repaint; the engine's own sampler
// pushes the time-series point.
type sampleTickMsg time.Time

// rpsTickMsg fires every 500ms while a load test is running, at §4.6's
// RPS-only cadence. It only causes a repaint; the engine's own sampler
// updates the RPS value.
type rpsTickMsg time.Time

// loadTestFinishedMsg arrives when the engine's worker pool has drained,
// either because the configured duration elapsed or the cancel flag was
// set from Esc.
type loadTestFinishedMsg struct{}
