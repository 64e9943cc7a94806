package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	sampleInterval = 5 * time.Second
	rpsInterval    = 500 * time.Millisecond
)

// animTick drives the LoadTestRunning pulse at ~30fps. Grounded on the
// teacher's animTick (pkg/tui/update.go).
func animTick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return animTickMsg(t) })
}

// sampleTick and rpsTick drive repaint cadence only. §4.6 assigns the
// actual sampling (UpdateRPS/AddTimeSeriesPoint) to the engine's own
// runSampler goroutine; the UI's job is solely to call Snapshot() often
// enough that the live numbers look current, reimagined here as
// bubbletea's poll-loop (§5: "the UI domain observes [load tests] only
// through the shared MetricsCollector snapshot" — a read-only
// tick-and-redraw, not the teacher's push-via-globalProgram idiom used
// for agent events). Ticking twice here would double-sample against the
// same collector the engine already samples.
func sampleTick() tea.Cmd {
	return tea.Tick(sampleInterval, func(t time.Time) tea.Msg { return sampleTickMsg(t) })
}

func rpsTick() tea.Cmd {
	return tea.Tick(rpsInterval, func(t time.Time) tea.Msg { return rpsTickMsg(t) })
}

// Update is the root bubbletea event handler.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		updated, cmd := m.handleKeyMsg(msg)
		return updated, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case collectionsLoadedMsg:
		m.collections = msg.collections
		m.variables = msg.variables
		if len(msg.loadErrors) > 0 {
			m.errorMessage = msg.loadErrors[0].Error()
		}
		return m, nil

	case requestDoneMsg:
		m = m.applyRequestDone(msg)
		return m, nil

	case sampleTickMsg:
		if m.screen != ScreenLoadTestRunning || m.engine == nil {
			return m, nil
		}
		return m, sampleTick()

	case rpsTickMsg:
		if m.screen != ScreenLoadTestRunning || m.engine == nil {
			return m, nil
		}
		return m, rpsTick()

	case loadTestFinishedMsg:
		return m, nil

	case animTickMsg:
		if m.screen != ScreenLoadTestRunning {
			return m, nil
		}
		m.animPos, m.animVel = m.animSpring.Update(m.animPos, m.animVel, m.animTarget)
		if m.animTarget > 0.5 && m.animPos > 0.85 {
			m.animTarget = 0.0
		} else if m.animTarget < 0.5 && m.animPos < 0.15 {
			m.animTarget = 1.0
		}
		return m, animTick()
	}

	return m, nil
}
