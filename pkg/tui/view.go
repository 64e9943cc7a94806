package tui

import (
	"fmt"
	"strings"

	"github.com/blackcoderx/volt/pkg/core"
	"github.com/charmbracelet/lipgloss"
)

// View renders the current screen. Grounded on the teacher's
// strings.Builder composition style (pkg/tui/view.go) with a per-screen
// render function instead of a flat log-entry formatter, since every
// screen here has its own layout rather than one scrolling transcript.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var body string
	switch m.screen {
	case ScreenCollectionList:
		body = m.viewCollectionList()
	case ScreenCollectionEdit:
		body = m.viewCollectionEdit()
	case ScreenEndpointEdit:
		body = m.viewEndpointEdit()
	case ScreenEndpointDetail:
		body = m.viewEndpointDetail()
	case ScreenLoadTestConfig:
		body = m.viewLoadTestConfig()
	case ScreenLoadTestRunning:
		body = m.viewLoadTestRunning()
	case ScreenVariableList:
		body = m.viewVariableList()
	case ScreenVariableEdit:
		body = m.viewVariableEdit()
	case ScreenVariableInput:
		body = m.viewVariableInput()
	case ScreenConfirmDelete:
		body = m.viewConfirmDelete()
	case ScreenHelp:
		body = m.viewHelp()
	default:
		body = m.viewCollectionList()
	}

	var b strings.Builder
	b.WriteString(body)
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderFooter() string {
	var parts []string
	if m.errorMessage != "" {
		parts = append(parts, ErrorStyle.Render(m.errorMessage))
	} else if m.statusMessage != "" {
		parts = append(parts, StatusStyle.Render(m.statusMessage))
	}
	parts = append(parts, HelpStyle.Render(m.footerHint()))
	return FooterStyle.Render(strings.Join(parts, "  "))
}

func (m Model) footerHint() string {
	switch m.screen {
	case ScreenCollectionList:
		return "n new · e edit · d delete · enter open · x quick-exec · l load test · v variables · ?/q help/quit"
	case ScreenCollectionEdit, ScreenVariableEdit, ScreenEndpointEdit:
		return "tab next field · enter save · esc cancel"
	case ScreenEndpointDetail:
		return "e execute · x quick-exec · t traffic · H headers · space collapse · y copy · esc back"
	case ScreenLoadTestConfig:
		return "tab next field · enter start · esc cancel"
	case ScreenLoadTestRunning:
		return "esc stop and return"
	case ScreenVariableList:
		return "n new · e edit · d delete · esc back"
	case ScreenVariableInput:
		return "tab next · enter execute · esc cancel"
	case ScreenConfirmDelete:
		return "y confirm · n/esc cancel"
	default:
		return "esc back"
	}
}

// --- CollectionList -------------------------------------------------------

func (m Model) viewCollectionList() string {
	half := m.width/2 - 2
	if half < 20 {
		half = 20
	}

	var left strings.Builder
	left.WriteString(PanelTitleStyle.Render("Collections") + "\n")
	for i, c := range m.collections {
		line := c.Name
		if i == m.collectionCursor {
			left.WriteString(SelectedItemStyle.Render("> "+line) + "\n")
		} else {
			left.WriteString(ItemStyle.Render("  "+line) + "\n")
		}
	}

	var right strings.Builder
	right.WriteString(PanelTitleStyle.Render("Endpoints") + "\n")
	if c := m.currentCollection(); c != nil {
		for i, ep := range c.Endpoints {
			line := MethodBadge(string(ep.Method)) + " " + ep.Name
			if i == m.endpointCursor {
				right.WriteString(SelectedItemStyle.Render("> "+line) + "\n")
			} else {
				right.WriteString(ItemStyle.Render("  "+line) + "\n")
			}
		}
	}

	leftBox := UnfocusedPanelBorder
	rightBox := UnfocusedPanelBorder
	if m.panelFocus == FocusCollections {
		leftBox = FocusedPanelBorder
	} else {
		rightBox = FocusedPanelBorder
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		leftBox.Width(half).Render(left.String()),
		rightBox.Width(half).Render(right.String()),
	)
}

// --- CollectionEdit -------------------------------------------------------

func (m Model) viewCollectionEdit() string {
	title := "New Collection"
	if m.collectionForm.EditingID != "" {
		title = "Edit Collection"
	}
	return TitleStyle.Render(title) + "\n\n" +
		FieldLabelStyle.Render("Name: ") + FieldFocusedStyle.Render(m.collectionForm.Name+"█")
}

// --- EndpointEdit ----------------------------------------------------------

var endpointFieldLabels = []string{"Name", "Method", "URL", "Description", "Headers", "Body", "Timeout (s)"}

func (m Model) viewEndpointEdit() string {
	f := m.endpointForm
	title := "New Endpoint"
	if f.EditingID != "" {
		title = "Edit Endpoint"
	}
	var b strings.Builder
	b.WriteString(TitleStyle.Render(title) + "\n\n")

	for i, label := range endpointFieldLabels {
		value := f.Fields[i]
		if i == fieldMethod {
			value = string(f.Method)
		}
		style := FieldBlurredStyle
		cursor := ""
		if i == f.CurrentField && !f.InHeaderMode {
			style = FieldFocusedStyle
			cursor = "█"
		}
		b.WriteString(fmt.Sprintf("%-14s %s\n", FieldLabelStyle.Render(label+":"), style.Render(value+cursor)))
		if i == fieldHeaders {
			for k, v := range f.Headers {
				b.WriteString("    " + ItemStyle.Render(k+": "+v) + "\n")
			}
		}
	}

	if f.InHeaderMode {
		b.WriteString("\n" + PanelTitleStyle.Render("New header") + "\n")
		keyStyle, valStyle := FieldBlurredStyle, FieldBlurredStyle
		keyCursor, valCursor := "", ""
		if f.HeaderField == 0 {
			keyStyle, keyCursor = FieldFocusedStyle, "█"
		} else {
			valStyle, valCursor = FieldFocusedStyle, "█"
		}
		b.WriteString(FieldLabelStyle.Render("Key:   ") + keyStyle.Render(f.HeaderKeyBuf+keyCursor) + "\n")
		b.WriteString(FieldLabelStyle.Render("Value: ") + valStyle.Render(f.HeaderValBuf+valCursor) + "\n")
	}

	return b.String()
}

// --- EndpointDetail ---------------------------------------------------------

func (m Model) viewEndpointDetail() string {
	ep := m.currentEndpoint()
	if ep == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(TitleStyle.Render(ep.Name) + "\n")
	b.WriteString(MethodBadge(string(ep.Method)) + " " + ep.URL + "\n")
	if ep.Description != "" {
		b.WriteString(HelpStyle.Render(ep.Description) + "\n")
	}
	b.WriteString("\n")

	if m.lastResponse == nil {
		b.WriteString(HelpStyle.Render("No response yet. Press 'e' or 'x' to execute.") + "\n")
		return b.String()
	}

	resp := m.lastResponse
	statusStyle := lipgloss.NewStyle().Foreground(StatusBadgeColor(resp.StatusCode)).Bold(true)
	b.WriteString(statusStyle.Render(fmt.Sprintf("%d %s", resp.StatusCode, resp.StatusText)))
	b.WriteString(fmt.Sprintf("  %v\n\n", resp.Duration))

	bodyLines := strings.Split(m.coloredBody, "\n")
	visible := 20
	end := m.bodyScrollOffset + visible
	if end > len(bodyLines) {
		end = len(bodyLines)
	}
	start := m.bodyScrollOffset
	if start > end {
		start = end
	}
	b.WriteString(strings.Join(bodyLines[start:end], "\n"))
	b.WriteString("\n")

	if m.collapsed["response_headers"] {
		b.WriteString(CollapsedHintStyle.Render("[headers collapsed, space to expand]") + "\n")
	} else if m.showResponseHeaders {
		b.WriteString("\n" + PanelTitleStyle.Render("Headers") + "\n")
		hdrs := resp.Headers
		hEnd := m.headerScrollOffset + 20
		if hEnd > len(hdrs) {
			hEnd = len(hdrs)
		}
		hStart := m.headerScrollOffset
		if hStart > hEnd {
			hStart = hEnd
		}
		for _, h := range hdrs[hStart:hEnd] {
			b.WriteString(ItemStyle.Render(h.Name+": "+h.Value) + "\n")
		}
	}

	if m.collapsed["network_traffic"] {
		b.WriteString(CollapsedHintStyle.Render("[traffic collapsed, space to expand]") + "\n")
	} else if m.showNetworkTraffic {
		t := resp.Traffic
		b.WriteString("\n" + PanelTitleStyle.Render("Network") + "\n")
		b.WriteString(fmt.Sprintf("waiting=%v download=%v total=%v\n", t.Timing.Waiting, t.Timing.ContentDownload, t.Timing.Total))
		b.WriteString(fmt.Sprintf("request_body=%d response_body=%d response_headers=%d\n",
			t.Request.BodySize, t.ResponseBodySize, t.ResponseHeaderSize))
	}

	return b.String()
}

// --- LoadTestConfig / LoadTestRunning ----------------------------------

var loadTestFieldLabels = []string{"Concurrency", "Duration (s)", "Ramp-up (s)"}

func (m Model) viewLoadTestConfig() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Load Test Configuration") + "\n\n")
	for i, label := range loadTestFieldLabels {
		style := FieldBlurredStyle
		cursor := ""
		if i == m.loadTestForm.CurrentField {
			style = FieldFocusedStyle
			cursor = "█"
		}
		b.WriteString(fmt.Sprintf("%-16s %s\n", FieldLabelStyle.Render(label+":"), style.Render(m.loadTestForm.Fields[i]+cursor)))
	}
	return b.String()
}

func (m Model) viewLoadTestRunning() string {
	ep := m.currentEndpoint()
	title := "Load Test Running"
	if ep != nil {
		title = "Load Test: " + ep.Name
	}
	var b strings.Builder
	b.WriteString(TitleStyle.Render(title) + " " + pulseGlyph(m.animPos) + "\n\n")

	if m.engine == nil {
		return b.String()
	}
	snap := m.engine.Collector().Snapshot(m.engine.StartedAt())
	b.WriteString(fmt.Sprintf("Requests: %d   Success: %d   Failure: %d   RPS: %.1f\n",
		snap.Total, snap.Success, snap.Failure, snap.CurrentRPS))
	b.WriteString(fmt.Sprintf("Latency  min=%v p50=%v p90=%v p95=%v p99=%v max=%v\n",
		snap.Percentiles.Min, snap.Percentiles.P50, snap.Percentiles.P90,
		snap.Percentiles.P95, snap.Percentiles.P99, snap.Percentiles.Max))
	if len(snap.Errors) > 0 {
		b.WriteString("Errors: ")
		for kind, n := range snap.Errors {
			b.WriteString(fmt.Sprintf("%s=%d ", kind, n))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n" + renderSparkline(snap.TimeSeries) + "\n")
	return b.String()
}

func pulseGlyph(pos float64) string {
	glyphs := []string{"○", "◔", "◑", "◕", "●"}
	idx := int(pos * float64(len(glyphs)-1))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(glyphs) {
		idx = len(glyphs) - 1
	}
	return lipgloss.NewStyle().Foreground(AccentColor).Render(glyphs[idx])
}

var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// renderSparkline draws a unicode-block bar chart of RPS across the
// bounded 12-point time series the collector maintains.
func renderSparkline(points []core.TimeSeriesDataPoint) string {
	if len(points) == 0 {
		return HelpStyle.Render("(gathering samples...)")
	}
	max := 0.0
	for _, p := range points {
		if p.RPS > max {
			max = p.RPS
		}
	}
	var b strings.Builder
	for _, p := range points {
		idx := 0
		if max > 0 {
			idx = int(p.RPS / max * float64(len(sparkBlocks)-1))
		}
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkBlocks) {
			idx = len(sparkBlocks) - 1
		}
		b.WriteRune(sparkBlocks[idx])
	}
	return lipgloss.NewStyle().Foreground(AccentColor).Render(b.String())
}

// --- VariableList / VariableEdit / VariableInput -------------------------

func (m Model) viewVariableList() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Variables") + "\n\n")
	keys := sortedVariableKeys(m.variables.Variables)
	for i, k := range keys {
		line := k + " = " + m.variables.Variables[k]
		if i == m.variableCursor {
			b.WriteString(SelectedItemStyle.Render("> "+line) + "\n")
		} else {
			b.WriteString(ItemStyle.Render("  "+line) + "\n")
		}
	}
	if len(keys) == 0 {
		b.WriteString(HelpStyle.Render("No variables defined yet.") + "\n")
	}
	return b.String()
}

func (m Model) viewVariableEdit() string {
	title := "New Variable"
	if m.variableForm.EditingKey != "" {
		title = "Edit Variable"
	}
	var b strings.Builder
	b.WriteString(TitleStyle.Render(title) + "\n\n")
	labels := []string{"Key", "Value"}
	for i, label := range labels {
		style := FieldBlurredStyle
		cursor := ""
		if i == m.variableForm.CurrentField {
			style = FieldFocusedStyle
			cursor = "█"
		}
		b.WriteString(fmt.Sprintf("%-8s %s\n", FieldLabelStyle.Render(label+":"), style.Render(m.variableForm.Fields[i]+cursor)))
	}
	return b.String()
}

func (m Model) viewVariableInput() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Fill in variables") + "\n\n")
	for i, name := range m.variableInput.Names {
		style := FieldBlurredStyle
		cursor := ""
		if i == m.variableInput.CurrentIndex {
			style = FieldFocusedStyle
			cursor = "█"
		}
		b.WriteString(fmt.Sprintf("%-16s %s\n", FieldLabelStyle.Render(name+":"), style.Render(m.variableInput.Values[name]+cursor)))
	}
	if len(m.variableInput.Names) == 0 {
		b.WriteString(HelpStyle.Render("This endpoint has no variables. Press enter to execute.") + "\n")
	}
	return b.String()
}

// --- ConfirmDelete / Help ---------------------------------------------

func (m Model) viewConfirmDelete() string {
	var what string
	switch m.deleteTarget.Kind {
	case DeleteCollection:
		what = "this collection"
	case DeleteEndpoint:
		what = "this endpoint"
	case DeleteVariable:
		what = "variable '" + m.deleteTarget.VariableKey + "'"
	}
	return ErrorStyle.Render(fmt.Sprintf("Delete %s? This cannot be undone.", what))
}

func (m Model) viewHelp() string {
	md := "# volt\n\n" +
		"- `n` new, `e` edit, `d` delete\n" +
		"- `enter` open endpoint, `x` quick execute, `l` load test\n" +
		"- `v` variables, `?` help, `q` quit\n" +
		"- Edit screens: every key is literal text except `m` (method field),\n" +
		"  `h` (headers field enters header entry), and digit-only timeout/load-test fields.\n"
	if m.renderer != nil {
		if out, err := m.renderer.Render(md); err == nil {
			return out
		}
	}
	return md
}
