package tui

import (
	"context"
	"strings"

	"github.com/blackcoderx/volt/pkg/core"
	"github.com/blackcoderx/volt/pkg/format"
	"github.com/blackcoderx/volt/pkg/loadtest"
	"github.com/blackcoderx/volt/pkg/template"
	tea "github.com/charmbracelet/bubbletea"
)

// endpointPlaceholders collects every user-variable name referenced by an
// endpoint's URL, header values, body template, and auth fields, without
// duplicates, in first-appearance order. Header values are visited in map
// iteration order, so the relative order of names found only in headers
// is not fixed.
func endpointPlaceholders(ep *core.ApiEndpoint) []string {
	seen := map[string]bool{}
	var names []string
	add := func(tmpl string) {
		for _, n := range template.FindVariables(tmpl) {
			if !seen[n] {
				seen[n] = true
				names = append(names, n)
			}
		}
	}
	add(ep.URL)
	for _, v := range ep.Headers {
		add(v)
	}
	add(ep.BodyTemplate)
	if ep.Auth != nil {
		add(ep.Auth.Token)
		add(ep.Auth.Username)
		add(ep.Auth.Password)
		add(ep.Auth.KeyName)
		add(ep.Auth.KeyValue)
	}
	return names
}

// tryQuickExecute implements the `x` contract of §4.7: every placeholder
// must already resolve from the variable manager, or execution is refused
// in place with a pointed error naming the first missing name.
func (m Model) tryQuickExecute() (Model, tea.Cmd) {
	ep := m.currentEndpoint()
	if ep == nil {
		return m, nil
	}
	for _, name := range endpointPlaceholders(ep) {
		if _, ok := m.variables.Variables[name]; !ok {
			m.errorMessage = "Variable '" + name + "' not defined"
			return m, nil
		}
	}
	return m.runExecute(*ep, copyVars(m.variables.Variables))
}

// enterVariableInput implements traditional execute (`e` from
// EndpointDetail): always go through the VariableInput prompt page,
// pre-filled from the variable manager, before executing.
func (m Model) enterVariableInput() (Model, tea.Cmd) {
	ep := m.currentEndpoint()
	if ep == nil {
		return m, nil
	}
	names := endpointPlaceholders(ep)
	values := make(map[string]string, len(names))
	for _, n := range names {
		values[n] = m.variables.Variables[n]
	}
	m.variableInput = VariableInputForm{Names: names, Values: values}
	m.pushScreen(ScreenVariableInput)
	return m, nil
}

func (m Model) executeFromVariableInput() (Model, tea.Cmd) {
	ep := m.currentEndpoint()
	if ep == nil {
		m.popScreen()
		return m, nil
	}
	vars := copyVars(m.variables.Variables)
	for name, val := range m.variableInput.Values {
		vars[name] = val
	}
	m.popScreen()
	return m.runExecute(*ep, vars)
}

func copyVars(src map[string]string) map[string]string {
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

// runExecute performs the blocking single-shot request (§5: the UI is
// unresponsive for its duration by design) and lands on EndpointDetail
// with the result once it completes.
func (m Model) runExecute(ep core.ApiEndpoint, vars map[string]string) (Model, tea.Cmd) {
	if m.screen != ScreenEndpointDetail {
		m.pushScreen(ScreenEndpointDetail)
	}
	executor := m.executor
	inputs := core.RequestInputs{Variables: vars}
	return m, func() tea.Msg {
		resp, err := executor.Execute(context.Background(), ep, inputs)
		return requestDoneMsg{response: resp, err: err}
	}
}

// applyRequestDone integrates a requestDoneMsg into the model: formats the
// body for display, resets both scroll offsets to 0 to match §4.7's
// "both reset to 0 on a new response" rule (the collapse set is left as
// it is), and surfaces a
// transport/template error as the transient error message.
func (m Model) applyRequestDone(msg requestDoneMsg) Model {
	m.bodyScrollOffset = 0
	m.headerScrollOffset = 0
	if msg.err != nil {
		m.errorMessage = msg.err.Error()
		m.lastResponse = nil
		m.formattedBody = ""
		return m
	}
	m.errorMessage = ""
	m.lastResponse = msg.response
	contentType := ""
	for _, h := range msg.response.Headers {
		if strings.EqualFold(h.Name, "Content-Type") {
			contentType = h.Value
			break
		}
	}
	kind := format.DetectKind(contentType)
	m.formattedBody = format.Format(msg.response.Body, kind)
	m.coloredBody = m.formattedBody
	if kind == format.KindJSON {
		if colored, err := format.ColorizeJSON(msg.response.Body); err == nil {
			m.coloredBody = colored
		}
	}
	return m
}

func (m Model) bodyLineCount() int {
	if m.formattedBody == "" {
		return 0
	}
	return strings.Count(m.formattedBody, "\n") + 1
}

func (m Model) headerLineCount() int {
	if m.lastResponse == nil {
		return 0
	}
	return len(m.lastResponse.Headers)
}

// startLoadTest validates the LoadTestConfig form, persists it onto the
// endpoint, and launches the engine, per the LoadTestConfig->LoadTestRunning
// transition's side effect.
func (m Model) startLoadTest() (Model, tea.Cmd) {
	c := m.currentCollection()
	ep := m.currentEndpoint()
	if c == nil || ep == nil {
		return m, nil
	}
	cfg := core.LoadTestConfig{
		Concurrency: atoiOr(m.loadTestForm.Fields[ltFieldConcurrency], 0),
		DurationSec: atoiOr(m.loadTestForm.Fields[ltFieldDuration], 0),
		RampUpSec:   atoiOr(m.loadTestForm.Fields[ltFieldRampUp], 0),
	}
	if err := cfg.Validate(); err != nil {
		m.errorMessage = err.Error()
		return m, nil
	}
	cfgCopy := cfg
	ep.LoadTestConfig = &cfgCopy
	if err := m.store.SaveCollection(*c); err != nil {
		m.errorMessage = err.Error()
		return m, nil
	}
	inputs := core.RequestInputs{Variables: copyVars(m.variables.Variables)}
	m.engine = loadtest.Start(*ep, cfg, m.executor, inputs)
	m.screen = ScreenLoadTestRunning
	m.screenStack = nil
	m.animPos, m.animVel, m.animTarget = 0, 0, 1.0
	return m, tea.Batch(sampleTick(), rpsTick(), animTick(), awaitLoadTestDone(m.engine))
}

func awaitLoadTestDone(handle *loadtest.EngineHandle) tea.Cmd {
	return func() tea.Msg {
		handle.AwaitDone()
		return loadTestFinishedMsg{}
	}
}
