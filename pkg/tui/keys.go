package tui

import (
	"github.com/atotto/clipboard"
	"github.com/blackcoderx/volt/pkg/core"
	tea "github.com/charmbracelet/bubbletea"
)

// handleKeyMsg is the priority-ordered input router: overlay screens
// (ConfirmDelete, Help) first, then in-edit context overrides, then
// list-screen globals, then text-append fallthrough. Grounded on the
// teacher's handleKeyMsg dispatch shape (pkg/tui/keys.go) — a single
// switch delegating to one handler per concern — generalized from a flat
// key switch to a screen-indexed one, since this domain's router is
// mode-sensitive where the teacher's chat input was not.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.screen {
	case ScreenConfirmDelete:
		return m.handleConfirmDeleteKey(msg)
	case ScreenHelp:
		return m.handleHelpKey(msg)
	case ScreenCollectionList:
		return m.handleCollectionListKey(msg)
	case ScreenCollectionEdit:
		return m.handleCollectionEditKey(msg)
	case ScreenEndpointEdit:
		return m.handleEndpointEditKey(msg)
	case ScreenEndpointDetail:
		return m.handleEndpointDetailKey(msg)
	case ScreenLoadTestConfig:
		return m.handleLoadTestConfigKey(msg)
	case ScreenLoadTestRunning:
		return m.handleLoadTestRunningKey(msg)
	case ScreenVariableList:
		return m.handleVariableListKey(msg)
	case ScreenVariableEdit:
		return m.handleVariableEditKey(msg)
	case ScreenVariableInput:
		return m.handleVariableInputKey(msg)
	}
	return m, nil
}

// --- ConfirmDelete -----------------------------------------------------

func (m Model) handleConfirmDeleteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		return m.performDelete()
	case "n", "N", "esc":
		m.popScreen()
		return m, nil
	}
	return m, nil
}

func (m Model) performDelete() (Model, tea.Cmd) {
	switch m.deleteTarget.Kind {
	case DeleteCollection:
		if err := m.store.DeleteCollection(m.deleteTarget.CollectionID); err != nil {
			m.errorMessage = err.Error()
		} else {
			m.collections = removeCollection(m.collections, m.deleteTarget.CollectionID)
			if m.collectionCursor >= len(m.collections) {
				m.collectionCursor = len(m.collections) - 1
			}
			m.statusMessage = "Collection deleted"
		}
	case DeleteEndpoint:
		for i := range m.collections {
			if m.collections[i].ID == m.deleteTarget.CollectionID {
				m.collections[i].Endpoints = removeEndpoint(m.collections[i].Endpoints, m.deleteTarget.EndpointID)
				if err := m.store.SaveCollection(m.collections[i]); err != nil {
					m.errorMessage = err.Error()
				} else {
					m.statusMessage = "Endpoint deleted"
				}
				if m.endpointCursor >= len(m.collections[i].Endpoints) {
					m.endpointCursor = len(m.collections[i].Endpoints) - 1
				}
				break
			}
		}
	case DeleteVariable:
		delete(m.variables.Variables, m.deleteTarget.VariableKey)
		if err := m.store.SaveVariables(m.variables); err != nil {
			m.errorMessage = err.Error()
		} else {
			m.statusMessage = "Variable deleted"
		}
		if keys := sortedVariableKeys(m.variables.Variables); m.variableCursor >= len(keys) {
			m.variableCursor = len(keys) - 1
		}
	}
	m.popScreen()
	return m, nil
}

func removeCollection(cs []core.ApiCollection, id string) []core.ApiCollection {
	out := cs[:0]
	for _, c := range cs {
		if c.ID != id {
			out = append(out, c)
		}
	}
	return out
}

func removeEndpoint(eps []core.ApiEndpoint, id string) []core.ApiEndpoint {
	out := eps[:0]
	for _, e := range eps {
		if e.ID != id {
			out = append(out, e)
		}
	}
	return out
}

// --- Help ---------------------------------------------------------------

func (m Model) handleHelpKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "?":
		m.popScreen()
	}
	return m, nil
}

// --- CollectionList (split view) ----------------------------------------

func (m Model) handleCollectionListKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "?":
		m.pushScreen(ScreenHelp)
		return m, nil
	case "ctrl+h":
		m.panelFocus = FocusCollections
		return m, nil
	case "ctrl+l":
		m.panelFocus = FocusEndpoints
		return m, nil
	case "ctrl+j":
		return m.moveCursor(1), nil
	case "ctrl+k":
		return m.moveCursor(-1), nil
	case "v":
		m.pushScreen(ScreenVariableList)
		return m, nil
	case "n":
		if m.panelFocus == FocusCollections {
			m.collectionForm = CollectionEditForm{}
			m.pushScreen(ScreenCollectionEdit)
		} else if m.currentCollection() != nil {
			m.endpointForm = newEndpointEditForm()
			m.pushScreen(ScreenEndpointEdit)
		}
		return m, nil
	case "e":
		if m.panelFocus == FocusCollections {
			if c := m.currentCollection(); c != nil {
				m.collectionForm = CollectionEditForm{EditingID: c.ID, Name: c.Name}
				m.pushScreen(ScreenCollectionEdit)
			}
		} else if ep := m.currentEndpoint(); ep != nil {
			m.endpointForm = endpointFormFrom(ep)
			m.pushScreen(ScreenEndpointEdit)
		}
		return m, nil
	case "d":
		if m.panelFocus == FocusCollections {
			if c := m.currentCollection(); c != nil {
				m.deleteTarget = DeleteTarget{Kind: DeleteCollection, CollectionID: c.ID}
				m.pushScreen(ScreenConfirmDelete)
			}
		} else if c, ep := m.currentCollection(), m.currentEndpoint(); c != nil && ep != nil {
			m.deleteTarget = DeleteTarget{Kind: DeleteEndpoint, CollectionID: c.ID, EndpointID: ep.ID}
			m.pushScreen(ScreenConfirmDelete)
		}
		return m, nil
	case "enter":
		if m.panelFocus == FocusEndpoints && m.currentEndpoint() != nil {
			m.pushScreen(ScreenEndpointDetail)
		}
		return m, nil
	case "x":
		if m.panelFocus == FocusEndpoints {
			return m.tryQuickExecute()
		}
		return m, nil
	case "l":
		if m.panelFocus == FocusEndpoints && m.currentEndpoint() != nil {
			m.loadTestForm = loadTestFormFromEndpoint(m.currentEndpoint())
			m.pushScreen(ScreenLoadTestConfig)
		}
		return m, nil
	}
	return m, nil
}

func (m Model) moveCursor(delta int) Model {
	if m.panelFocus == FocusCollections {
		n := len(m.collections)
		if n == 0 {
			return m
		}
		m.collectionCursor = clampIndex(m.collectionCursor+delta, n)
		m.endpointCursor = 0
	} else if c := m.currentCollection(); c != nil {
		n := len(c.Endpoints)
		if n == 0 {
			return m
		}
		m.endpointCursor = clampIndex(m.endpointCursor+delta, n)
	}
	return m
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// --- CollectionEdit -------------------------------------------------------

func (m Model) handleCollectionEditKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.popScreen()
		return m, nil
	case tea.KeyEnter:
		return m.commitCollectionEdit()
	case tea.KeyBackspace:
		m.collectionForm.Name = popRune(m.collectionForm.Name)
		return m, nil
	}
	if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
		m.collectionForm.Name += msg.String()
	}
	return m, nil
}

func (m Model) commitCollectionEdit() (Model, tea.Cmd) {
	f := m.collectionForm
	if f.Name == "" {
		m.errorMessage = "Collection name cannot be empty"
		return m, nil
	}
	if f.EditingID == "" {
		c := core.ApiCollection{ID: core.NewID(), Name: f.Name}
		c.Touch()
		if err := m.store.SaveCollection(c); err != nil {
			m.errorMessage = err.Error()
			return m, nil
		}
		m.collections = append(m.collections, c)
		m.collectionCursor = len(m.collections) - 1
	} else {
		for i := range m.collections {
			if m.collections[i].ID == f.EditingID {
				m.collections[i].Name = f.Name
				m.collections[i].Touch()
				if err := m.store.SaveCollection(m.collections[i]); err != nil {
					m.errorMessage = err.Error()
					return m, nil
				}
				break
			}
		}
	}
	m.popScreen()
	return m, nil
}

// --- EndpointEdit (the critical-mode-rule screen) ------------------------

func newEndpointEditForm() EndpointEditForm {
	return EndpointEditForm{Method: core.MethodGet, Headers: map[string]string{}}
}

func endpointFormFrom(ep *core.ApiEndpoint) EndpointEditForm {
	f := EndpointEditForm{EditingID: ep.ID, Method: ep.Method, Headers: map[string]string{}}
	for k, v := range ep.Headers {
		f.Headers[k] = v
	}
	f.Fields[fieldName] = ep.Name
	f.Fields[fieldURL] = ep.URL
	f.Fields[fieldDescription] = ep.Description
	f.Fields[fieldBody] = ep.BodyTemplate
	if ep.TimeoutSecs > 0 {
		f.Fields[fieldTimeout] = itoa(ep.TimeoutSecs)
	}
	return f
}

// handleEndpointEditKey implements §4.7's critical mode rule: every
// printable character is literal text in every field EXCEPT the three
// named, field-index-scoped overrides below. Header sub-mode is a nested
// two-field form that must be checked first since it shadows the outer
// form entirely while active.
func (m Model) handleEndpointEditKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	f := &m.endpointForm

	if f.InHeaderMode {
		return m.handleHeaderSubModeKey(msg)
	}

	switch msg.Type {
	case tea.KeyEsc:
		m.popScreen()
		return m, nil
	case tea.KeyEnter:
		return m.commitEndpointEdit()
	case tea.KeyTab:
		f.CurrentField = (f.CurrentField + 1) % endpointFieldCount
		return m, nil
	case tea.KeyShiftTab:
		f.CurrentField = (f.CurrentField - 1 + endpointFieldCount) % endpointFieldCount
		return m, nil
	case tea.KeyBackspace:
		f.Fields[f.CurrentField] = popRune(f.Fields[f.CurrentField])
		return m, nil
	}

	if msg.Type != tea.KeyRunes && msg.Type != tea.KeySpace {
		return m, nil
	}
	ch := msg.String()

	switch f.CurrentField {
	case fieldMethod:
		if ch == "m" {
			f.Method = core.NextMethod(f.Method)
			return m, nil
		}
	case fieldHeaders:
		if ch == "h" {
			f.InHeaderMode = true
			f.HeaderField = 0
			f.HeaderKeyBuf = ""
			f.HeaderValBuf = ""
			return m, nil
		}
	case fieldTimeout:
		if !isASCIIDigit(ch) {
			return m, nil
		}
	}

	f.Fields[f.CurrentField] += ch
	return m, nil
}

func (m Model) handleHeaderSubModeKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	f := &m.endpointForm
	switch msg.Type {
	case tea.KeyEsc:
		f.InHeaderMode = false
		return m, nil
	case tea.KeyTab, tea.KeyShiftTab:
		f.HeaderField = 1 - f.HeaderField
		return m, nil
	case tea.KeyEnter:
		if f.HeaderKeyBuf != "" {
			f.Headers[f.HeaderKeyBuf] = f.HeaderValBuf
		}
		f.InHeaderMode = false
		return m, nil
	case tea.KeyBackspace:
		if f.HeaderField == 0 {
			f.HeaderKeyBuf = popRune(f.HeaderKeyBuf)
		} else {
			f.HeaderValBuf = popRune(f.HeaderValBuf)
		}
		return m, nil
	}
	if msg.Type != tea.KeyRunes && msg.Type != tea.KeySpace {
		return m, nil
	}
	if f.HeaderField == 0 {
		f.HeaderKeyBuf += msg.String()
	} else {
		f.HeaderValBuf += msg.String()
	}
	return m, nil
}

func (m Model) commitEndpointEdit() (Model, tea.Cmd) {
	f := m.endpointForm
	c := m.currentCollection()
	if c == nil {
		m.popScreen()
		return m, nil
	}
	if f.Fields[fieldName] == "" || f.Fields[fieldURL] == "" {
		m.errorMessage = "Name and URL are required"
		return m, nil
	}
	ep := core.ApiEndpoint{
		ID:           f.EditingID,
		Name:         f.Fields[fieldName],
		Method:       f.Method,
		URL:          f.Fields[fieldURL],
		Description:  f.Fields[fieldDescription],
		Headers:      f.Headers,
		BodyTemplate: f.Fields[fieldBody],
		TimeoutSecs:  atoiOr(f.Fields[fieldTimeout], 0),
	}
	if ep.ID == "" {
		ep.ID = core.NewID()
		c.Endpoints = append(c.Endpoints, ep)
		m.endpointCursor = len(c.Endpoints) - 1
	} else {
		idx := c.IndexOf(ep.ID)
		if idx >= 0 {
			c.Endpoints[idx] = ep
		}
	}
	c.Touch()
	if err := m.store.SaveCollection(*c); err != nil {
		m.errorMessage = err.Error()
		return m, nil
	}
	m.popScreen()
	return m, nil
}

// --- EndpointDetail -------------------------------------------------------

func (m Model) handleEndpointDetailKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.popScreen()
		return m, nil
	case "e":
		return m.enterVariableInput()
	case "x":
		return m.tryQuickExecute()
	case "t":
		m.showNetworkTraffic = !m.showNetworkTraffic
		return m, nil
	case "H":
		m.showResponseHeaders = !m.showResponseHeaders
		return m, nil
	case " ":
		m.toggleCollapse(m.focusedCollapseTag())
		return m, nil
	case "y":
		if m.lastResponse != nil {
			if err := clipboard.WriteAll(m.lastResponse.Body); err != nil {
				m.errorMessage = (&core.ClipboardUnavailableError{Err: err}).Error()
			} else {
				m.statusMessage = "Response body copied to clipboard"
			}
		}
		return m, nil
	case "pgup":
		m.bodyScrollOffset = clampScroll(m.bodyScrollOffset-10, m.bodyLineCount())
		return m, nil
	case "pgdown":
		m.bodyScrollOffset = clampScroll(m.bodyScrollOffset+10, m.bodyLineCount())
		return m, nil
	case "home":
		m.bodyScrollOffset = 0
		return m, nil
	case "end":
		m.bodyScrollOffset = clampScroll(1<<30, m.bodyLineCount())
		return m, nil
	case "shift+pgup":
		m.headerScrollOffset = clampScroll(m.headerScrollOffset-10, m.headerLineCount())
		return m, nil
	case "shift+pgdown":
		m.headerScrollOffset = clampScroll(m.headerScrollOffset+10, m.headerLineCount())
		return m, nil
	case "shift+home":
		m.headerScrollOffset = 0
		return m, nil
	}
	return m, nil
}

func (m Model) focusedCollapseTag() string {
	if m.showNetworkTraffic {
		return "network_traffic"
	}
	return "response_headers"
}

func (m *Model) toggleCollapse(tag string) {
	if m.collapsed == nil {
		m.collapsed = map[string]bool{}
	}
	m.collapsed[tag] = !m.collapsed[tag]
}

// clampScroll bounds offset to [0, max(0, totalLines-visibleHeight)] so the
// last line is always reachable, per §4.7's scrolling semantics.
func clampScroll(offset, totalLines int) int {
	visible := 20
	max := totalLines - visible
	if max < 0 {
		max = 0
	}
	if offset < 0 {
		return 0
	}
	if offset > max {
		return max
	}
	return offset
}

// --- LoadTestConfig ---------------------------------------------------

func loadTestFormFromEndpoint(ep *core.ApiEndpoint) LoadTestConfigForm {
	f := LoadTestConfigForm{}
	if ep.LoadTestConfig != nil {
		f.Fields[ltFieldConcurrency] = itoa(ep.LoadTestConfig.Concurrency)
		f.Fields[ltFieldDuration] = itoa(ep.LoadTestConfig.DurationSec)
		f.Fields[ltFieldRampUp] = itoa(ep.LoadTestConfig.RampUpSec)
	}
	return f
}

func (m Model) handleLoadTestConfigKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	f := &m.loadTestForm
	switch msg.Type {
	case tea.KeyEsc:
		m.screen = ScreenCollectionList
		m.screenStack = nil
		return m, nil
	case tea.KeyTab:
		f.CurrentField = (f.CurrentField + 1) % loadTestFieldCount
		return m, nil
	case tea.KeyShiftTab:
		f.CurrentField = (f.CurrentField - 1 + loadTestFieldCount) % loadTestFieldCount
		return m, nil
	case tea.KeyBackspace:
		f.Fields[f.CurrentField] = popRune(f.Fields[f.CurrentField])
		return m, nil
	case tea.KeyEnter:
		return m.startLoadTest()
	}
	if (msg.Type == tea.KeyRunes) && isASCIIDigit(msg.String()) {
		f.Fields[f.CurrentField] += msg.String()
	}
	return m, nil
}

func (m Model) handleLoadTestRunningKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.String() == "esc" {
		if m.engine != nil {
			m.engine.Stop()
		}
		m.screen = ScreenCollectionList
		m.screenStack = nil
		return m, nil
	}
	return m, nil
}

// --- VariableList / VariableEdit / VariableInput -------------------------

func (m Model) handleVariableListKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.popScreen()
		return m, nil
	case "n":
		m.variableForm = VariableEditForm{}
		m.pushScreen(ScreenVariableEdit)
		return m, nil
	case "e":
		if key, ok := m.variableKeyAtCursor(); ok {
			m.variableForm = VariableEditForm{EditingKey: key, Fields: [2]string{key, m.variables.Variables[key]}}
			m.pushScreen(ScreenVariableEdit)
		}
		return m, nil
	case "d":
		if key, ok := m.variableKeyAtCursor(); ok {
			m.deleteTarget = DeleteTarget{Kind: DeleteVariable, VariableKey: key}
			m.pushScreen(ScreenConfirmDelete)
		}
		return m, nil
	case "ctrl+j", "down":
		if keys := sortedVariableKeys(m.variables.Variables); m.variableCursor < len(keys)-1 {
			m.variableCursor++
		}
		return m, nil
	case "ctrl+k", "up":
		if m.variableCursor > 0 {
			m.variableCursor--
		}
		return m, nil
	}
	return m, nil
}

func (m Model) variableKeyAtCursor() (string, bool) {
	keys := sortedVariableKeys(m.variables.Variables)
	if m.variableCursor < 0 || m.variableCursor >= len(keys) {
		return "", false
	}
	return keys[m.variableCursor], true
}

func (m Model) handleVariableEditKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	f := &m.variableForm
	switch msg.Type {
	case tea.KeyEsc:
		m.popScreen()
		return m, nil
	case tea.KeyTab:
		f.CurrentField = (f.CurrentField + 1) % variableFieldCount
		return m, nil
	case tea.KeyShiftTab:
		f.CurrentField = (f.CurrentField - 1 + variableFieldCount) % variableFieldCount
		return m, nil
	case tea.KeyBackspace:
		f.Fields[f.CurrentField] = popRune(f.Fields[f.CurrentField])
		return m, nil
	case tea.KeyEnter:
		if f.Fields[varFieldKey] == "" {
			m.errorMessage = "Variable key cannot be empty"
			return m, nil
		}
		if m.variables.Variables == nil {
			m.variables.Variables = map[string]string{}
		}
		if f.EditingKey != "" && f.EditingKey != f.Fields[varFieldKey] {
			delete(m.variables.Variables, f.EditingKey)
		}
		m.variables.Variables[f.Fields[varFieldKey]] = f.Fields[varFieldValue]
		if err := m.store.SaveVariables(m.variables); err != nil {
			m.errorMessage = err.Error()
			return m, nil
		}
		m.popScreen()
		return m, nil
	}
	if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
		f.Fields[f.CurrentField] += msg.String()
	}
	return m, nil
}

func (m Model) handleVariableInputKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	f := &m.variableInput
	switch msg.Type {
	case tea.KeyEsc:
		m.popScreen()
		return m, nil
	case tea.KeyTab:
		if len(f.Names) > 0 {
			f.CurrentIndex = (f.CurrentIndex + 1) % len(f.Names)
		}
		return m, nil
	case tea.KeyShiftTab:
		if len(f.Names) > 0 {
			f.CurrentIndex = (f.CurrentIndex - 1 + len(f.Names)) % len(f.Names)
		}
		return m, nil
	case tea.KeyBackspace:
		if len(f.Names) > 0 {
			name := f.Names[f.CurrentIndex]
			f.Values[name] = popRune(f.Values[name])
		}
		return m, nil
	case tea.KeyEnter:
		return m.executeFromVariableInput()
	}
	if (msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace) && len(f.Names) > 0 {
		name := f.Names[f.CurrentIndex]
		f.Values[name] += msg.String()
	}
	return m, nil
}
