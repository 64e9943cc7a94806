package tui

import (
	"time"

	"github.com/blackcoderx/volt/pkg/core"
	"github.com/blackcoderx/volt/pkg/httpexec"
	"github.com/blackcoderx/volt/pkg/loadtest"
	"github.com/blackcoderx/volt/pkg/storage"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/harmonica"
)

// PanelFocus selects which split-view panel has keyboard focus on
// CollectionList.
type PanelFocus int

const (
	FocusCollections PanelFocus = iota
	FocusEndpoints
)

// Screen is the tagged-variant enum driving both the input router and the
// draw layer, per §4.7. Payload fields that only apply to some variants
// are zero-valued when unused (e.g. EndpointEditForm.EditingID == "" means
// "new").
type Screen int

const (
	ScreenCollectionList Screen = iota
	ScreenCollectionEdit
	ScreenEndpointList
	ScreenEndpointEdit
	ScreenEndpointDetail
	ScreenResponseView
	ScreenLoadTestConfig
	ScreenLoadTestRunning
	ScreenVariableList
	ScreenVariableEdit
	ScreenVariableInput
	ScreenConfirmDelete
	ScreenHelp
)

// DeleteTargetKind tags what ConfirmDelete is about to remove.
type DeleteTargetKind int

const (
	DeleteCollection DeleteTargetKind = iota
	DeleteEndpoint
	DeleteVariable
)

// DeleteTarget identifies the record pending deletion.
type DeleteTarget struct {
	Kind           DeleteTargetKind
	CollectionID   string
	EndpointID     string
	VariableKey    string
}

// EndpointEditForm holds the seven field buffers described in §4.7's
// EndpointEdit payload, plus the header sub-mode's own two-field form.
const endpointFieldCount = 7

const (
	fieldName = iota
	fieldMethod
	fieldURL
	fieldDescription
	fieldHeaders
	fieldBody
	fieldTimeout
)

// EndpointEditForm is a hand-rolled, field-indexed string-buffer form. It
// is NOT built on charmbracelet/huh: huh's Form/Group widget owns its own
// key loop and cannot expose the per-keystroke, field-index-conditional
// overrides §4.7 requires (method cycling only on field 1, header-mode
// entry only on field 4, digits-only on field 6). See SPEC_FULL.md §1 and
// DESIGN.md for the rationale.
type EndpointEditForm struct {
	EditingID    string // "" means creating a new endpoint
	CurrentField int
	Fields       [endpointFieldCount]string
	Method       core.HttpMethod
	Headers      map[string]string

	InHeaderMode  bool
	HeaderField   int // 0 = key, 1 = value
	HeaderKeyBuf  string
	HeaderValBuf  string
}

// CollectionEditForm is the single-field collection-name form.
type CollectionEditForm struct {
	EditingID string
	Name      string
}

// LoadTestConfigForm holds the three digit-only fields from §4.7.
const loadTestFieldCount = 3

const (
	ltFieldConcurrency = iota
	ltFieldDuration
	ltFieldRampUp
)

type LoadTestConfigForm struct {
	CurrentField int
	Fields       [loadTestFieldCount]string
}

// VariableEditForm holds the two-field (key, value) form.
const variableFieldCount = 2

const (
	varFieldKey = iota
	varFieldValue
)

type VariableEditForm struct {
	EditingKey   string
	CurrentField int
	Fields       [variableFieldCount]string
}

// VariableInputForm is the per-endpoint prompt page: one editable value per
// discovered user variable, pre-filled from the VariableManager.
type VariableInputForm struct {
	Names        []string
	Values       map[string]string
	CurrentIndex int
}

// Model is the central application state. Per §4.7 it owns: the
// collections vector, index cursors, panel focus, the current screen,
// whichever form is open, scroll offsets, toggle flags, the collapsed
// section set, the most recent response plus its formatted string,
// transient status/error messages, and service handles.
type Model struct {
	width, height int
	ready         bool

	// services
	store    *storage.Store
	executor *httpexec.Executor

	// collections & variables
	collections []core.ApiCollection
	variables   core.VariableSet

	// navigation
	panelFocus        PanelFocus
	collectionCursor  int
	endpointCursor    int
	variableCursor    int
	screen            Screen
	screenStack       []Screen // for returning from overlay screens

	// forms
	endpointForm    EndpointEditForm
	collectionForm  CollectionEditForm
	loadTestForm    LoadTestConfigForm
	variableForm    VariableEditForm
	variableInput   VariableInputForm
	deleteTarget    DeleteTarget

	// response view
	lastResponse      *core.HttpResponse
	formattedBody     string
	coloredBody       string
	bodyScrollOffset  int
	headerScrollOffset int
	showNetworkTraffic bool
	showResponseHeaders bool
	collapsed          map[string]bool

	// load test
	engine *loadtest.EngineHandle

	// transient messages
	statusMessage string
	errorMessage  string

	// widgets
	spinner  spinner.Model
	viewport viewport.Model
	renderer *glamour.TermRenderer

	// pulsing status indicator (LoadTestRunning)
	animSpring harmonica.Spring
	animPos    float64
	animVel    float64
	animTarget float64
	lastTick   time.Time
}

// currentCollection returns the collection under the cursor, or nil.
func (m *Model) currentCollection() *core.ApiCollection {
	if m.collectionCursor < 0 || m.collectionCursor >= len(m.collections) {
		return nil
	}
	return &m.collections[m.collectionCursor]
}

// currentEndpoint returns the endpoint under the cursor within the current
// collection, or nil.
func (m *Model) currentEndpoint() *core.ApiEndpoint {
	c := m.currentCollection()
	if c == nil || m.endpointCursor < 0 || m.endpointCursor >= len(c.Endpoints) {
		return nil
	}
	return &c.Endpoints[m.endpointCursor]
}

// pushScreen transitions to next, remembering the current screen so
// overlay/edit screens can return to it on Esc.
func (m *Model) pushScreen(next Screen) {
	m.screenStack = append(m.screenStack, m.screen)
	m.screen = next
}

// popScreen returns to the screen below the current one on the stack,
// falling back to CollectionList if the stack is empty.
func (m *Model) popScreen() {
	if len(m.screenStack) == 0 {
		m.screen = ScreenCollectionList
		return
	}
	m.screen = m.screenStack[len(m.screenStack)-1]
	m.screenStack = m.screenStack[:len(m.screenStack)-1]
}
