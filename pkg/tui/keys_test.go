package tui

import (
	"testing"

	"github.com/blackcoderx/volt/pkg/core"
	tea "github.com/charmbracelet/bubbletea"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// TestCtrlCQuitsFromAnyScreen checks that the global quit binding is
// checked before the per-screen dispatch, regardless of which screen or
// sub-mode is active.
func TestCtrlCQuitsFromAnyScreen(t *testing.T) {
	screens := []Screen{
		ScreenCollectionList, ScreenCollectionEdit, ScreenEndpointEdit,
		ScreenEndpointDetail, ScreenConfirmDelete, ScreenHelp,
		ScreenLoadTestConfig, ScreenLoadTestRunning,
	}
	for _, s := range screens {
		m := Model{screen: s}
		_, cmd := m.handleKeyMsg(tea.KeyMsg{Type: tea.KeyCtrlC})
		if cmd == nil {
			t.Errorf("screen %v: expected a quit command for ctrl+c", s)
		}
	}
}

// TestEndpointEditMethodCycleOnlyOnMethodField is the critical-mode-rule
// test: 'm' cycles HttpMethod only while CurrentField == fieldMethod; on
// every other field it is literal text appended to that field's buffer.
func TestEndpointEditMethodCycleOnlyOnMethodField(t *testing.T) {
	m := Model{
		screen: ScreenEndpointEdit,
		endpointForm: EndpointEditForm{
			Method:       core.MethodGet,
			CurrentField: fieldMethod,
			Headers:      map[string]string{},
		},
	}
	updated, _ := m.handleKeyMsg(runeKey("m"))
	if updated.endpointForm.Method == core.MethodGet {
		t.Errorf("expected method to cycle away from GET on fieldMethod, got %q", updated.endpointForm.Method)
	}
	if updated.endpointForm.Fields[fieldMethod] != "" {
		t.Errorf("expected 'm' on fieldMethod not to be appended as text, got %q", updated.endpointForm.Fields[fieldMethod])
	}

	m2 := Model{
		screen: ScreenEndpointEdit,
		endpointForm: EndpointEditForm{
			Method:       core.MethodGet,
			CurrentField: fieldName,
			Headers:      map[string]string{},
		},
	}
	updated2, _ := m2.handleKeyMsg(runeKey("m"))
	if updated2.endpointForm.Method != core.MethodGet {
		t.Errorf("expected method unchanged on fieldName, got %q", updated2.endpointForm.Method)
	}
	if updated2.endpointForm.Fields[fieldName] != "m" {
		t.Errorf("expected 'm' literally appended to fieldName, got %q", updated2.endpointForm.Fields[fieldName])
	}
}

// TestEndpointEditHeaderModeEntryOnlyOnHeadersField mirrors the method-cycle
// test for the 'h' -> header sub-mode override.
func TestEndpointEditHeaderModeEntryOnlyOnHeadersField(t *testing.T) {
	m := Model{
		screen: ScreenEndpointEdit,
		endpointForm: EndpointEditForm{
			CurrentField: fieldHeaders,
			Headers:      map[string]string{},
		},
	}
	updated, _ := m.handleKeyMsg(runeKey("h"))
	if !updated.endpointForm.InHeaderMode {
		t.Fatal("expected 'h' on fieldHeaders to enter header sub-mode")
	}

	m2 := Model{
		screen: ScreenEndpointEdit,
		endpointForm: EndpointEditForm{
			CurrentField: fieldDescription,
			Headers:      map[string]string{},
		},
	}
	updated2, _ := m2.handleKeyMsg(runeKey("h"))
	if updated2.endpointForm.InHeaderMode {
		t.Fatal("did not expect 'h' on fieldDescription to enter header sub-mode")
	}
	if updated2.endpointForm.Fields[fieldDescription] != "h" {
		t.Errorf("expected 'h' literally appended to fieldDescription, got %q", updated2.endpointForm.Fields[fieldDescription])
	}
}

// TestEndpointEditHeaderModeShadowsOuterForm checks that once header
// sub-mode is active, all keys (including 'm' and 'h') route to the header
// buffers, never back to the outer form's CurrentField buffer.
func TestEndpointEditHeaderModeShadowsOuterForm(t *testing.T) {
	m := Model{
		screen: ScreenEndpointEdit,
		endpointForm: EndpointEditForm{
			CurrentField: fieldHeaders,
			InHeaderMode: true,
			HeaderField:  0,
			Headers:      map[string]string{},
		},
	}
	updated, _ := m.handleKeyMsg(runeKey("m"))
	if updated.endpointForm.HeaderKeyBuf != "m" {
		t.Errorf("expected 'm' routed to HeaderKeyBuf in header sub-mode, got %q", updated.endpointForm.HeaderKeyBuf)
	}
	if updated.endpointForm.Fields[fieldHeaders] != "" {
		t.Errorf("expected outer Fields buffer untouched while in header sub-mode, got %q", updated.endpointForm.Fields[fieldHeaders])
	}
}

// TestEndpointEditTimeoutFieldRejectsNonDigits exercises the digit-only
// override on the timeout field.
func TestEndpointEditTimeoutFieldRejectsNonDigits(t *testing.T) {
	m := Model{
		screen: ScreenEndpointEdit,
		endpointForm: EndpointEditForm{
			CurrentField: fieldTimeout,
			Headers:      map[string]string{},
		},
	}
	updated, _ := m.handleKeyMsg(runeKey("x"))
	if updated.endpointForm.Fields[fieldTimeout] != "" {
		t.Errorf("expected non-digit rejected on timeout field, got %q", updated.endpointForm.Fields[fieldTimeout])
	}
	updated2, _ := updated.handleKeyMsg(runeKey("5"))
	if updated2.endpointForm.Fields[fieldTimeout] != "5" {
		t.Errorf("expected digit accepted on timeout field, got %q", updated2.endpointForm.Fields[fieldTimeout])
	}
}

// TestConfirmDeleteNCancels checks that 'n' on the overlay screen cancels
// back to the previous screen rather than being read as any other binding.
func TestConfirmDeleteNCancels(t *testing.T) {
	m := Model{
		screen:       ScreenConfirmDelete,
		screenStack:  []Screen{ScreenCollectionList},
		deleteTarget: DeleteTarget{Kind: DeleteVariable, VariableKey: "missing"},
		variables:    core.NewDefaultVariableSet(),
		store:        nil,
	}
	updated, _ := m.handleKeyMsg(runeKey("n"))
	if updated.screen != ScreenCollectionList {
		t.Errorf("expected 'n' to cancel back to CollectionList, got %v", updated.screen)
	}
}

func TestClampScroll(t *testing.T) {
	cases := []struct {
		offset, total, want int
	}{
		{-5, 100, 0},
		{0, 5, 0},
		{1000, 100, 80},
		{10, 0, 0},
	}
	for _, tc := range cases {
		if got := clampScroll(tc.offset, tc.total); got != tc.want {
			t.Errorf("clampScroll(%d, %d) = %d, want %d", tc.offset, tc.total, got, tc.want)
		}
	}
}

func TestMoveCursorClampsWithinBounds(t *testing.T) {
	m := Model{
		panelFocus:  FocusCollections,
		collections: []core.ApiCollection{{ID: "a"}, {ID: "b"}},
	}
	m = m.moveCursor(-1)
	if m.collectionCursor != 0 {
		t.Errorf("expected cursor clamped to 0, got %d", m.collectionCursor)
	}
	m = m.moveCursor(1)
	if m.collectionCursor != 1 {
		t.Errorf("expected cursor to advance to 1, got %d", m.collectionCursor)
	}
	m = m.moveCursor(5)
	if m.collectionCursor != 1 {
		t.Errorf("expected cursor clamped to last index 1, got %d", m.collectionCursor)
	}
}

// TestVariableListCursorIsIndependentOfCollectionCursor is a regression
// test: VariableList scrolling must not leak into collectionCursor, which
// would corrupt CollectionList's selection after returning from it.
func TestVariableListCursorIsIndependentOfCollectionCursor(t *testing.T) {
	m := Model{
		screen:           ScreenVariableList,
		collectionCursor: 2,
		variables: core.VariableSet{Variables: map[string]string{
			"a": "1", "b": "2", "c": "3",
		}},
	}
	for i := 0; i < 5; i++ {
		m, _ = m.handleKeyMsg(tea.KeyMsg{Type: tea.KeyDown})
	}
	if m.collectionCursor != 2 {
		t.Errorf("expected collectionCursor to remain 2 after scrolling variables, got %d", m.collectionCursor)
	}
	if m.variableCursor != 2 {
		t.Errorf("expected variableCursor clamped to last index 2, got %d", m.variableCursor)
	}
}

func TestRemoveEndpointPreservesOrder(t *testing.T) {
	eps := []core.ApiEndpoint{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	out := removeEndpoint(eps, "b")
	if len(out) != 2 || out[0].ID != "a" || out[1].ID != "c" {
		t.Errorf("expected [a c], got %v", out)
	}
}
