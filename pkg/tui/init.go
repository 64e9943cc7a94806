package tui

import (
	"github.com/blackcoderx/volt/pkg/core"
	"github.com/blackcoderx/volt/pkg/httpexec"
	"github.com/blackcoderx/volt/pkg/storage"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
)

// newSpinner matches the teacher's dots spinner (pkg/tui/init.go), reused
// verbatim since it is pure presentation with no domain coupling.
func newSpinner() spinner.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(AccentColor)
	return sp
}

func newGlamourRenderer() *glamour.TermRenderer {
	renderer, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	return renderer
}

// InitialModel builds the starting Model around a storage root and an
// HTTP executor. Collections and variables are loaded asynchronously via
// loadCollectionsCmd so a slow or corrupt disk never blocks the first
// frame.
func InitialModel(store *storage.Store) Model {
	return Model{
		store:      store,
		executor:   httpexec.New(),
		variables:  core.NewDefaultVariableSet(),
		screen:     ScreenCollectionList,
		collapsed:  map[string]bool{},
		spinner:    newSpinner(),
		viewport:   viewport.New(80, 24),
		renderer:   newGlamourRenderer(),
		animSpring: harmonica.NewSpring(harmonica.FPS(30), 5.0, 0.3),
		animTarget: 1.0,
	}
}

func loadCollectionsCmd(store *storage.Store) tea.Cmd {
	return func() tea.Msg {
		collections, loadErrors := store.ListCollections()
		variables, err := store.LoadVariables()
		if err != nil {
			loadErrors = append(loadErrors, err)
		}
		return collectionsLoadedMsg{collections: collections, variables: variables, loadErrors: loadErrors}
	}
}

// Init starts the alt-screen, the initial collection load, and the
// animation ticker.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		loadCollectionsCmd(m.store),
		animTick(),
	)
}
