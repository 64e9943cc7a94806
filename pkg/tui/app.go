// Package tui provides the terminal user interface for volt.
//
// File organization:
//   - app.go: entry point (Run)
//   - model.go: Model struct, Screen enum, form payloads
//   - messages.go: bubbletea message types
//   - init.go: model construction and Init
//   - update.go: the root Update loop and tick commands
//   - keys.go: the mode-sensitive input router
//   - actions.go: execute/load-test side effects
//   - view.go: rendering
//   - styles.go: palette and lipgloss styles
package tui

import (
	"github.com/blackcoderx/volt/pkg/storage"
	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the TUI application rooted at the given storage directory.
func Run(baseDir string) error {
	store := storage.New(baseDir)
	m := InitialModel(store)
	prog := tea.NewProgram(m, tea.WithAltScreen())
	_, err := prog.Run()
	return err
}
