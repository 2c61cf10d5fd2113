package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/revq/internal/ui/layout"
)

// Screen is one view in the application, managed by the router stack.
type Screen interface {
	// Init runs when the screen becomes active for the first time.
	Init() tea.Cmd

	// Update handles a message and returns the next screen state.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the body. The header and footer are drawn around it.
	View(width, height int) string

	// Title is shown centered in the header bar.
	Title() string
}

// KeyHintProvider lets a screen publish its own footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}
