package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/revq/internal/ui/theme"
)

// MenuItem is a single entry in the home menu. Hint is optional dim
// text rendered after the label, used for things like the due count.
type MenuItem struct {
	Label    string
	Hint     string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical list with a cursor. Disabled entries are skipped
// when moving and cannot be activated.
type Menu struct {
	Items  []MenuItem
	Cursor int
}

// NewMenu creates a menu with the cursor on the first enabled item.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Cursor: -1}
	m.move(1)
	return m
}

// move advances the cursor by dir (+1 or -1) to the next enabled
// item, stopping at the list edge.
func (m *Menu) move(dir int) {
	for i := m.Cursor + dir; i >= 0 && i < len(m.Items); i += dir {
		if !m.Items[i].Disabled {
			m.Cursor = i
			return
		}
	}
}

// Init returns nil (no initial command).
func (m Menu) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		m.move(-1)
	case "down", "j":
		m.move(1)
	case "enter":
		if m.Cursor < 0 || m.Cursor >= len(m.Items) {
			return m, nil
		}
		item := m.Items[m.Cursor]
		if item.Action != nil && !item.Disabled {
			return m, item.Action()
		}
	}

	return m, nil
}

// View renders the menu.
func (m Menu) View() string {
	var b strings.Builder
	for i, item := range m.Items {
		line := item.Label
		if item.Hint != "" {
			line += " " + lipgloss.NewStyle().Foreground(theme.TextDim).Render(item.Hint)
		}
		if i == m.Cursor {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  ▸ " + line))
		} else {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render("    " + line))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
