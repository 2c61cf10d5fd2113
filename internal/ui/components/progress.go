package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/revq/internal/ui/theme"
)

// MasteryBar renders a labelled gauge for a 0-100 mastery score.
type MasteryBar struct {
	Label string
	Score float64
	Width int
}

// NewMasteryBar creates a gauge for score, clamped to [0, 100].
func NewMasteryBar(label string, score float64, width int) MasteryBar {
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return MasteryBar{Label: label, Score: score, Width: width}
}

const minBarCells = 4

// View renders "Label ████░░░░ 62%".
func (b MasteryBar) View() string {
	label := ""
	if b.Label != "" {
		label = lipgloss.NewStyle().Foreground(theme.Text).Render(b.Label) + "  "
	}
	pct := fmt.Sprintf("  %d%%", int(b.Score))

	cells := b.Width - lipgloss.Width(label) - len(pct)
	if cells < minBarCells {
		cells = minBarCells
	}
	filled := int(float64(cells) * b.Score / 100)
	if filled > cells {
		filled = cells
	}

	bar := lipgloss.NewStyle().Foreground(theme.Secondary).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("░", cells-filled))

	return label + bar + lipgloss.NewStyle().Foreground(theme.TextDim).Render(pct)
}
