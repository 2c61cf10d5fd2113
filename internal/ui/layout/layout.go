// Package layout renders the header, footer, and frame shared by all
// screens.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/revq/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24
)

// KeyHint is one key binding shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsTooSmall reports whether the terminal is below the minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage renders the "terminal too small" message.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf(
			"Terminal too small!\n\nPlease resize to at\nleast %d x %d\n\nCurrent: %d x %d",
			MinWidth, MinHeight, width, height,
		))
}

// bar is the bordered box both the header and the footer sit in.
func bar(content string, width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}

// RenderHeader renders the application header. The right side shows the
// session number and how many questions are still queued.
func RenderHeader(title string, session int64, remaining int, width int) string {
	brand := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  revq")
	center := lipgloss.NewStyle().Foreground(theme.Text).Render(title)
	status := lipgloss.NewStyle().Foreground(theme.Accent).
		Render(fmt.Sprintf("session %d   %d left", session, remaining))

	inner := width - 4 // border padding
	if inner < 0 {
		inner = 0
	}

	// Center the title relative to the full bar, then pad the status
	// out to the right edge.
	gapLeft := (inner-lipgloss.Width(center))/2 - lipgloss.Width(brand)
	if gapLeft < 1 {
		gapLeft = 1
	}
	gapRight := inner - lipgloss.Width(brand) - gapLeft - lipgloss.Width(center) - lipgloss.Width(status)
	if gapRight < 1 {
		gapRight = 1
	}

	return bar(brand+strings.Repeat(" ", gapLeft)+center+strings.Repeat(" ", gapRight)+status, width)
}

// RenderFooter renders the footer with key hints.
func RenderFooter(hints []KeyHint, width int) string {
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts,
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(h.Key)+
				" "+
				lipgloss.NewStyle().Foreground(theme.TextDim).Render(h.Description))
	}
	return bar("  "+strings.Join(parts, "   "), width)
}

// RenderFrame stacks header, content, and footer into a full frame.
func RenderFrame(header, content, footer string, width, height int) string {
	body := height - lipgloss.Height(header) - lipgloss.Height(footer)
	if body < 0 {
		body = 0
	}
	return header + "\n" +
		lipgloss.NewStyle().Width(width).Height(body).Render(content) + "\n" +
		footer
}
