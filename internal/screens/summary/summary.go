package summary

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/revq/internal/router"
	"github.com/abhisek/revq/internal/screen"
	"github.com/abhisek/revq/internal/ui/layout"
	"github.com/abhisek/revq/internal/ui/theme"
)

// Data is what a finished review session reports.
type Data struct {
	Session  int64
	Queued   int
	Answered int
	Correct  int
	Missed   int
	Duration time.Duration
}

// Accuracy is the fraction of answered questions that were correct.
func (d *Data) Accuracy() float64 {
	if d.Answered == 0 {
		return 0
	}
	return float64(d.Correct) / float64(d.Answered)
}

// SummaryScreen displays the session summary.
type SummaryScreen struct {
	data *Data
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(data *Data) *SummaryScreen {
	return &SummaryScreen{data: data}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	d := s.data
	if d == nil {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render(fmt.Sprintf("Session %d complete!", d.Session)))
	b.WriteString("\n\n")

	mins := int(d.Duration.Minutes())
	secs := int(d.Duration.Seconds()) % 60
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Duration: %d:%02d", mins, secs)))
	b.WriteString("\n\n")

	accuracy := fmt.Sprintf("%.0f%%", d.Accuracy()*100)
	statsLine := fmt.Sprintf("Answered: %d/%d        Correct: %d        Accuracy: %s",
		d.Answered, d.Queued, d.Correct, accuracy)
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(statsLine))
	b.WriteString("\n\n")

	if d.Missed > 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("%d missed questions went back to the active shelf; follow-ups are on the way.", d.Missed)))
		b.WriteString("\n")
	}

	return b.String()
}
