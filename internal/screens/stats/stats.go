package stats

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/revq/internal/router"
	"github.com/abhisek/revq/internal/screen"
	"github.com/abhisek/revq/internal/session"
	"github.com/abhisek/revq/internal/shelf"
	"github.com/abhisek/revq/internal/store"
	"github.com/abhisek/revq/internal/ui/components"
	"github.com/abhisek/revq/internal/ui/layout"
	"github.com/abhisek/revq/internal/ui/theme"
)

type statsLoadedMsg struct {
	Stats *store.CourseStats
	Err   error
}

// StatsScreen displays the learner's standing in the course.
type StatsScreen struct {
	manager  *session.Manager
	userID   string
	courseID string

	stats  *store.CourseStats
	loaded bool
	errMsg string
}

var _ screen.Screen = (*StatsScreen)(nil)
var _ screen.KeyHintProvider = (*StatsScreen)(nil)

// New creates a new StatsScreen.
func New(manager *session.Manager, userID, courseID string) *StatsScreen {
	return &StatsScreen{
		manager:  manager,
		userID:   userID,
		courseID: courseID,
	}
}

func (s *StatsScreen) Init() tea.Cmd {
	return func() tea.Msg {
		stats, err := s.manager.CourseStats(context.Background(), s.userID, s.courseID)
		return statsLoadedMsg{Stats: stats, Err: err}
	}
}

func (s *StatsScreen) Title() string {
	return "Course Stats"
}

func (s *StatsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (s *StatsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.stats = msg.Stats
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "enter", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *StatsScreen) View(width, height int) string {
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n  Loading...")
	}
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render("\n\n" + s.errMsg)
	}

	st := s.stats
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(theme.Title.Width(width).Render(s.courseID))
	b.WriteString("\n\n")

	barWidth := min(width-20, 50)

	bar := components.NewMasteryBar("Avg mastery", st.AvgMastery, barWidth)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Shelves")))
	b.WriteString("\n")
	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", barWidth))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	for _, row := range []struct {
		label  string
		status shelf.Status
	}{
		{"Active", shelf.StatusActive},
		{"Awaiting follow-up", shelf.StatusPendingFollowup},
		{"Archived", shelf.StatusArchived},
	} {
		line := fmt.Sprintf("%-20s %d", row.label, st.StatusCounts[row.status])
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Text).Render(line)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	dueLine := fmt.Sprintf("%d follow-ups due   %d archived due   %d answers logged",
		st.DueFollowups, st.DueArchived, st.TotalAnswered)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(dueLine)))
	b.WriteString("\n")

	return b.String()
}
