package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/revq/internal/router"
	"github.com/abhisek/revq/internal/screen"
	"github.com/abhisek/revq/internal/screens/review"
	"github.com/abhisek/revq/internal/screens/stats"
	"github.com/abhisek/revq/internal/session"
	"github.com/abhisek/revq/internal/store"
	"github.com/abhisek/revq/internal/ui/components"
	"github.com/abhisek/revq/internal/ui/layout"
	"github.com/abhisek/revq/internal/ui/theme"
)

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	manager  *session.Manager
	userID   string
	courseID string

	menu  components.Menu
	stats *store.CourseStats

	// switchingCourse shows the course input instead of the menu.
	switchingCourse bool
	courseInput     components.TextInput
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(manager *session.Manager, userID, courseID string) *HomeScreen {
	s := &HomeScreen{
		manager:  manager,
		userID:   userID,
		courseID: courseID,
	}

	// Aggregate stats are cheap and make the menu informative; a failed
	// load just leaves the line blank.
	if manager != nil {
		s.stats, _ = manager.CourseStats(context.Background(), userID, courseID)
	}

	s.menu = components.NewMenu(s.menuItems())
	return s
}

func (s *HomeScreen) menuItems() []components.MenuItem {
	return []components.MenuItem{
		{Label: "START REVIEW", Hint: s.dueHint(), Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{
					Screen: review.New(s.manager, s.userID, s.courseID),
				}
			}
		}},
		{Label: "COURSE STATS", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{
					Screen: stats.New(s.manager, s.userID, s.courseID),
				}
			}
		}},
		{Label: "SWITCH COURSE", Action: func() tea.Cmd {
			s.switchingCourse = true
			s.courseInput = components.NewTextInput("course id...", 40)
			return s.courseInput.Init()
		}},
		{Label: "QUIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
}

// dueHint summarizes how many items are waiting for review.
func (s *HomeScreen) dueHint() string {
	if s.stats == nil {
		return ""
	}
	due := s.stats.DueFollowups + s.stats.DueArchived
	if due == 0 {
		return ""
	}
	return fmt.Sprintf("(%d due)", due)
}

func (s *HomeScreen) Init() tea.Cmd {
	return nil
}

func (s *HomeScreen) Title() string {
	return "Home"
}

func (s *HomeScreen) KeyHints() []layout.KeyHint {
	if s.switchingCourse {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Switch"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if s.switchingCourse {
		if kmsg, ok := msg.(tea.KeyMsg); ok {
			switch kmsg.String() {
			case "enter":
				course := strings.TrimSpace(s.courseInput.Value())
				if course != "" {
					s.courseID = course
					if s.manager != nil {
						s.stats, _ = s.manager.CourseStats(context.Background(), s.userID, s.courseID)
					}
					s.menu = components.NewMenu(s.menuItems())
				}
				s.switchingCourse = false
				return s, nil
			case "esc":
				s.switchingCourse = false
				return s, nil
			}
		}
		var cmd tea.Cmd
		s.courseInput, cmd = s.courseInput.Update(msg)
		return s, cmd
	}

	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *HomeScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString("\n\n")
	b.WriteString(theme.Title.Width(width).Render("revq"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render("spaced review for " + s.courseID))
	b.WriteString("\n\n")

	if s.stats != nil && s.stats.ChunkCount > 0 {
		line := fmt.Sprintf("%d chunks   avg mastery %.0f   %d follow-ups due   %d archived due",
			s.stats.ChunkCount, s.stats.AvgMastery, s.stats.DueFollowups, s.stats.DueArchived)
		b.WriteString(theme.Subtitle.Width(width).Render(line))
		b.WriteString("\n\n")
	}

	if s.switchingCourse {
		prompt := lipgloss.NewStyle().Foreground(theme.Text).Render("Course: ") + s.courseInput.View()
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, prompt))
		b.WriteString("\n")
	} else {
		menu := s.menu.View()
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, menu))
	}

	return b.String()
}
