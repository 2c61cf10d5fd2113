package review

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/revq/internal/ui/theme"
)

func (s *ReviewScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, s.errMsg)
	}

	switch s.phase {
	case phaseLoading:
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n  Building review queue...")
	case phaseQuitConfirm:
		return renderQuitConfirm(width)
	case phaseFeedback:
		return s.renderFeedback(width)
	default:
		return s.renderQuestion(width)
	}
}

func (s *ReviewScreen) renderQuestion(width int) string {
	item := s.items[s.current]

	var b strings.Builder

	overLimit := s.elapsedMs > s.limitMs
	timerStyle := lipgloss.NewStyle().Foreground(theme.Accent)
	if overLimit {
		timerStyle = lipgloss.NewStyle().Foreground(theme.Error)
	}
	timerStr := timerStyle.Render(fmt.Sprintf("%ds", s.elapsedMs/1000))

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render("  " + item.Reason)

	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Q %d/%d  %s %d  %s",
			s.current+1,
			len(s.items),
			lipgloss.NewStyle().Foreground(theme.Success).Render("✓"),
			s.correct,
			timerStr,
		))

	infoLine := infoLeft
	rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}

	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	choice := s.choice.View()
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, choice))

	if overLimit {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Italic(true).
			Render("past the time target, a correct answer now counts as slow"))
	}

	return b.String()
}

func (s *ReviewScreen) renderFeedback(width int) string {
	var b strings.Builder

	b.WriteString("\n\n")
	if s.lastVerdict.IsCorrect {
		b.WriteString(theme.Correct.Width(width).Align(lipgloss.Center).Render("Correct!"))
	} else {
		b.WriteString(theme.Incorrect.Width(width).Align(lipgloss.Center).Render("Not quite."))
	}
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.choice.View()))
	b.WriteString("\n")

	v := s.lastVerdict
	detail := fmt.Sprintf("score %+d > %d   shelf: %s", v.ScoreDelta, v.NewScore, v.NewStatus)
	if v.NextReviewSession != nil {
		detail += fmt.Sprintf("   next review: session %d", *v.NextReviewSession)
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(detail))

	return b.String()
}

func renderQuitConfirm(width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render("\n\n\nEnd this session?\n\n(y/n)")
}

func renderError(width int, msg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render("\n\nSomething went wrong:\n\n" + msg + "\n\nPress any key to go back.")
}
