package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func key(s string) tea.KeyPressMsg {
	r := []rune(s)
	if len(r) == 1 {
		return tea.KeyPressMsg{Code: r[0], Text: s}
	}
	switch s {
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	}
	return tea.KeyPressMsg{}
}

func TestMenuSkipsDisabledItems(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "start"},
		{Label: "locked", Disabled: true},
		{Label: "quit"},
	})

	if m.Cursor != 0 {
		t.Fatalf("initial Cursor = %d, want 0", m.Cursor)
	}

	m, _ = m.Update(key("down"))
	if m.Cursor != 2 {
		t.Errorf("Cursor after down = %d, want 2 (skipping disabled)", m.Cursor)
	}

	m, _ = m.Update(key("up"))
	if m.Cursor != 0 {
		t.Errorf("Cursor after up = %d, want 0 (skipping disabled)", m.Cursor)
	}
}

func TestMenuStartsOnFirstEnabledItem(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "locked", Disabled: true},
		{Label: "start"},
	})
	if m.Cursor != 1 {
		t.Errorf("initial Cursor = %d, want 1", m.Cursor)
	}
}

func TestMenuEnterRunsAction(t *testing.T) {
	ran := false
	m := NewMenu([]MenuItem{
		{Label: "start", Action: func() tea.Cmd {
			ran = true
			return nil
		}},
	})

	m, _ = m.Update(key("enter"))
	_ = m
	if !ran {
		t.Error("enter did not run the selected action")
	}
}

func TestMenuViewShowsHint(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "START REVIEW", Hint: "(3 due)"}})
	if got := m.View(); !strings.Contains(got, "(3 due)") {
		t.Errorf("View() missing hint, got %q", got)
	}
}

func TestMasteryBarClampsScore(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{-5, "0%"},
		{62, "62%"},
		{140, "100%"},
	}
	for _, tt := range tests {
		b := NewMasteryBar("Avg mastery", tt.score, 40)
		if got := b.View(); !strings.Contains(got, tt.want) {
			t.Errorf("View() for score %.0f missing %q, got %q", tt.score, tt.want, got)
		}
	}
}
