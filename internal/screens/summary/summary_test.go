package summary

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/revq/internal/router"
)

func sample() *Data {
	return &Data{
		Session:  3,
		Queued:   20,
		Answered: 18,
		Correct:  12,
		Missed:   6,
		Duration: 95 * time.Second,
	}
}

func TestAccuracy(t *testing.T) {
	d := sample()
	if got := d.Accuracy(); got < 0.66 || got > 0.67 {
		t.Errorf("Accuracy() = %v, want ~0.667", got)
	}

	empty := &Data{}
	if got := empty.Accuracy(); got != 0 {
		t.Errorf("Accuracy() on empty session = %v, want 0", got)
	}
}

func TestViewContents(t *testing.T) {
	s := New(sample())
	view := s.View(80, 24)

	for _, want := range []string{"Session 3 complete!", "1:35", "18/20", "67%", "6 missed"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestEnterPopsToHome(t *testing.T) {
	s := New(sample())

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}
