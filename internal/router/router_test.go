package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/revq/internal/screen"
)

type fakeScreen struct {
	name  string
	inits int
	msgs  []tea.Msg
}

func (f *fakeScreen) Init() tea.Cmd {
	f.inits++
	return nil
}

func (f *fakeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	f.msgs = append(f.msgs, msg)
	return f, nil
}

func (f *fakeScreen) View(int, int) string { return f.name }
func (f *fakeScreen) Title() string        { return f.name }

func TestNavigation(t *testing.T) {
	tests := []struct {
		name       string
		steps      func(r *Router, next *fakeScreen)
		wantDepth  int
		wantActive string
	}{
		{
			name:       "push grows the stack",
			steps:      func(r *Router, next *fakeScreen) { r.Push(next) },
			wantDepth:  2,
			wantActive: "next",
		},
		{
			name: "pop returns to the previous screen",
			steps: func(r *Router, next *fakeScreen) {
				r.Push(next)
				r.Pop()
			},
			wantDepth:  1,
			wantActive: "root",
		},
		{
			name:       "pop on the root screen is a no-op",
			steps:      func(r *Router, _ *fakeScreen) { r.Pop() },
			wantDepth:  1,
			wantActive: "root",
		},
		{
			name:       "replace swaps without growing",
			steps:      func(r *Router, next *fakeScreen) { r.Replace(next) },
			wantDepth:  1,
			wantActive: "next",
		},
		{
			name: "replace above the root keeps depth",
			steps: func(r *Router, next *fakeScreen) {
				r.Push(&fakeScreen{name: "middle"})
				r.Replace(next)
			},
			wantDepth:  2,
			wantActive: "next",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(&fakeScreen{name: "root"})
			tt.steps(r, &fakeScreen{name: "next"})

			if r.Depth() != tt.wantDepth {
				t.Errorf("Depth() = %d, want %d", r.Depth(), tt.wantDepth)
			}
			if got := r.Active().Title(); got != tt.wantActive {
				t.Errorf("Active().Title() = %q, want %q", got, tt.wantActive)
			}
		})
	}
}

func TestNavigationMessages(t *testing.T) {
	r := New(&fakeScreen{name: "root"})

	next := &fakeScreen{name: "next"}
	r.Update(PushScreenMsg{Screen: next})
	if r.Active() != screen.Screen(next) {
		t.Fatalf("Active() = %v, want pushed screen", r.Active().Title())
	}
	if next.inits != 1 {
		t.Errorf("pushed screen inits = %d, want 1", next.inits)
	}

	r.Update(PopScreenMsg{})
	if got := r.Active().Title(); got != "root" {
		t.Errorf("Active().Title() after pop = %q, want root", got)
	}

	swap := &fakeScreen{name: "swap"}
	r.Update(ReplaceScreenMsg{Screen: swap})
	if got := r.Active().Title(); got != "swap" {
		t.Errorf("Active().Title() after replace = %q, want swap", got)
	}
	if swap.inits != 1 {
		t.Errorf("replacement screen inits = %d, want 1", swap.inits)
	}
}

func TestUpdateForwardsToActiveScreen(t *testing.T) {
	root := &fakeScreen{name: "root"}
	top := &fakeScreen{name: "top"}
	r := New(root)
	r.Push(top)

	r.Update(tea.KeyPressMsg{Code: 'x'})

	if len(top.msgs) != 1 {
		t.Fatalf("active screen got %d messages, want 1", len(top.msgs))
	}
	if len(root.msgs) != 0 {
		t.Errorf("covered screen got %d messages, want 0", len(root.msgs))
	}
}
