// Package theme holds the shared color palette and text styles.
package theme

import (
	"charm.land/lipgloss/v2"
)

// Palette. Muted tones that stay readable over long review sessions.
var (
	Primary   = lipgloss.Color("#7C3AED") // Violet
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#FBBF24") // Amber
	Success   = lipgloss.Color("#4ADE80") // Green
	Error     = lipgloss.Color("#F87171") // Red
	Text      = lipgloss.Color("#E2E8F0") // Off-white
	TextDim   = lipgloss.Color("#8B9BB4") // Slate
	BgCard    = lipgloss.Color("#1C2536") // Dark slate
	Border    = lipgloss.Color("#3B4A63") // Muted slate
)

// Text styles.
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)
)

// Answer feedback.
var (
	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)
