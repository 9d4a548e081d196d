package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette — calm, readable on dark terminals
var (
	Primary = lipgloss.Color("#38BDF8") // Sky Blue
	Accent  = lipgloss.Color("#FBBF24") // Amber
	Success = lipgloss.Color("#22C55E") // Green
	Danger  = lipgloss.Color("#F43F5E") // Rose
	Text    = lipgloss.Color("#F8FAFC") // White
	TextDim = lipgloss.Color("#94A3B8") // Slate
)

// Typography
var (
	Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Prompt = lipgloss.NewStyle().
		Foreground(Accent)
)

// States
var (
	Result = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Warning = lipgloss.NewStyle().
		Foreground(Accent)

	Error = lipgloss.NewStyle().
		Foreground(Danger).
		Bold(true)
)
