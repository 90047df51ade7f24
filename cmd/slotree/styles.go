package main

import "github.com/charmbracelet/lipgloss"

// Color palette shared by all output.
const (
	ColorPrimary   = lipgloss.Color("#7C3AED")
	ColorMuted     = lipgloss.Color("#6B7280")
	ColorSuccess   = lipgloss.Color("#10B981")
	ColorError     = lipgloss.Color("#EF4444")
	ColorWarning   = lipgloss.Color("#F59E0B")
	ColorHighlight = lipgloss.Color("#3B82F6")
)

var (
	// TitleStyle is for headers and the root node.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// SubtitleStyle is for hashes and de-emphasized text.
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// NodeStyle is for non-root nodes.
	NodeStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight)

	// KeyStyle is for attribute and config keys.
	KeyStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// ErrorStyle is for errors reported inside the REPL.
	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorError)

	// WarningStyle is for refused operations.
	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)
)
