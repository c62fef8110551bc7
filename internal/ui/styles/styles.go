// Package styles provides shared lipgloss styles for UI components.
//
// Colors come from the active Theme; call Init once after the config is
// loaded so the picker, confirm prompt and tables agree on a palette.
package styles

import "charm.land/lipgloss/v2"

// Active colors, replaced by Init.
var (
	Primary = DefaultTheme.Primary
	Accent  = DefaultTheme.Accent
	Success = DefaultTheme.Success
	Error   = DefaultTheme.Error
	Muted   = DefaultTheme.Muted
	Normal  = DefaultTheme.Normal
	Info    = DefaultTheme.Info
	Warning = DefaultTheme.Warning
)

// Common styles
var (
	Bold = lipgloss.NewStyle().Bold(true)

	PrimaryStyle = lipgloss.NewStyle().Foreground(Primary)

	// AccentStyle marks the selected row and matched characters.
	AccentStyle = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().Foreground(Success)
	ErrorStyle   = lipgloss.NewStyle().Foreground(Error)
	MutedStyle   = lipgloss.NewStyle().Foreground(Muted)
	NormalStyle  = lipgloss.NewStyle().Foreground(Normal)
	WarningStyle = lipgloss.NewStyle().Foreground(Warning)

	InfoStyle = lipgloss.NewStyle().
			Foreground(Info).
			Italic(true)

	// HighlightStyle underlines the characters a fuzzy match hit.
	HighlightStyle = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true).
			Underline(true)
)
