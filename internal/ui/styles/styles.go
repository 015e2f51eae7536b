// Package styles provides shared lipgloss styles for UI components.
//
// This package centralizes color definitions and styling to ensure
// visual consistency across the static and prompt packages.
package styles

import "charm.land/lipgloss/v2"

// Primary colors used throughout the UI
var (
	// Primary is the main accent color (cyan/teal)
	Primary = lipgloss.Color("62")

	// Accent is the highlight color for selected/active items (pink)
	Accent = lipgloss.Color("212")

	// Success is used for positive outcomes (green)
	Success = lipgloss.Color("82")

	// Error is used for error messages (red)
	Error = lipgloss.Color("196")

	// Muted is used for secondary text (gray)
	Muted = lipgloss.Color("240")

	// Warn is used for warnings (yellow)
	Warn = lipgloss.Color("214")
)

// Common styles
var (
	// Bold applies bold formatting
	Bold = lipgloss.NewStyle().Bold(true)

	// AccentStyle applies the accent color with bold
	AccentStyle = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	// SuccessStyle applies the success color
	SuccessStyle = lipgloss.NewStyle().Foreground(Success)

	// ErrorStyle applies the error color
	ErrorStyle = lipgloss.NewStyle().Foreground(Error)

	// MutedStyle applies the muted color
	MutedStyle = lipgloss.NewStyle().Foreground(Muted)

	// WarnStyle applies the warning color
	WarnStyle = lipgloss.NewStyle().Foreground(Warn)

	// HighlightStyle for highlighting fuzzy-matched characters
	HighlightStyle = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true).
			Underline(true)
)
