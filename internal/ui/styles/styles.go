// Package styles provides shared lipgloss styles for UI components.
//
// This package centralizes color definitions and styling to ensure
// visual consistency across all UI components (static, progress,
// prompt, and wizard packages) and the interactive menu.
package styles

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Palette colors used throughout the UI. Init replaces them with the
// configured theme.
var (
	// Primary is the main accent color (ignix orange)
	Primary color.Color = lipgloss.Color("#FF6B35")

	// Accent is the highlight color for selected/active items (pink)
	Accent color.Color = lipgloss.Color("212")

	// Success is used for checkmarks and positive outcomes (green)
	Success color.Color = lipgloss.Color("82")

	// Error is used for error messages (red)
	Error color.Color = lipgloss.Color("196")

	// Muted is used for disabled/inactive text (gray)
	Muted color.Color = lipgloss.Color("240")

	// Normal is the standard text color (light gray)
	Normal color.Color = lipgloss.Color("252")

	// Info is used for informational text (gray)
	Info color.Color = lipgloss.Color("244")

	// Warning is used for warnings (orange)
	Warning color.Color = lipgloss.Color("214")
)

// Common styles
var (
	// Bold applies bold formatting
	Bold = lipgloss.NewStyle().Bold(true)

	// Italic applies italic formatting
	Italic = lipgloss.NewStyle().Italic(true)

	PrimaryStyle = lipgloss.NewStyle().Foreground(Primary)

	AccentStyle = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().Foreground(Success)

	ErrorStyle = lipgloss.NewStyle().Foreground(Error)

	MutedStyle = lipgloss.NewStyle().Foreground(Muted)

	NormalStyle = lipgloss.NewStyle().Foreground(Normal)

	InfoStyle = lipgloss.NewStyle().
			Foreground(Info).
			Italic(true)

	WarningStyle = lipgloss.NewStyle().Foreground(Warning)

	// BannerStyle renders the ignix wordmark
	BannerStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)
)

// Border styles
var (
	// RoundedBorder creates a rounded border with primary color
	RoundedBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2)
)

// HighlightStyle marks matched characters in fuzzy-filtered lists
var HighlightStyle = lipgloss.NewStyle().
	Foreground(Accent).
	Bold(true).
	Underline(true)
