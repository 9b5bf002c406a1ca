package tui

import "github.com/charmbracelet/lipgloss"

// Color Palette
// This is the single source of truth for all TUI colors.
// Use these constants throughout the TUI to ensure visual consistency.
var (
	leafGreen   = lipgloss.Color("#A8E6CF") // Soft mint green - primary accent
	blossomPink = lipgloss.Color("#FFB3BA") // Soft pastel pink - highlights
	mutedGray   = lipgloss.Color("#6B7280") // Muted gray - secondary text
	brightWhite = lipgloss.Color("#F9FAFB") // Bright white - primary text
	alertRed    = lipgloss.Color("203")     // Error states
)

// Common Styles
// These are pre-configured styles for common UI elements.
var (
	headerStyle = lipgloss.NewStyle().
			Foreground(leafGreen).
			Bold(true)

	tipsStyle = lipgloss.NewStyle().
			Foreground(mutedGray)

	sidebarStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(mutedGray).
			Padding(0, 1)

	sidebarFocusStyle = sidebarStyle.
				BorderForeground(leafGreen)

	listStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(mutedGray).
			Padding(0, 1)

	listFocusStyle = listStyle.
			BorderForeground(leafGreen)

	editorStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(mutedGray).
			Padding(0, 1)

	editorFocusStyle = editorStyle.
				BorderForeground(leafGreen)

	selectedItemStyle = lipgloss.NewStyle().
				Foreground(blossomPink).
				Bold(true)

	itemStyle = lipgloss.NewStyle().
			Foreground(brightWhite)

	tagStyle = lipgloss.NewStyle().
			Foreground(leafGreen)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(mutedGray).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(alertRed)
)
