// SPDX-License-Identifier: AGPL-3.0-or-later
package render

import "github.com/charmbracelet/lipgloss"

// Theme defines the styles used for terminal summaries.
type Theme struct {
	Name    string
	Success lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
	Bold    lipgloss.Style
	Pass    string
	Fail    string
}

// DefaultTheme returns a colored theme.
func DefaultTheme() Theme {
	return Theme{
		Name:    "default",
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("34")),  // green
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")), // red
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("242")), // gray
		Bold:    lipgloss.NewStyle().Bold(true),
		Pass:    "✓",
		Fail:    "✗",
	}
}

// MonoTheme returns a theme without colors, for pipes and tests.
func MonoTheme() Theme {
	plain := lipgloss.NewStyle()
	return Theme{
		Name:    "mono",
		Success: plain,
		Error:   plain,
		Muted:   plain,
		Bold:    plain,
		Pass:    "+",
		Fail:    "-",
	}
}
