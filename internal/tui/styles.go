package tui

import "github.com/charmbracelet/lipgloss"

// styles contains all lipgloss styles used by the TUI.
var styles = struct {
	// Layout styles
	Container lipgloss.Style
	Divider   lipgloss.Style

	// Header styles
	Title   lipgloss.Style
	Spinner lipgloss.Style

	// Status panel styles
	Label   lipgloss.Style
	Thought lipgloss.Style
	Action  lipgloss.Style
	Time    lipgloss.Style

	// Counter styles
	CounterValue lipgloss.Style
	CounterLabel lipgloss.Style

	// List styles
	Heading     lipgloss.Style
	Entry       lipgloss.Style
	Placeholder lipgloss.Style

	// Tab styles
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style

	// Footer styles
	Footer lipgloss.Style
	Stale  lipgloss.Style
}{
	// Layout styles
	Container: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")),

	Divider: lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")),

	// Header styles
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("203")),

	Spinner: lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")),

	// Status panel styles
	Label: lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")),

	Thought: lipgloss.NewStyle().
		Italic(true).
		Foreground(lipgloss.Color("252")),

	Action: lipgloss.NewStyle().
		Foreground(lipgloss.Color("39")),

	Time: lipgloss.NewStyle().
		Foreground(lipgloss.Color("220")),

	// Counter styles
	CounterValue: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("82")),

	CounterLabel: lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")),

	// List styles
	Heading: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("212")),

	Entry: lipgloss.NewStyle().
		Foreground(lipgloss.Color("250")),

	Placeholder: lipgloss.NewStyle().
		Italic(true).
		Foreground(lipgloss.Color("243")),

	// Tab styles
	TabActive: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("230")).
		Background(lipgloss.Color("63")).
		Padding(0, 1),

	TabInactive: lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Padding(0, 1),

	// Footer styles
	Footer: lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")),

	Stale: lipgloss.NewStyle().
		Foreground(lipgloss.Color("214")),
}
