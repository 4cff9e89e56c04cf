package viz

import "github.com/charmbracelet/lipgloss"

// Theme is the color scheme of the live view.
type Theme struct {
	Name   string
	Accent lipgloss.Color
	Text   lipgloss.Color
	Muted  lipgloss.Color
	Good   lipgloss.Color
	Warn   lipgloss.Color
}

var Themes = []Theme{
	{
		Name:   "plasma",
		Accent: lipgloss.Color("86"),
		Text:   lipgloss.Color("252"),
		Muted:  lipgloss.Color("240"),
		Good:   lipgloss.Color("82"),
		Warn:   lipgloss.Color("220"),
	},
	{
		Name:   "ember",
		Accent: lipgloss.Color("209"),
		Text:   lipgloss.Color("255"),
		Muted:  lipgloss.Color("238"),
		Good:   lipgloss.Color("214"),
		Warn:   lipgloss.Color("203"),
	},
	{
		Name:   "mono",
		Accent: lipgloss.Color("255"),
		Text:   lipgloss.Color("250"),
		Muted:  lipgloss.Color("242"),
		Good:   lipgloss.Color("255"),
		Warn:   lipgloss.Color("245"),
	},
}

type styleSet struct {
	header  lipgloss.Style
	canvas  lipgloss.Style
	stats   lipgloss.Style
	label   lipgloss.Style
	value   lipgloss.Style
	running lipgloss.Style
	paused  lipgloss.Style
	graph   lipgloss.Style
	help    lipgloss.Style
}

func stylesFor(t Theme) styleSet {
	return styleSet{
		header: lipgloss.NewStyle().Foreground(t.Accent).Bold(true).MarginBottom(1),
		canvas: lipgloss.NewStyle().Padding(1, 2),
		stats: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Muted).Padding(1, 2).Width(44),
		label:   lipgloss.NewStyle().Foreground(t.Muted).Width(12),
		value:   lipgloss.NewStyle().Foreground(t.Text),
		running: lipgloss.NewStyle().Foreground(t.Good).Bold(true),
		paused:  lipgloss.NewStyle().Foreground(t.Warn).Bold(true),
		graph:   lipgloss.NewStyle().Foreground(t.Accent).Padding(1, 0),
		help:    lipgloss.NewStyle().Foreground(t.Muted).MarginTop(1),
	}
}
