package ui

import "github.com/charmbracelet/lipgloss"

type palette struct {
	accent  lipgloss.Color
	text    lipgloss.Color
	muted   lipgloss.Color
	star    lipgloss.Color
	danger  lipgloss.Color
	success lipgloss.Color
	tabBg   lipgloss.Color
}

var (
	lightPalette = palette{
		accent:  lipgloss.Color("#2563EB"),
		text:    lipgloss.Color("#1F2937"),
		muted:   lipgloss.Color("#6B7280"),
		star:    lipgloss.Color("#EAB308"),
		danger:  lipgloss.Color("#DC2626"),
		success: lipgloss.Color("#16A34A"),
		tabBg:   lipgloss.Color("#E5E7EB"),
	}
	darkPalette = palette{
		accent:  lipgloss.Color("#60A5FA"),
		text:    lipgloss.Color("#F9FAFB"),
		muted:   lipgloss.Color("#9CA3AF"),
		star:    lipgloss.Color("#FACC15"),
		danger:  lipgloss.Color("#F87171"),
		success: lipgloss.Color("#4ADE80"),
		tabBg:   lipgloss.Color("#4B5563"),
	}
)

type styles struct {
	title     lipgloss.Style
	tab       lipgloss.Style
	activeTab lipgloss.Style
	text      lipgloss.Style
	done      lipgloss.Style
	star      lipgloss.Style
	overdue   lipgloss.Style
	due       lipgloss.Style
	recurring lipgloss.Style
	muted     lipgloss.Style
	errorText lipgloss.Style
	box       lipgloss.Style
}

func newStyles(dark bool) styles {
	p := lightPalette
	if dark {
		p = darkPalette
	}
	return styles{
		title:     lipgloss.NewStyle().Bold(true).Foreground(p.accent),
		tab:       lipgloss.NewStyle().Padding(0, 1).Foreground(p.muted),
		activeTab: lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(p.text).Background(p.tabBg),
		text:      lipgloss.NewStyle().Foreground(p.text),
		done:      lipgloss.NewStyle().Strikethrough(true).Foreground(p.muted),
		star:      lipgloss.NewStyle().Foreground(p.star),
		overdue:   lipgloss.NewStyle().Bold(true).Foreground(p.danger),
		due:       lipgloss.NewStyle().Foreground(p.accent),
		recurring: lipgloss.NewStyle().Foreground(p.success),
		muted:     lipgloss.NewStyle().Foreground(p.muted),
		errorText: lipgloss.NewStyle().Foreground(p.danger),
		box: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(p.accent).
			Padding(0, 1),
	}
}
