package main

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/sevigo/wizpro/internal/editor"
	"github.com/sevigo/wizpro/internal/render"
)

type styles struct {
	app       lipgloss.Style
	code      lipgloss.Style
	pane      lipgloss.Style
	paneTitle lipgloss.Style
	footer    lipgloss.Style
	inactive  lipgloss.Style
	error     lipgloss.Style
	warning   lipgloss.Style
	success   lipgloss.Style
	prompt    lipgloss.Style
	command   lipgloss.Style
	spinner   lipgloss.Style

	// markdown is the glamour style for reviews.
	markdown string
}

type ThemePalette struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
	Inactive  lipgloss.Color
}

var palettes = map[editor.Theme]ThemePalette{
	editor.ThemeDark: {
		Primary:   lipgloss.Color("51"),
		Secondary: lipgloss.Color("33"),
		Success:   lipgloss.Color("46"),
		Warning:   lipgloss.Color("226"),
		Error:     lipgloss.Color("196"),
		Inactive:  lipgloss.Color("240"),
	},
	editor.ThemeLight: {
		Primary:   lipgloss.Color("25"),  // blue
		Secondary: lipgloss.Color("91"),  // purple
		Success:   lipgloss.Color("28"),  // green
		Warning:   lipgloss.Color("166"), // orange
		Error:     lipgloss.Color("160"),
		Inactive:  lipgloss.Color("245"),
	},
}

func GetTheme(theme editor.Theme) styles {
	if theme == editor.ThemeDark {
		s := newStylesFromPalette(palettes[editor.ThemeDark])
		s.markdown = render.StyleDark
		return s
	}
	s := newStylesFromPalette(palettes[editor.ThemeLight])
	s.markdown = render.StyleLight
	return s
}

func newStylesFromPalette(p ThemePalette) styles {
	return styles{
		app: lipgloss.NewStyle().Margin(0, 1),
		code: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Secondary),
		pane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Primary).
			PaddingLeft(1),
		paneTitle: lipgloss.NewStyle().Foreground(p.Primary).Bold(true),
		footer: lipgloss.NewStyle().
			BorderTop(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(p.Primary),
		inactive: lipgloss.NewStyle().Foreground(p.Inactive),
		error:    lipgloss.NewStyle().Foreground(p.Error).Bold(true),
		warning:  lipgloss.NewStyle().Foreground(p.Warning).Bold(true),
		success:  lipgloss.NewStyle().Foreground(p.Success).Bold(true),
		prompt:   lipgloss.NewStyle().Foreground(p.Warning).Bold(true),
		command:  lipgloss.NewStyle().Foreground(p.Secondary).Italic(true),
		spinner:  lipgloss.NewStyle().Foreground(p.Primary),
	}
}
