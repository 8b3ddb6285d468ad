package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type theme int

const (
	themeDark theme = iota
	themeLight
)

func (t theme) String() string {
	if t == themeLight {
		return "light"
	}
	return "dark"
}

// chartPalette colours the aggregated-quantity bars, cycling per product.
var chartPalette = []lipgloss.Color{"#8884d8", "#82ca9d", "#ffc658", "#ff7f50", "#a29bfe", "#00cec9"}

// --- UI Styles ---
var (
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	okStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#10B981"))
	warnStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F59E0B"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#EF4444"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)
	dividerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	focusStyle   = lipgloss.NewStyle().Bold(true)
)

// styles holds everything that changes with the light/dark toggle.
type styles struct {
	title      lipgloss.Style
	card       lipgloss.Style
	cardActive lipgloss.Style
	cursorBar  lipgloss.Style
	activeBar  lipgloss.Style
	highlight  lipgloss.Style
	sidebar    lipgloss.Style
	detail     lipgloss.Style
	heading    lipgloss.Style
}

func stylesFor(t theme) styles {
	accent := lipgloss.Color("#8884d8")
	fg := lipgloss.Color("252")
	border := lipgloss.Color("240")
	mark := lipgloss.Color("#ffc658")
	cursor := lipgloss.Color("#FFAB78")
	if t == themeLight {
		accent = lipgloss.Color("#5b4fc4")
		fg = lipgloss.Color("235")
		border = lipgloss.Color("250")
		mark = lipgloss.Color("#f7d774")
		cursor = lipgloss.Color("#ff7f50")
	}
	return styles{
		title:      lipgloss.NewStyle().Bold(true).Foreground(accent),
		card:       lipgloss.NewStyle().Foreground(fg).Border(lipgloss.RoundedBorder()).BorderForeground(border).Padding(0, 1),
		cardActive: lipgloss.NewStyle().Foreground(fg).Border(lipgloss.ThickBorder()).BorderForeground(accent).Padding(0, 1),
		cursorBar:  lipgloss.NewStyle().Background(cursor),
		activeBar:  lipgloss.NewStyle().Background(accent),
		highlight:  lipgloss.NewStyle().Background(mark).Foreground(lipgloss.Color("0")),
		sidebar:    lipgloss.NewStyle().Foreground(fg).Border(lipgloss.NormalBorder(), false, true, false, false).BorderForeground(border).Padding(0, 1),
		detail:     lipgloss.NewStyle().Foreground(fg).Padding(0, 1),
		heading:    lipgloss.NewStyle().Bold(true).Foreground(accent),
	}
}

func barStyle(i int) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(chartPalette[i%len(chartPalette)])
}

// renderFooter creates a consistent footer across all views
// statusLine: optional status information, already styled by the caller
// helpLines: help text lines (shown in helpStyle)
func renderFooter(statusLine string, helpLines ...string) string {
	var b strings.Builder

	if statusLine != "" {
		b.WriteString(statusLine + "\n")
	}

	for _, line := range helpLines {
		b.WriteString(helpStyle.Render(line) + "\n")
	}

	return strings.TrimSuffix(b.String(), "\n")
}
