package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.state == stateQuit {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.styles.title.Render("Auto-Order Dashboard"))
	b.WriteString("\n")
	b.WriteString(dividerStyle.Render(strings.Repeat("─", max(10, m.totalWidth()-2))))
	b.WriteString("\n")

	switch m.state {
	case stateLoading:
		b.WriteString("\n" + m.spinner.View() + " Loading orders…\n\n")
		b.WriteString(renderFooter(subtleStyle.Render(m.statusMsg), "q quit"))

	case stateBrowse:
		b.WriteString(m.renderBrowseHeader() + "\n\n")
		cols := make([]string, 0, 3)
		if side := m.renderSidebar(); side != "" {
			cols = append(cols, side)
		}
		cols = append(cols, m.viewport.View())
		if detail := m.renderDetail(); detail != "" {
			cols = append(cols, detail)
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cols...))
		b.WriteString("\n\n")
		b.WriteString(renderFooter(m.statusLine(),
			"j/k move  |  enter select  |  esc deselect  |  f search  |  F clear  |  z fuzzy",
			"e JSON  |  c CSV  |  x XLSX  |  y copy CSV  |  r reload  |  t theme  |  b sidebar  |  q quit"))
	}
	return b.String()
}

func (m Model) statusLine() string {
	st := subtleStyle
	if m.statusOK {
		st = okStyle
	}
	line := st.Render(m.statusMsg)
	if m.metrics != nil {
		line += subtleStyle.Render("  ·  " + m.metrics.Snapshot().String())
	}
	return line
}
