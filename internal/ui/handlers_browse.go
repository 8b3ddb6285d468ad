package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"auto-order-dashboard/internal/core/browser"
)

type exportKind int

const (
	exportJSON exportKind = iota
	exportCSV
	exportXLSX
)

func (m Model) handleBrowseKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "t":
		if m.theme == themeDark {
			m.theme = themeLight
		} else {
			m.theme = themeDark
		}
		m.styles = stylesFor(m.theme)
		m.setStatus("Theme: " + m.theme.String())
		m.updateBrowseViewport()
		return m, nil
	case "b":
		m.showSidebar = !m.showSidebar
		m.updateBrowseViewport()
		return m, nil
	case "f", "/":
		m.search.searching = true
		m.search.searchInput.SetValue(m.browser.Query())
		m.search.searchInput.CursorEnd()
		m.search.searchInput.Focus()
		return m, textinput.Blink
	case "F":
		m.browser.SetQuery("")
		m.search.searchInput.SetValue("")
		m.refreshVisible()
		m.updateBrowseViewport()
		return m, nil
	case "z":
		m.search.fuzzy = !m.search.fuzzy
		if m.search.fuzzy {
			m.setStatus("Fuzzy search on")
		} else {
			m.setStatus("Fuzzy search off")
		}
		m.refreshVisible()
		m.updateBrowseViewport()
		return m, nil
	case "j", "down":
		m.moveCursor(1)
		return m, nil
	case "k", "up":
		m.moveCursor(-1)
		return m, nil
	case "g", "home":
		m.moveCursor(-len(m.visible))
		return m, nil
	case "G", "end":
		m.moveCursor(len(m.visible))
		return m, nil
	case "enter", " ":
		if len(m.visible) == 0 {
			return m, nil
		}
		o := m.visible[m.selection.listIndex]
		if m.browser.Select(o.File) {
			m.setStatus(fmt.Sprintf("Selected %s (%d item(s))", m.browser.DisplayName(o.File), len(o.Items)))
		}
		m.updateBrowseViewport()
		return m, nil
	case "esc":
		m.browser.ClearSelection()
		m.updateBrowseViewport()
		return m, nil
	case "e":
		return m.exportSelected(exportJSON)
	case "c":
		return m.exportSelected(exportCSV)
	case "x":
		return m.exportSelected(exportXLSX)
	case "y":
		e, ok := m.browser.ExportTabular()
		if !ok {
			m.setStatus("Select an order first.")
			return m, nil
		}
		return m, clipboardCmd(e)
	case "r":
		m.state = stateLoading
		m.setStatus("Reloading orders…")
		return m, tea.Batch(m.spinner.Tick, loadOrdersCmd(m.source))
	}
	return m, nil
}

func (m Model) exportSelected(kind exportKind) (Model, tea.Cmd) {
	var (
		e   browser.Export
		ok  bool
		err error
	)
	switch kind {
	case exportJSON:
		e, ok = m.browser.ExportStructured()
	case exportCSV:
		e, ok = m.browser.ExportTabular()
	case exportXLSX:
		e, ok, err = m.browser.ExportSpreadsheet()
	}
	if err != nil {
		m.setStatus("Export failed: " + err.Error())
		return m, nil
	}
	if !ok {
		m.setStatus("Select an order first.")
		return m, nil
	}
	m.setStatus("Exporting " + e.Filename + "…")
	return m, saveExportCmd(m.writer, e)
}
