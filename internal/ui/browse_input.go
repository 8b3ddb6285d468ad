package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// handleSearchInput handles search input mode
func (m Model) handleSearchInput(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		// empty input closes the search, otherwise only clears it
		if m.search.searchInput.Value() == "" {
			m.search.searching = false
			m.search.searchInput.Blur()
		} else {
			m.search.searchInput.SetValue("")
			m.browser.SetQuery("")
			m.refreshVisible()
		}
		m.updateBrowseViewport()
		return m, nil
	case "enter":
		m.search.searching = false
		m.search.searchInput.Blur()
		m.updateBrowseViewport()
		return m, nil
	case "ctrl+c":
		m.Close()
		m.state = stateQuit
		return m, tea.Quit
	default:
		var cmd tea.Cmd
		m.search.searchInput, cmd = m.search.searchInput.Update(msg)
		// live filtering while typing
		if q := m.search.searchInput.Value(); q != m.browser.Query() {
			m.browser.SetQuery(q)
			m.refreshVisible()
			m.updateBrowseViewport()
		}
		return m, cmd
	}
}
