package ui

import "strings"

// refreshVisible recomputes the card list from the browser's query, using the
// fuzzy ranking when that mode is on.
func (m *Model) refreshVisible() {
	q := m.browser.Query()
	if m.search.fuzzy && strings.TrimSpace(q) != "" {
		m.visible = m.browser.FilterFuzzy(q, m.filterCfg)
	} else {
		m.visible = m.browser.Visible()
	}
	m.clampCursor()
}
