package ui

func (m *Model) clampCursor() {
	if m.selection.listIndex >= len(m.visible) {
		m.selection.listIndex = len(m.visible) - 1
	}
	if m.selection.listIndex < 0 {
		m.selection.listIndex = 0
	}
}

func (m *Model) moveCursor(delta int) {
	if len(m.visible) == 0 {
		return
	}
	m.selection.listIndex += delta
	m.clampCursor()
	m.updateBrowseViewport()
}
