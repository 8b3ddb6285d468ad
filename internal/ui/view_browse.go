package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"auto-order-dashboard/internal/core/browser"
)

const (
	sidebarCols   = 26
	minListWidth  = 24
	minDetailWide = 34
	previewItems  = 3
)

func (m Model) totalWidth() int {
	if m.width <= 0 {
		return 80
	}
	return m.width
}

func (m Model) sidebarWidth() int {
	if !m.showSidebar {
		return 0
	}
	return sidebarCols
}

func (m Model) detailWidth() int {
	if _, ok := m.browser.Selected(); !ok {
		return 0
	}
	w := (m.totalWidth() - m.sidebarWidth()) / 2
	if w < minDetailWide {
		w = minDetailWide
	}
	return w
}

func (m Model) listWidth() int {
	w := m.totalWidth() - m.sidebarWidth() - m.detailWidth()
	if w < minListWidth {
		w = minListWidth
	}
	return w
}

// updateBrowseViewport re-renders the card list and keeps the cursor card in view.
func (m *Model) updateBrowseViewport() {
	m.resizeViewport()
	content, offsets := m.renderBrowseContent()
	m.viewport.SetContent(content)
	if m.selection.listIndex < len(offsets) {
		m.ensureCursorInViewport(offsets[m.selection.listIndex])
	}
}

// ensureCursorInViewport adjusts the viewport Y offset so that the given
// absolute line is within the visible window with a scroll margin.
func (m *Model) ensureCursorInViewport(cursorLine int) {
	top := m.viewport.YOffset
	bottom := top + m.viewport.Height - 1

	margin := 3
	if m.viewport.Height < 8 {
		margin = 1
	}

	switch {
	case cursorLine < top+margin:
		m.viewport.SetYOffset(max(0, cursorLine-margin))
	case cursorLine > bottom-margin:
		m.viewport.SetYOffset(max(0, cursorLine-m.viewport.Height+margin+1))
	}
}

func (m Model) renderBrowseHeader() string {
	var b strings.Builder
	b.WriteString("Search: ")
	if m.search.searching {
		b.WriteString(m.search.searchInput.View())
	} else if q := m.browser.Query(); q != "" {
		b.WriteString(focusStyle.Render(q))
	} else {
		b.WriteString(subtleStyle.Render("(none)"))
	}
	b.WriteString(subtleStyle.Render(fmt.Sprintf("  |  %d of %d order(s)", len(m.visible), m.browser.Len())))
	if m.search.fuzzy {
		b.WriteString(subtleStyle.Render("  |  fuzzy"))
	}
	return b.String()
}

// renderBrowseContent renders every visible card and returns the first line of
// each card within the content.
func (m Model) renderBrowseContent() (string, []int) {
	if m.browser.Len() == 0 {
		if m.loadErr != nil {
			return errorStyle.Render("No orders loaded.") + "\n" + subtleStyle.Render("Press r to retry."), nil
		}
		return warnStyle.Render("No orders yet."), nil
	}
	if len(m.visible) == 0 {
		return warnStyle.Render("No orders match the search."), nil
	}

	var blocks []string
	offsets := make([]int, 0, len(m.visible))
	line := 0
	for i, o := range m.visible {
		card := m.renderCard(o, i == m.selection.listIndex)
		offsets = append(offsets, line)
		line += lipgloss.Height(card)
		blocks = append(blocks, card)
	}
	return strings.Join(blocks, "\n"), offsets
}

func (m Model) renderCard(o browser.Order, cursor bool) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(m.browser.DisplayName(o.File)))
	q := m.browser.Query()
	for _, it := range browser.Preview(o, previewItems) {
		b.WriteString("\n• " + m.renderHighlighted(it.Product, q))
	}
	b.WriteString("\n" + subtleStyle.Render(fmt.Sprintf("%d item(s)", len(o.Items))))

	st := m.styles.card
	if m.browser.IsSelected(o.File) {
		st = m.styles.cardActive
	}
	// border and cursor cell take 3 columns
	card := st.Width(max(10, m.listWidth()-3)).Render(b.String())

	cell := " "
	switch {
	case cursor:
		cell = m.styles.cursorBar.Render(" ")
	case m.browser.IsSelected(o.File):
		cell = m.styles.activeBar.Render(" ")
	}
	lines := strings.Split(card, "\n")
	for i := range lines {
		lines[i] = cell + lines[i]
	}
	return strings.Join(lines, "\n")
}

// renderHighlighted marks every case-insensitive occurrence of query in text.
func (m Model) renderHighlighted(text, query string) string {
	var b strings.Builder
	for _, sp := range browser.Highlight(text, query) {
		if sp.Match {
			b.WriteString(m.styles.highlight.Render(sp.Text))
		} else {
			b.WriteString(sp.Text)
		}
	}
	return b.String()
}
