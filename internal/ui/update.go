package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"auto-order-dashboard/internal/infra/logx"
)

// ---------- Update ----------
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		if m.search.searching {
			return m.handleSearchInput(msg)
		}

		// global shortcuts
		key := msg.String()
		if key == "ctrl+c" || key == "q" {
			m.Close()
			m.state = stateQuit
			return m, tea.Quit
		}

		switch m.state {
		case stateBrowse:
			return m.handleBrowseKey(msg)
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resizeViewport()
		m.updateBrowseViewport()

	case loadedMsg:
		m.browser.Load(msg.orders)
		m.loadErr = msg.err
		if msg.err != nil {
			m.setStatus("Fetch failed: " + msg.err.Error())
		} else {
			m.setStatus(fmt.Sprintf("Loaded %d order file(s).", m.browser.Len()))
		}
		m.state = stateBrowse
		m.refreshVisible()
		m.updateBrowseViewport()
		return m, nil

	case fileChangedMsg:
		logx.Infof("orders file changed, reloading")
		m.setStatus("Orders file changed, reloading…")
		return m, tea.Batch(loadOrdersCmd(m.source), listenFileChanges(m.watchCh))

	case exportedMsg:
		if msg.err != nil {
			m.setStatus("Export failed: " + msg.err.Error())
		} else {
			m.setStatusOK("Exported " + msg.path)
		}
		return m, nil

	case clipboardMsg:
		if msg.err != nil {
			m.setStatus("Clipboard failed: " + msg.err.Error())
		} else {
			m.setStatusOK("Copied " + msg.filename + " to clipboard")
		}
		return m, nil

	case spinner.TickMsg:
		if m.state == stateLoading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	return m, nil
}

func (m *Model) resizeViewport() {
	// header (title, divider, search) plus footer (status, help)
	const chrome = 8
	h := m.height - chrome
	if h < 3 {
		h = 3
	}
	m.viewport.Height = h
	m.viewport.Width = m.listWidth()
}
