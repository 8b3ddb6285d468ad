package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"auto-order-dashboard/internal/core/browser"
	"auto-order-dashboard/internal/infra/logx"
	"auto-order-dashboard/internal/orders"
)

// New builds the dashboard model. The first fetch starts in Init.
func New(d Deps) Model {
	b := d.Browser
	if b == nil {
		b = browser.New(nil)
	}
	m := Model{
		state:       stateLoading,
		browser:     b,
		source:      d.Source,
		metrics:     d.Metrics,
		writer:      d.Writer,
		srcName:     d.SourceLabel,
		theme:       themeDark,
		styles:      stylesFor(themeDark),
		showSidebar: true,
		filterCfg:   browser.DefaultFilterConfig(),
		statusMsg:   "Loading orders…",
	}

	si := textinput.New()
	si.Placeholder = "Search products or customers…"
	si.CharLimit = 200
	si.Width = 40
	m.search.searchInput = si

	sp := spinner.New()
	sp.Spinner = spinner.Line
	sp.Style = subtleStyle
	m.spinner = sp

	// initial dimensions, updated on WindowSizeMsg
	m.viewport = viewport.New(80, 20)

	if d.WatchPath != "" {
		ctx, cancel := context.WithCancel(context.Background())
		ch, err := orders.Watch(ctx, d.WatchPath)
		if err != nil {
			cancel()
			logx.Warnf("watch disabled: %v", err)
		} else {
			m.watchCh = ch
			m.watchCancel = cancel
		}
	}
	m.refreshVisible()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, loadOrdersCmd(m.source), listenFileChanges(m.watchCh))
}

// Close stops the file watcher, if any.
func (m Model) Close() {
	if m.watchCancel != nil {
		m.watchCancel()
	}
}
