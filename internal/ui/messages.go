package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"auto-order-dashboard/internal/core/browser"
	"auto-order-dashboard/internal/export"
	"auto-order-dashboard/internal/orders"
)

// ---------- Messages / Cmds ----------
type loadedMsg struct {
	orders []browser.Order
	err    error
}

// fileChangedMsg signals that the watched orders file was modified.
type fileChangedMsg struct{}

type exportedMsg struct {
	path string
	err  error
}

type clipboardMsg struct {
	filename string
	err      error
}

const loadTimeout = 30 * time.Second

func loadOrdersCmd(src orders.Source) tea.Cmd {
	return func() tea.Msg {
		if src == nil {
			return loadedMsg{orders: []browser.Order{}}
		}
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		list, err := orders.LoadOrEmpty(ctx, src)
		return loadedMsg{orders: list, err: err}
	}
}

// listenFileChanges waits for one change signal and returns it as a message
func listenFileChanges(ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return fileChangedMsg{}
	}
}

func saveExportCmd(w export.Writer, e browser.Export) tea.Cmd {
	return func() tea.Msg {
		path, err := w.Save(e)
		return exportedMsg{path: path, err: err}
	}
}

// copyToClipboard is swapped in tests.
var copyToClipboard = export.Clipboard

func clipboardCmd(e browser.Export) tea.Cmd {
	return func() tea.Msg {
		return clipboardMsg{filename: e.Filename, err: copyToClipboard(e)}
	}
}
