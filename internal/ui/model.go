package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"auto-order-dashboard/internal/core/browser"
	"auto-order-dashboard/internal/export"
	"auto-order-dashboard/internal/orders"
)

// --- Model / State ---
type state int

const (
	stateLoading state = iota
	stateBrowse
	stateQuit
)

type SelectionState struct {
	// cursor within the visible card list
	listIndex int
}

type SearchState struct {
	searching   bool
	searchInput textinput.Model
	fuzzy       bool
}

// Deps wires the model to its collaborators.
type Deps struct {
	Browser *browser.Browser
	Source  orders.Source
	Metrics *orders.Metrics
	Writer  export.Writer
	// WatchPath, when set, reloads the dashboard whenever the file changes.
	WatchPath string
	// SourceLabel names where orders come from, shown in the sidebar.
	SourceLabel string
}

type Model struct {
	state         state
	statusMsg     string
	statusOK      bool
	loadErr       error
	width, height int

	spinner  spinner.Model
	viewport viewport.Model

	browser *browser.Browser
	source  orders.Source
	metrics *orders.Metrics
	writer  export.Writer
	srcName string

	watchCh     <-chan struct{}
	watchCancel context.CancelFunc

	theme       theme
	styles      styles
	showSidebar bool

	selection SelectionState
	search    SearchState
	filterCfg browser.FilterConfig
	visible   []browser.Order
}

func (m *Model) setStatus(s string) { m.statusMsg, m.statusOK = s, false }

// setStatusOK reports a completed action; the footer shows it in okStyle.
func (m *Model) setStatusOK(s string) { m.statusMsg, m.statusOK = s, true }
