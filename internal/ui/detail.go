package ui

import (
	"fmt"
	"strings"

	"auto-order-dashboard/internal/core/browser"
)

// renderDetail shows the selected order's items and the aggregated chart.
func (m Model) renderDetail() string {
	o, ok := m.browser.Selected()
	if !ok {
		return ""
	}
	w := m.detailWidth()
	var b strings.Builder
	b.WriteString(m.styles.heading.Render(m.browser.DisplayName(o.File)) + "\n")
	b.WriteString(subtleStyle.Render(o.File) + "\n\n")

	if len(o.Items) == 0 {
		b.WriteString(subtleStyle.Render("This order has no items.") + "\n")
	}
	for _, it := range o.Items {
		b.WriteString(fmt.Sprintf("%s  %s\n", it.Product, subtleStyle.Render(fmt.Sprintf("Quantity: %d", it.Quantity))))
	}

	aggs := m.browser.Aggregate()
	b.WriteString("\n" + m.styles.heading.Render("📊 Total Product Quantities") + "\n")
	b.WriteString(renderBarChart(aggs, w-4))
	b.WriteString("\n" + subtleStyle.Render(fmt.Sprintf("%d unit(s) total", browser.TotalQuantity(o.Items))))

	return m.styles.detail.Width(w).Render(b.String())
}

func (m Model) renderSidebar() string {
	if !m.showSidebar {
		return ""
	}
	s := m.browser.Summary()
	var b strings.Builder
	b.WriteString(m.styles.heading.Render("📦 Order Summary") + "\n")
	b.WriteString(fmt.Sprintf("Total Files: %d\n", s.TotalFiles))
	b.WriteString(fmt.Sprintf("Total Items: %d\n", s.TotalItems))
	b.WriteString("\n" + subtleStyle.Render("theme: "+m.theme.String()))
	if m.srcName != "" {
		b.WriteString("\n" + subtleStyle.Render("source: "+truncateLabel(m.srcName, sidebarCols-12)))
	}
	if m.metrics != nil {
		snap := m.metrics.Snapshot()
		b.WriteString("\n\n" + subtleStyle.Render(fmt.Sprintf("requests: %d\nretries: %d", snap.TotalRequests, snap.TotalRetries)))
		if snap.LastStatus != 0 {
			b.WriteString("\n" + subtleStyle.Render(fmt.Sprintf("last status: %d", snap.LastStatus)))
		}
	}
	return m.styles.sidebar.Width(sidebarCols - 1).Render(b.String())
}
