package ui

import (
	"fmt"
	"strings"

	"auto-order-dashboard/internal/core/browser"
)

const maxLabelWidth = 18

// renderBarChart draws one horizontal bar per aggregated product, scaled to
// the largest quantity and coloured from chartPalette in order.
func renderBarChart(aggs []browser.AggregatedQuantity, width int) string {
	if len(aggs) == 0 {
		return subtleStyle.Render("No items.")
	}
	labelW, maxQty, numW := 0, 0, 1
	for _, a := range aggs {
		labelW = max(labelW, len([]rune(a.Product)))
		maxQty = max(maxQty, a.Quantity)
		numW = max(numW, len(fmt.Sprint(a.Quantity)))
	}
	labelW = min(labelW, maxLabelWidth)
	barW := width - labelW - numW - 2
	if barW < 4 {
		barW = 4
	}

	lines := make([]string, 0, len(aggs))
	for i, a := range aggs {
		n := 0
		if maxQty > 0 {
			n = int(float64(a.Quantity) / float64(maxQty) * float64(barW))
		}
		n = min(max(n, 0), barW)
		if n == 0 && a.Quantity > 0 {
			n = 1
		}
		bar := barStyle(i).Render(strings.Repeat("█", n)) + strings.Repeat(" ", barW-n)
		lines = append(lines, fmt.Sprintf("%-*s %s %*d", labelW, truncateLabel(a.Product, labelW), bar, numW, a.Quantity))
	}
	return strings.Join(lines, "\n")
}

func truncateLabel(s string, w int) string {
	r := []rune(s)
	if len(r) <= w {
		return s
	}
	if w <= 1 {
		return string(r[:w])
	}
	return string(r[:w-1]) + "…"
}
