// Package browser holds the in-memory order collection of the dashboard and
// every transform the presentation layer needs: search, selection,
// aggregation and export.
package browser

// Browser owns the order collection, the current selection and the search
// query. It is not safe for concurrent use; the dashboard has a single writer.
type Browser struct {
	orders   []Order
	selected int // index into orders, -1 when nothing is selected
	query    string
	names    Names
}

// New creates an empty browser using names for display labels. A nil names
// table falls back to the bundled one.
func New(names Names) *Browser {
	if names == nil {
		names = DefaultNames()
	}
	return &Browser{selected: -1, names: names}
}

// Load replaces the whole collection. A previous selection is re-resolved by
// file identifier and cleared when the file is no longer present.
func (b *Browser) Load(orders []Order) {
	prev := ""
	if o, ok := b.Selected(); ok {
		prev = o.File
	}
	b.orders = make([]Order, len(orders))
	for i, o := range orders {
		if o.Items == nil {
			o.Items = []LineItem{}
		}
		b.orders[i] = o
	}
	b.selected = -1
	if prev != "" {
		b.selected = b.indexOf(prev)
	}
}

// Len returns the number of loaded orders.
func (b *Browser) Len() int { return len(b.orders) }

// DisplayName returns the human readable label for an order file.
func (b *Browser) DisplayName(file string) string { return b.names.Display(file) }

// SetQuery stores the current search text.
func (b *Browser) SetQuery(q string) { b.query = q }

// Query returns the current search text.
func (b *Browser) Query() string { return b.query }

// Visible returns the orders matching the current query.
func (b *Browser) Visible() []Order { return b.Filter(b.query) }

// Select marks the order with the given file identifier as selected. It
// reports false and leaves the selection untouched when no order matches.
func (b *Browser) Select(file string) bool {
	idx := b.indexOf(file)
	if idx < 0 {
		return false
	}
	b.selected = idx
	return true
}

// ClearSelection drops the current selection.
func (b *Browser) ClearSelection() { b.selected = -1 }

// Selected returns the selected order, if any.
func (b *Browser) Selected() (Order, bool) {
	if b.selected < 0 || b.selected >= len(b.orders) {
		return Order{}, false
	}
	return b.orders[b.selected], true
}

// IsSelected reports whether file is the selected order.
func (b *Browser) IsSelected(file string) bool {
	o, ok := b.Selected()
	return ok && o.File == file
}

// Aggregate returns the per-product totals of the selection, or an empty
// slice when nothing is selected.
func (b *Browser) Aggregate() []AggregatedQuantity {
	o, ok := b.Selected()
	if !ok {
		return []AggregatedQuantity{}
	}
	return Aggregate(o.Items)
}

// Summary returns the sidebar numbers.
func (b *Browser) Summary() Summary {
	s := Summary{TotalFiles: len(b.orders)}
	if o, ok := b.Selected(); ok {
		s.TotalItems = len(o.Items)
	}
	return s
}

// Preview returns at most n leading items of o.
func Preview(o Order, n int) []LineItem {
	if n < 0 {
		n = 0
	}
	if len(o.Items) < n {
		n = len(o.Items)
	}
	return o.Items[:n]
}

func (b *Browser) indexOf(file string) int {
	for i, o := range b.orders {
		if o.File == file {
			return i
		}
	}
	return -1
}
