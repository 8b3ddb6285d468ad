package browser

// Aggregate groups items by exact product name and sums their quantities.
// The result keeps the order in which each product first appears.
func Aggregate(items []LineItem) []AggregatedQuantity {
	out := make([]AggregatedQuantity, 0, len(items))
	pos := make(map[string]int, len(items))
	for _, it := range items {
		if i, ok := pos[it.Product]; ok {
			out[i].Quantity += it.Quantity
			continue
		}
		pos[it.Product] = len(out)
		out = append(out, AggregatedQuantity{Product: it.Product, Quantity: it.Quantity})
	}
	return out
}

// TotalQuantity sums the quantities of items.
func TotalQuantity(items []LineItem) int {
	total := 0
	for _, it := range items {
		total += it.Quantity
	}
	return total
}
