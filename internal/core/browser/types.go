package browser

import "errors"

// LineItem is one product/quantity pair of an order.
type LineItem struct {
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
}

// Order is one parsed unit of purchase data.
type Order struct {
	File  string     `json:"file"`
	Items []LineItem `json:"items"`
}

// AggregatedQuantity is the summed quantity of one distinct product.
type AggregatedQuantity struct {
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
}

// Span is a piece of highlighted text.
type Span struct {
	Text  string
	Match bool
}

// Export is a blob together with its suggested filename.
type Export struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Summary holds the sidebar numbers.
type Summary struct {
	TotalFiles int
	TotalItems int
}

// ErrNoSelection is returned by callers that need a selected order.
// The browser itself treats a missing selection as a no-op.
var ErrNoSelection = errors.New("no order selected")
