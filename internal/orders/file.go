package orders

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"

	"auto-order-dashboard/internal/core/browser"
)

// LoadFile reads an order collection from a local JSON file. Comments and
// trailing commas are tolerated.
func LoadFile(path string) ([]browser.Order, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read orders file: %w", err)
	}
	orders, err := DecodeOrders(bytes.NewReader(jsonc.ToJSON(b)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return orders, nil
}

// FileSource serves orders from a local file, re-read on every call.
type FileSource struct {
	Path string
}

func (s FileSource) ListOrders(ctx context.Context) ([]browser.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return LoadFile(s.Path)
}
