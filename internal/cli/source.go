package cli

import (
	"context"
	"fmt"

	"auto-order-dashboard/internal/config"
	"auto-order-dashboard/internal/core/browser"
	"auto-order-dashboard/internal/infra/logx"
	"auto-order-dashboard/internal/orders"
)

// newSource picks the offline file when configured, the backend otherwise.
// Metrics are nil for the file source.
func newSource(cfg config.Config) (orders.Source, *orders.Metrics) {
	if cfg.OrdersFile != "" {
		return orders.FileSource{Path: cfg.OrdersFile}, nil
	}
	c := orders.New(cfg.BaseURL, orders.Options{Timeout: cfg.Timeout, RetryMax: cfg.RetryMax})
	return c, c.Metrics()
}

// sourceLabel names src for the dashboard sidebar.
func sourceLabel(src orders.Source) string {
	switch s := src.(type) {
	case *orders.Client:
		return s.BaseURL()
	case orders.FileSource:
		return s.Path
	}
	return ""
}

func newBrowser(cfg config.Config) *browser.Browser {
	names, err := browser.LoadNames(cfg.NamesFile)
	if err != nil {
		logx.Warnf("display names: %v (using bundled names)", err)
	}
	return browser.New(names)
}

// fetchBrowser loads the full collection into a fresh browser. Unlike the
// dashboard, non-interactive commands fail when the fetch fails.
func fetchBrowser(ctx context.Context, cfg config.Config) (*browser.Browser, error) {
	b := newBrowser(cfg)
	src, _ := newSource(cfg)
	list, err := src.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch orders: %w", err)
	}
	b.Load(list)
	return b, nil
}

// selectOrder loads the collection and selects file.
func selectOrder(ctx context.Context, opts *globalOptions, file string) (*browser.Browser, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}
	b, err := fetchBrowser(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if !b.Select(file) {
		return nil, fmt.Errorf("order %q: %w", file, browser.ErrNoSelection)
	}
	return b, nil
}
