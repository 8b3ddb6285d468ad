// Package orders retrieves the parsed order collection, either from the
// order backend over HTTP or from a local JSON file.
package orders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"auto-order-dashboard/internal/core/browser"
	"auto-order-dashboard/internal/infra/logx"
)

// Source yields the full order collection.
type Source interface {
	ListOrders(ctx context.Context) ([]browser.Order, error)
}

// StatusError reports a non-2xx response.
type StatusError struct {
	Op         string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s status %s", e.Op, e.Status)
}

// Options tunes the HTTP client. Zero values pick defaults.
type Options struct {
	Timeout  time.Duration
	RetryMax int
	// Base is the underlying RoundTripper, http.DefaultTransport when nil.
	Base http.RoundTripper
}

type Client struct {
	http    *http.Client
	baseURL string
	metrics *Metrics
}

func New(baseURL string, opt Options) *Client {
	if opt.Timeout <= 0 {
		opt.Timeout = 10 * time.Second
	}
	topt := DefaultTransportOptions(opt.RetryMax)
	tr := NewRetryingLimiterTransport(topt)
	tr.Base = opt.Base
	return &Client{
		http:    &http.Client{Timeout: opt.Timeout, Transport: tr},
		baseURL: strings.TrimRight(baseURL, "/"),
		metrics: topt.Metrics,
	}
}

// Metrics exposes the transport counters.
func (c *Client) Metrics() *Metrics { return c.metrics }

// BaseURL returns the configured endpoint root.
func (c *Client) BaseURL() string { return c.baseURL }

// ListOrders performs GET {base}/orders and decodes the order array.
func (c *Client) ListOrders(ctx context.Context) ([]browser.Order, error) {
	if c.baseURL == "" {
		return nil, errors.New("orders.list: base url empty")
	}
	reqID := uuid.NewString()
	var rc RetryCounters
	ctx = WithRetryCounters(ctx, &rc)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/orders", nil)
	if err != nil {
		return nil, fmt.Errorf("orders.list: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", reqID)

	start := time.Now()
	res, err := c.http.Do(req)
	if err != nil {
		logx.Log(logx.LevelError, "orders.list request failed", map[string]any{
			"request_id": reqID,
			"error":      err.Error(),
			"retries":    rc.Total,
		})
		return nil, fmt.Errorf("orders.list: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		// drain a little so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, 4<<10))
		logx.Log(logx.LevelError, "orders.list bad status", map[string]any{
			"request_id": reqID,
			"status":     res.StatusCode,
			"retries":    rc.Total,
		})
		return nil, &StatusError{Op: "orders.list", StatusCode: res.StatusCode, Status: res.Status}
	}

	orders, err := DecodeOrders(res.Body)
	if err != nil {
		logx.Log(logx.LevelError, "orders.list decode failed", map[string]any{
			"request_id": reqID,
			"error":      err.Error(),
		})
		return nil, fmt.Errorf("orders.list: %w", err)
	}
	logx.Log(logx.LevelInfo, "orders.list ok", map[string]any{
		"request_id": reqID,
		"count":      len(orders),
		"retries":    rc.Total,
		"duration":   time.Since(start).String(),
	})
	return orders, nil
}

// DecodeOrders parses a JSON array of orders. Quantities must be
// non-negative integers and each order's total must fit in an int.
func DecodeOrders(r io.Reader) ([]browser.Order, error) {
	var out []browser.Order
	if err := json.NewDecoder(r).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}
	for _, o := range out {
		total := 0
		for _, it := range o.Items {
			if it.Quantity < 0 {
				return nil, fmt.Errorf("decode orders: %s: negative quantity %d for %q", o.File, it.Quantity, it.Product)
			}
			if it.Quantity > math.MaxInt-total {
				return nil, fmt.Errorf("decode orders: %s: total quantity overflows at %q", o.File, it.Product)
			}
			total += it.Quantity
		}
	}
	if out == nil {
		out = []browser.Order{}
	}
	return out, nil
}

// LoadOrEmpty fetches from src. On failure it logs the error and returns an
// empty collection alongside the error, so callers can carry on with an
// empty dashboard.
func LoadOrEmpty(ctx context.Context, src Source) ([]browser.Order, error) {
	orders, err := src.ListOrders(ctx)
	if err != nil {
		logx.Errorf("fetch orders: %v", err)
		return []browser.Order{}, err
	}
	return orders, nil
}
