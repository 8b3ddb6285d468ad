package orders

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"

	"auto-order-dashboard/internal/core/browser"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func jsonResponse(code int, body string) *http.Response {
	return &http.Response{
		StatusCode: code,
		Status:     http.StatusText(code),
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

func TestListOrders(t *testing.T) {
	c := New("https://orders.test/", Options{Base: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		if req.URL.String() != "https://orders.test/orders" {
			t.Fatalf("unexpected url: %s", req.URL)
		}
		if req.Header.Get("Accept") != "application/json" {
			t.Fatalf("unexpected accept header: %s", req.Header.Get("Accept"))
		}
		if _, err := uuid.Parse(req.Header.Get("X-Request-Id")); err != nil {
			t.Fatalf("request id is not a uuid: %v", err)
		}
		body := `[{"file":"email1.json","items":[{"product":"Milk","quantity":2}]},{"file":"email5.json","items":[]}]`
		return jsonResponse(200, body), nil
	})})

	orders, err := c.ListOrders(context.Background())
	if err != nil {
		t.Fatalf("ListOrders returned error: %v", err)
	}
	if len(orders) != 2 || orders[0].File != "email1.json" || orders[0].Items[0].Quantity != 2 {
		t.Fatalf("unexpected orders: %+v", orders)
	}
	if got := c.Metrics().Snapshot(); got.TotalRequests != 1 || got.Status2xx != 1 {
		t.Fatalf("unexpected metrics: %+v", got)
	}
}

func TestListOrdersNoBaseURL(t *testing.T) {
	c := New("", Options{})
	if _, err := c.ListOrders(context.Background()); err == nil {
		t.Fatal("expected error for empty base url")
	}
}

func TestListOrdersBadStatus(t *testing.T) {
	c := New("https://orders.test", Options{Base: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(500, `{"error":"boom"}`), nil
	})})
	_, err := c.ListOrders(context.Background())
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if se.StatusCode != 500 {
		t.Fatalf("StatusCode = %d, want 500", se.StatusCode)
	}
}

func TestListOrdersMalformed(t *testing.T) {
	c := New("https://orders.test", Options{Base: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(200, `{"not":"an array"}`), nil
	})})
	if _, err := c.ListOrders(context.Background()); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestListOrdersNetworkError(t *testing.T) {
	c := New("https://orders.test", Options{Base: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return nil, errors.New("dial tcp: connection refused")
	})})
	if _, err := c.ListOrders(context.Background()); err == nil {
		t.Fatal("expected network error")
	}
}

func TestDecodeOrders(t *testing.T) {
	orders, err := DecodeOrders(strings.NewReader(`[]`))
	if err != nil || orders == nil || len(orders) != 0 {
		t.Fatalf("empty array: %v %+v", err, orders)
	}
	orders, err = DecodeOrders(strings.NewReader(`null`))
	if err != nil || orders == nil {
		t.Fatalf("null should decode to empty collection: %v %+v", err, orders)
	}
	if _, err := DecodeOrders(strings.NewReader(`[{"file":"a","items":[{"product":"x","quantity":-1}]}]`)); err == nil {
		t.Fatal("expected error for negative quantity")
	}
	if _, err := DecodeOrders(strings.NewReader(`[{"file":"a","items":[{"product":"x","quantity":1.5}]}]`)); err == nil {
		t.Fatal("expected error for fractional quantity")
	}
}

func TestDecodeOrdersQuantityOverflow(t *testing.T) {
	body := `[{"file":"a.json","items":[{"product":"Milk","quantity":9223372036854775807},{"product":"Milk","quantity":1}]}]`
	if _, err := DecodeOrders(strings.NewReader(body)); err == nil {
		t.Fatal("expected error when an order's total quantity overflows")
	}
	// large but summable quantities stay valid
	body = `[{"file":"a.json","items":[{"product":"Milk","quantity":4611686018427387904},{"product":"Eggs","quantity":1}]}]`
	orders, err := DecodeOrders(strings.NewReader(body))
	if err != nil {
		t.Fatalf("DecodeOrders returned error: %v", err)
	}
	if got := browser.TotalQuantity(orders[0].Items); got != 4611686018427387905 {
		t.Fatalf("TotalQuantity = %d", got)
	}
}

type failingSource struct{}

func (failingSource) ListOrders(context.Context) ([]browser.Order, error) {
	return nil, errors.New("unreachable")
}

func TestLoadOrEmpty(t *testing.T) {
	orders, err := LoadOrEmpty(context.Background(), failingSource{})
	if err == nil {
		t.Fatal("expected error to be reported")
	}
	if orders == nil || len(orders) != 0 {
		t.Fatalf("expected empty collection, got %+v", orders)
	}
}
