package orders

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Clock abstracts time for deterministic tests.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type realClock struct{}

func (realClock) Now() time.Time        { return time.Now() }
func (realClock) Sleep(d time.Duration) { time.Sleep(d) }

// Limit defines a simple rate limit: RPS with a burst capacity.
type Limit struct {
	RPS   float64
	Burst int
}

var defaultLimit = Limit{RPS: 5, Burst: 5}

// TransportOptions configures the rate-limited transport. RetryMax is 0 by
// default: a failed fetch is reported, not repeated.
type TransportOptions struct {
	RetryMax    int
	BackoffBase time.Duration
	BackoffCap  time.Duration
	JitterFn    func(base time.Duration, attempt int) time.Duration
	Clock       Clock
	Metrics     *Metrics

	// Host-specific limits (by req.URL.Host). If missing, defaultLimit applies.
	HostLimits map[string]Limit
}

// DefaultTransportOptions returns options with full-jitter backoff and a
// fresh metrics collector.
func DefaultTransportOptions(retryMax int) TransportOptions {
	if retryMax < 0 {
		retryMax = 0
	}
	return TransportOptions{
		RetryMax:    retryMax,
		BackoffBase: 250 * time.Millisecond,
		BackoffCap:  5 * time.Second,
		Clock:       realClock{},
		JitterFn: func(base time.Duration, _ int) time.Duration {
			if base <= 0 {
				return 0
			}
			return time.Duration(rand.Int63n(base.Nanoseconds()))
		},
		Metrics: NewMetrics(),
	}
}

// tokenBucket is a per-host rate limiter with fractional tokens.
type tokenBucket struct {
	mu     sync.Mutex
	rps    float64
	burst  float64
	tokens float64
	last   time.Time
	clock  Clock
}

func newTokenBucket(lim Limit, clock Clock) *tokenBucket {
	if lim.RPS <= 0 {
		lim.RPS = defaultLimit.RPS
	}
	if lim.Burst <= 0 {
		lim.Burst = 1
	}
	return &tokenBucket{
		rps:    lim.RPS,
		burst:  float64(lim.Burst),
		tokens: float64(lim.Burst),
		last:   clock.Now(),
		clock:  clock,
	}
}

// take consumes a token, or returns how long to wait for the next one.
func (tb *tokenBucket) take() time.Duration {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	now := tb.clock.Now()
	if elapsed := now.Sub(tb.last).Seconds(); elapsed > 0 {
		tb.tokens = math.Min(tb.burst, tb.tokens+elapsed*tb.rps)
		tb.last = now
	}
	if tb.tokens >= 1 {
		tb.tokens--
		return 0
	}
	d := time.Duration((1 - tb.tokens) / tb.rps * float64(time.Second))
	if d <= 0 {
		d = time.Millisecond
	}
	return d
}

func (tb *tokenBucket) Wait(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		wait := tb.take()
		if wait == 0 {
			return nil
		}
		// sleep in small steps so cancellation is observed
		step := 5 * time.Millisecond
		if wait < step {
			step = wait
		}
		tb.clock.Sleep(step)
	}
}

// RetryingLimiterTransport wraps a base RoundTripper with host-based rate
// limiting, request metrics and optional retries.
type RetryingLimiterTransport struct {
	Base     http.RoundTripper
	Opts     TransportOptions
	limMu    sync.Mutex
	limiters map[string]*tokenBucket
}

func NewRetryingLimiterTransport(opts TransportOptions) *RetryingLimiterTransport {
	return &RetryingLimiterTransport{Opts: opts, limiters: make(map[string]*tokenBucket)}
}

func (t *RetryingLimiterTransport) limiter(host string) *tokenBucket {
	t.limMu.Lock()
	defer t.limMu.Unlock()
	if tb, ok := t.limiters[host]; ok {
		return tb
	}
	lim := defaultLimit
	if v, ok := t.Opts.HostLimits[host]; ok {
		lim = v
	}
	tb := newTokenBucket(lim, t.clock())
	t.limiters[host] = tb
	return tb
}

func (t *RetryingLimiterTransport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}

func (t *RetryingLimiterTransport) clock() Clock {
	if t.Opts.Clock != nil {
		return t.Opts.Clock
	}
	return realClock{}
}

func (t *RetryingLimiterTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	lim := t.limiter(req.URL.Host)
	m := t.Opts.Metrics
	if m != nil {
		m.IncRequest(req.URL.Host)
	}
	rc := getRetryCounters(req.Context())

	attempts := t.Opts.RetryMax + 1
	if attempts < 1 {
		attempts = 1
	}
	// only bodiless requests are replayed
	if req.Body != nil && req.Body != http.NoBody && req.GetBody == nil {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if err := lim.Wait(req.Context()); err != nil {
			return nil, err
		}
		if attempt > 0 && req.GetBody != nil {
			body, err := req.GetBody()
			if err != nil {
				return nil, err
			}
			req.Body = body
		}
		last := attempt == attempts-1

		resp, err := t.base().RoundTrip(req)
		if err != nil {
			if last || !isTransientNetErr(err) {
				return nil, err
			}
			lastErr = err
			if rc != nil {
				rc.Total++
				rc.Net++
			}
			if m != nil {
				m.IncRetry()
			}
			t.sleep(t.backoff(attempt))
			continue
		}

		if m != nil {
			m.IncStatus(resp.StatusCode)
		}
		if last || !shouldRetryStatus(resp.StatusCode) {
			return resp, nil
		}

		delay := parseRetryAfter(resp.Header.Get("Retry-After"), t.clock().Now())
		if delay > 0 {
			delay = minDur(delay, t.backoffCap())
		} else {
			delay = t.backoff(attempt)
		}
		resp.Body.Close()
		if rc != nil {
			rc.Total++
			switch {
			case resp.StatusCode == http.StatusTooManyRequests:
				rc.Status429++
			case resp.StatusCode >= 500:
				rc.Status5xx++
			}
		}
		if m != nil {
			m.IncRetry()
		}
		t.sleep(delay)
	}
	if lastErr == nil {
		lastErr = errors.New("max retries exceeded")
	}
	return nil, lastErr
}

// backoff is base * 2^attempt plus jitter, capped.
func (t *RetryingLimiterTransport) backoff(attempt int) time.Duration {
	base := t.Opts.BackoffBase
	if base <= 0 {
		base = 250 * time.Millisecond
	}
	delay := minDur(time.Duration(float64(base)*math.Pow(2, float64(attempt))), t.backoffCap())
	if t.Opts.JitterFn != nil {
		delay += t.Opts.JitterFn(delay, attempt)
	}
	return minDur(delay, t.backoffCap())
}

func (t *RetryingLimiterTransport) backoffCap() time.Duration {
	if t.Opts.BackoffCap <= 0 {
		return 5 * time.Second
	}
	return t.Opts.BackoffCap
}

func (t *RetryingLimiterTransport) sleep(d time.Duration) {
	t.clock().Sleep(d)
	if t.Opts.Metrics != nil {
		t.Opts.Metrics.AddBackoff(d)
	}
}

func isTransientNetErr(err error) bool {
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "timeout") || strings.Contains(msg, "temporary") || strings.Contains(msg, "connection reset")
}

func shouldRetryStatus(code int) bool {
	return code == 429 || code == 502 || code == 503 || code == 504
}

func parseRetryAfter(h string, now time.Time) time.Duration {
	h = strings.TrimSpace(h)
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(h); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if when, err := http.ParseTime(h); err == nil {
		if d := when.Sub(now); d > 0 {
			return d
		}
	}
	return 0
}

func minDur(a, b time.Duration) time.Duration {
	if a < b {
		return a
	}
	return b
}
