package orders

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// Metrics holds lightweight counters for HTTP activity.
type Metrics struct {
	TotalRequests     atomic.Int64
	TotalRetries      atomic.Int64
	TotalBackoffNanos atomic.Int64

	mu         sync.Mutex
	hostCounts map[string]int64
	status2xx  int64
	status4xx  int64
	status429  int64
	status5xx  int64
	lastStatus int
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics { return &Metrics{hostCounts: make(map[string]int64)} }

// IncRequest increments per-host and total request counters.
func (m *Metrics) IncRequest(host string) {
	m.TotalRequests.Add(1)
	m.mu.Lock()
	m.hostCounts[host]++
	m.mu.Unlock()
}

// IncRetry increments the retry counter.
func (m *Metrics) IncRetry() { m.TotalRetries.Add(1) }

// AddBackoff accumulates backoff sleep time.
func (m *Metrics) AddBackoff(d time.Duration) { m.TotalBackoffNanos.Add(d.Nanoseconds()) }

// IncStatus tracks status buckets.
func (m *Metrics) IncStatus(code int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastStatus = code
	switch {
	case code == 429:
		m.status429++
	case code >= 200 && code < 300:
		m.status2xx++
	case code >= 400 && code < 500:
		m.status4xx++
	case code >= 500:
		m.status5xx++
	}
}

// MetricsSnapshot is a read-only copy of metrics state.
type MetricsSnapshot struct {
	TotalRequests     int64
	TotalRetries      int64
	TotalBackoffNanos int64
	HostCounts        map[string]int64
	Status2xx         int64
	Status4xx         int64
	Status429         int64
	Status5xx         int64
	LastStatus        int
}

// Snapshot returns a copy of the metrics. A nil collector yields a zero
// snapshot.
func (m *Metrics) Snapshot() MetricsSnapshot {
	if m == nil {
		return MetricsSnapshot{HostCounts: map[string]int64{}}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	hosts := make(map[string]int64, len(m.hostCounts))
	for k, v := range m.hostCounts {
		hosts[k] = v
	}
	return MetricsSnapshot{
		TotalRequests:     m.TotalRequests.Load(),
		TotalRetries:      m.TotalRetries.Load(),
		TotalBackoffNanos: m.TotalBackoffNanos.Load(),
		HostCounts:        hosts,
		Status2xx:         m.status2xx,
		Status4xx:         m.status4xx,
		Status429:         m.status429,
		Status5xx:         m.status5xx,
		LastStatus:        m.lastStatus,
	}
}

// String renders the compact status-line form.
func (s MetricsSnapshot) String() string {
	last := "-"
	if s.LastStatus != 0 {
		last = fmt.Sprint(s.LastStatus)
	}
	return fmt.Sprintf("req %d | 2xx %d | 4xx %d | 5xx %d | retries %d | last %s",
		s.TotalRequests, s.Status2xx, s.Status4xx+s.Status429, s.Status5xx, s.TotalRetries, last)
}
