package orders

import (
	"strings"
	"sync"
	"testing"
	"time"
)

func TestNewMetrics(t *testing.T) {
	m := NewMetrics()
	if m == nil {
		t.Fatal("NewMetrics returned nil")
	}
	if m.hostCounts == nil {
		t.Error("hostCounts map not initialized")
	}
	if m.TotalRequests.Load() != 0 {
		t.Errorf("TotalRequests = %d, want 0", m.TotalRequests.Load())
	}
}

func TestMetrics_IncRequest(t *testing.T) {
	m := NewMetrics()
	m.IncRequest("a.test")
	m.IncRequest("a.test")
	m.IncRequest("b.test")

	s := m.Snapshot()
	if s.TotalRequests != 3 {
		t.Errorf("TotalRequests = %d, want 3", s.TotalRequests)
	}
	if s.HostCounts["a.test"] != 2 || s.HostCounts["b.test"] != 1 {
		t.Errorf("HostCounts = %v", s.HostCounts)
	}
}

func TestMetrics_IncStatus(t *testing.T) {
	m := NewMetrics()
	for _, code := range []int{200, 204, 404, 429, 500, 503} {
		m.IncStatus(code)
	}
	s := m.Snapshot()
	if s.Status2xx != 2 {
		t.Errorf("Status2xx = %d, want 2", s.Status2xx)
	}
	if s.Status4xx != 1 {
		t.Errorf("Status4xx = %d, want 1", s.Status4xx)
	}
	if s.Status429 != 1 {
		t.Errorf("Status429 = %d, want 1", s.Status429)
	}
	if s.Status5xx != 2 {
		t.Errorf("Status5xx = %d, want 2", s.Status5xx)
	}
	if s.LastStatus != 503 {
		t.Errorf("LastStatus = %d, want 503", s.LastStatus)
	}
}

func TestMetrics_RetryAndBackoff(t *testing.T) {
	m := NewMetrics()
	m.IncRetry()
	m.AddBackoff(250 * time.Millisecond)
	m.AddBackoff(500 * time.Millisecond)
	s := m.Snapshot()
	if s.TotalRetries != 1 {
		t.Errorf("TotalRetries = %d, want 1", s.TotalRetries)
	}
	if time.Duration(s.TotalBackoffNanos) != 750*time.Millisecond {
		t.Errorf("TotalBackoff = %v, want 750ms", time.Duration(s.TotalBackoffNanos))
	}
}

func TestMetrics_SnapshotIsCopy(t *testing.T) {
	m := NewMetrics()
	m.IncRequest("a.test")
	s := m.Snapshot()
	s.HostCounts["a.test"] = 99
	if got := m.Snapshot().HostCounts["a.test"]; got != 1 {
		t.Errorf("snapshot mutation leaked into metrics: %d", got)
	}
}

func TestMetrics_NilSnapshot(t *testing.T) {
	var m *Metrics
	s := m.Snapshot()
	if s.TotalRequests != 0 || s.HostCounts == nil {
		t.Errorf("unexpected nil snapshot: %+v", s)
	}
}

func TestMetricsSnapshot_String(t *testing.T) {
	m := NewMetrics()
	if got := m.Snapshot().String(); !strings.HasSuffix(got, "last -") {
		t.Errorf("String() = %q, want suffix %q", got, "last -")
	}
	m.IncRequest("a.test")
	m.IncStatus(200)
	want := "req 1 | 2xx 1 | 4xx 0 | 5xx 0 | retries 0 | last 200"
	if got := m.Snapshot().String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestMetrics_Concurrent(t *testing.T) {
	m := NewMetrics()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.IncRequest("a.test")
			m.IncStatus(200)
			m.IncRetry()
		}()
	}
	wg.Wait()
	s := m.Snapshot()
	if s.TotalRequests != 50 || s.Status2xx != 50 || s.TotalRetries != 50 {
		t.Errorf("unexpected counts: %+v", s)
	}
}
