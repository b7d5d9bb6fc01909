package observability

import (
	"strconv"
	"sync"
	"time"
)

// Metrics keeps in-process counters keyed by route pattern, never by the
// raw path, so ids in URLs do not grow the maps.
type Metrics struct {
	mu             sync.Mutex
	started        time.Time
	requests       map[string]int64
	latency        map[string]*latencyStats
	errors         map[string]int64
	securityEvents map[SecurityEventKind]int64
}

type latencyStats struct {
	count int64
	total time.Duration
	max   time.Duration
}

// LatencySummary reports per-route latency in milliseconds.
type LatencySummary struct {
	Count  int64   `json:"count"`
	MeanMs float64 `json:"mean_ms"`
	MaxMs  float64 `json:"max_ms"`
}

// MetricsSnapshot is a point-in-time copy of the counters.
type MetricsSnapshot struct {
	UptimeSeconds  int64                     `json:"uptime_seconds"`
	Requests       map[string]int64          `json:"requests"`
	Latency        map[string]LatencySummary `json:"latency"`
	Errors         map[string]int64          `json:"errors"`
	SecurityEvents map[string]int64          `json:"security_events"`
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		started:        time.Now(),
		requests:       make(map[string]int64),
		latency:        make(map[string]*latencyStats),
		errors:         make(map[string]int64),
		securityEvents: make(map[SecurityEventKind]int64),
	}
}

// RecordRequest counts a finished request under route|method|status and
// folds its duration into the route's latency stats.
func (m *Metrics) RecordRequest(route, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	routeKey := route + "|" + method
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests[routeKey+"|"+strconv.Itoa(status)]++
	stats, ok := m.latency[routeKey]
	if !ok {
		stats = &latencyStats{}
		m.latency[routeKey] = stats
	}
	stats.count++
	stats.total += duration
	if duration > stats.max {
		stats.max = duration
	}
}

// RecordError counts a rendered error by code.
func (m *Metrics) RecordError(route, method, code string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[route+"|"+method+"|"+code]++
}

// RecordSecurityEvent increments the counter for a security event kind.
func (m *Metrics) RecordSecurityEvent(kind SecurityEventKind) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.securityEvents[kind]++
}

// Snapshot copies the current counters.
func (m *Metrics) Snapshot() MetricsSnapshot {
	snap := MetricsSnapshot{
		Requests:       map[string]int64{},
		Latency:        map[string]LatencySummary{},
		Errors:         map[string]int64{},
		SecurityEvents: map[string]int64{},
	}
	if m == nil {
		return snap
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	snap.UptimeSeconds = int64(time.Since(m.started) / time.Second)
	for k, v := range m.requests {
		snap.Requests[k] = v
	}
	for k, v := range m.latency {
		snap.Latency[k] = LatencySummary{
			Count:  v.count,
			MeanMs: millis(v.total) / float64(v.count),
			MaxMs:  millis(v.max),
		}
	}
	for k, v := range m.errors {
		snap.Errors[k] = v
	}
	for k, v := range m.securityEvents {
		snap.SecurityEvents[string(k)] = v
	}
	return snap
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
