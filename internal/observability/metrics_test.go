package observability

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetricsSnapshot(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("/api/v1/clients/:id", "GET", 200, 10*time.Millisecond)
	m.RecordRequest("/api/v1/clients/:id", "GET", 200, 30*time.Millisecond)
	m.RecordRequest("/api/v1/clients/:id", "GET", 404, 2*time.Millisecond)
	m.RecordError("/api/v1/clients/:id", "GET", "NOT_FOUND")
	m.RecordSecurityEvent(EventRateLimitExceeded)

	snap := m.Snapshot()
	assert.Equal(t, int64(2), snap.Requests["/api/v1/clients/:id|GET|200"])
	assert.Equal(t, int64(1), snap.Requests["/api/v1/clients/:id|GET|404"])
	assert.Equal(t, LatencySummary{Count: 3, MeanMs: 14, MaxMs: 30}, snap.Latency["/api/v1/clients/:id|GET"])
	assert.Equal(t, int64(1), snap.Errors["/api/v1/clients/:id|GET|NOT_FOUND"])
	assert.Equal(t, int64(1), snap.SecurityEvents[string(EventRateLimitExceeded)])
}

func TestMetricsConcurrentUse(t *testing.T) {
	m := NewMetrics()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.RecordRequest("/health/live", "GET", 200, time.Millisecond)
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(50), m.Snapshot().Requests["/health/live|GET|200"])
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/", "GET", 200, time.Millisecond)
	m.RecordError("/", "GET", "X")
	m.RecordSecurityEvent(EventLoginFailed)
	assert.Empty(t, m.Snapshot().Requests)
}
