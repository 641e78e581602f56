package observability

import (
	"sync"
	"time"
)

type routeKey struct {
	path   string
	method string
	status int
}

type errorKey struct {
	path   string
	method string
	code   string
}

// Metrics keeps in-process request and error counters. There is no scrape
// endpoint; counters exist for log correlation and tests.
type Metrics struct {
	mu            sync.Mutex
	requestCount  map[routeKey]int64
	totalDuration map[routeKey]time.Duration
	errorCount    map[errorKey]int64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requestCount:  make(map[routeKey]int64),
		totalDuration: make(map[routeKey]time.Duration),
		errorCount:    make(map[errorKey]int64),
	}
}

// RecordRequest counts a completed request and accumulates its latency.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := routeKey{path: path, method: method, status: status}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount[key]++
	m.totalDuration[key] += duration
}

// RecordError counts a rendered error by route and error code.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[errorKey{path: path, method: method, code: code}]++
}

// RequestCount returns the counter for a path/method/status triple.
func (m *Metrics) RequestCount(path, method string, status int) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requestCount[routeKey{path: path, method: method, status: status}]
}
