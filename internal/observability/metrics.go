package observability

import (
	"sort"
	"strconv"
	"sync"
	"time"
)

// Metrics provides basic in-memory counters.
type Metrics struct {
	mu            sync.Mutex
	started       time.Time
	requestCount  map[string]int64
	errorCount    map[string]int64
	notifications map[string]int64
	totalLatency  time.Duration
	totalRequests int64
}

// RouteCount is one counter row of a Snapshot.
type RouteCount struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	UptimeSeconds    int64        `json:"uptimeSeconds"`
	TotalRequests    int64        `json:"totalRequests"`
	AverageLatencyMS float64      `json:"averageLatencyMs"`
	Requests         []RouteCount `json:"requests"`
	Errors           []RouteCount `json:"errors"`
	Notifications    []RouteCount `json:"notifications"`
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		started:       time.Now(),
		requestCount:  make(map[string]int64),
		errorCount:    make(map[string]int64),
		notifications: make(map[string]int64),
	}
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := pathKey(path, method, status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount[key]++
	m.totalRequests++
	m.totalLatency += duration
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + code
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[key]++
}

// RecordNotification counts notification outcomes per kind.
func (m *Metrics) RecordNotification(kind string, ok bool) {
	if m == nil {
		return
	}
	key := kind + "|failed"
	if ok {
		key = kind + "|sent"
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifications[key]++
}

// Snapshot copies the counters.
func (m *Metrics) Snapshot() Snapshot {
	if m == nil {
		return Snapshot{}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	snap := Snapshot{
		UptimeSeconds: int64(time.Since(m.started).Seconds()),
		TotalRequests: m.totalRequests,
		Requests:      sortedCounts(m.requestCount),
		Errors:        sortedCounts(m.errorCount),
		Notifications: sortedCounts(m.notifications),
	}
	if m.totalRequests > 0 {
		snap.AverageLatencyMS = float64(m.totalLatency.Microseconds()) / 1000 / float64(m.totalRequests)
	}
	return snap
}

func sortedCounts(in map[string]int64) []RouteCount {
	out := make([]RouteCount, 0, len(in))
	for k, v := range in {
		out = append(out, RouteCount{Key: k, Count: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

func pathKey(path, method string, status int) string {
	return path + "|" + method + "|" + strconv.Itoa(status)
}
