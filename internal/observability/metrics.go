package observability

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Metrics collects application metrics and serves them in Prometheus text
// format. Safe for concurrent use.
type Metrics struct {
	namespace string
	version   string

	mu sync.RWMutex
	// key = "method:path:status"
	requestCounts map[string]*atomic.Int64
	// key = "method:path"
	durations map[string]*durationTotal

	calculations   atomic.Int64
	parseFailures  atomic.Int64
	rateLimited    atomic.Int64
	activeRequests atomic.Int64
}

// durationTotal accumulates request durations for a route.
type durationTotal struct {
	mu    sync.Mutex
	sum   float64
	count int64
}

func (d *durationTotal) add(dur time.Duration) {
	d.mu.Lock()
	d.sum += dur.Seconds()
	d.count++
	d.mu.Unlock()
}

// NewMetrics creates a Metrics collector. Version appears in the info
// metric.
func NewMetrics(namespace, version string) *Metrics {
	if namespace == "" {
		namespace = "subnetter"
	}
	if version == "" {
		version = "dev"
	}
	return &Metrics{
		namespace:     namespace,
		version:       version,
		requestCounts: make(map[string]*atomic.Int64),
		durations:     make(map[string]*durationTotal),
	}
}

// RecordHTTPRequest records one HTTP request.
func (m *Metrics) RecordHTTPRequest(method, path string, statusCode int, duration time.Duration) {
	countKey := fmt.Sprintf("%s:%s:%d", method, path, statusCode)
	m.mu.Lock()
	counter, ok := m.requestCounts[countKey]
	if !ok {
		counter = &atomic.Int64{}
		m.requestCounts[countKey] = counter
	}
	durKey := method + ":" + path
	total, ok := m.durations[durKey]
	if !ok {
		total = &durationTotal{}
		m.durations[durKey] = total
	}
	m.mu.Unlock()
	counter.Add(1)
	total.add(duration)
}

// RecordCalculation counts one successful subnet computation.
func (m *Metrics) RecordCalculation() { m.calculations.Add(1) }

// RecordParseFailure counts one rejected input.
func (m *Metrics) RecordParseFailure() { m.parseFailures.Add(1) }

// RecordRateLimited counts one request rejected by the rate limiter.
func (m *Metrics) RecordRateLimited() { m.rateLimited.Add(1) }

// Handler returns an http.Handler that serves the metrics.
func (m *Metrics) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
		m.write(w)
	})
}

func (m *Metrics) write(w http.ResponseWriter) {
	fmt.Fprintf(w, "# HELP %s_info Application information\n", m.namespace)
	fmt.Fprintf(w, "# TYPE %s_info gauge\n", m.namespace)
	fmt.Fprintf(w, "%s_info{version=%q} 1\n\n", m.namespace, m.version)

	fmt.Fprintf(w, "# HELP %s_http_requests_total Total number of HTTP requests\n", m.namespace)
	fmt.Fprintf(w, "# TYPE %s_http_requests_total counter\n", m.namespace)
	m.mu.RLock()
	keys := make([]string, 0, len(m.requestCounts))
	for k := range m.requestCounts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		parts := strings.SplitN(key, ":", 3)
		if len(parts) == 3 {
			fmt.Fprintf(w, "%s_http_requests_total{method=%q,path=%q,status=%q} %d\n",
				m.namespace, parts[0], parts[1], parts[2], m.requestCounts[key].Load())
		}
	}
	m.mu.RUnlock()
	fmt.Fprintln(w)

	fmt.Fprintf(w, "# HELP %s_http_request_duration_seconds HTTP request duration in seconds\n", m.namespace)
	fmt.Fprintf(w, "# TYPE %s_http_request_duration_seconds summary\n", m.namespace)
	m.mu.RLock()
	durKeys := make([]string, 0, len(m.durations))
	for k := range m.durations {
		durKeys = append(durKeys, k)
	}
	sort.Strings(durKeys)
	for _, key := range durKeys {
		parts := strings.SplitN(key, ":", 2)
		if len(parts) != 2 {
			continue
		}
		total := m.durations[key]
		total.mu.Lock()
		sum, count := total.sum, total.count
		total.mu.Unlock()
		fmt.Fprintf(w, "%s_http_request_duration_seconds_sum{method=%q,path=%q} %.6f\n",
			m.namespace, parts[0], parts[1], sum)
		fmt.Fprintf(w, "%s_http_request_duration_seconds_count{method=%q,path=%q} %d\n",
			m.namespace, parts[0], parts[1], count)
	}
	m.mu.RUnlock()
	fmt.Fprintln(w)

	fmt.Fprintf(w, "# HELP %s_calculations_total Total subnet computations\n", m.namespace)
	fmt.Fprintf(w, "# TYPE %s_calculations_total counter\n", m.namespace)
	fmt.Fprintf(w, "%s_calculations_total{status=\"ok\"} %d\n", m.namespace, m.calculations.Load())
	fmt.Fprintf(w, "%s_calculations_total{status=\"rejected\"} %d\n\n", m.namespace, m.parseFailures.Load())

	fmt.Fprintf(w, "# HELP %s_rate_limited_total Requests rejected by the rate limiter\n", m.namespace)
	fmt.Fprintf(w, "# TYPE %s_rate_limited_total counter\n", m.namespace)
	fmt.Fprintf(w, "%s_rate_limited_total %d\n\n", m.namespace, m.rateLimited.Load())

	fmt.Fprintf(w, "# HELP %s_active_requests Current number of in-flight HTTP requests\n", m.namespace)
	fmt.Fprintf(w, "# TYPE %s_active_requests gauge\n", m.namespace)
	fmt.Fprintf(w, "%s_active_requests %d\n", m.namespace, m.activeRequests.Load())
}

// MetricsMiddleware returns an HTTP middleware that records request
// metrics. A nil Metrics disables collection.
func MetricsMiddleware(m *Metrics) func(http.Handler) http.Handler {
	if m == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Skip the metrics endpoint itself to avoid recursion.
			if r.URL.Path == "/metrics" {
				next.ServeHTTP(w, r)
				return
			}

			m.activeRequests.Add(1)
			defer m.activeRequests.Add(-1)

			start := time.Now()
			wrapped := &metricsResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(wrapped, r)
			m.RecordHTTPRequest(r.Method, r.URL.Path, wrapped.statusCode, time.Since(start))
		})
	}
}

// metricsResponseWriter wraps http.ResponseWriter to capture the status code.
type metricsResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *metricsResponseWriter) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

// Unwrap returns the underlying ResponseWriter for http.ResponseController.
func (w *metricsResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
