package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestMetricsHandler(t *testing.T) {
	m := NewMetrics("subnetter", "1.2.3")
	m.RecordHTTPRequest(http.MethodGet, "/api/v1/subnet", http.StatusOK, 5*time.Millisecond)
	m.RecordHTTPRequest(http.MethodGet, "/api/v1/subnet", http.StatusOK, 3*time.Millisecond)
	m.RecordCalculation()
	m.RecordParseFailure()
	m.RecordRateLimited()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		`subnetter_info{version="1.2.3"} 1`,
		`subnetter_http_requests_total{method="GET",path="/api/v1/subnet",status="200"} 2`,
		`subnetter_http_request_duration_seconds_count{method="GET",path="/api/v1/subnet"} 2`,
		`subnetter_calculations_total{status="ok"} 1`,
		`subnetter_calculations_total{status="rejected"} 1`,
		`subnetter_rate_limited_total 1`,
		`subnetter_active_requests 0`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output missing %q:\n%s", want, body)
		}
	}
}

func TestMetricsHandlerMethodNotAllowed(t *testing.T) {
	m := NewMetrics("", "")
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/metrics", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestMetricsMiddleware(t *testing.T) {
	m := NewMetrics("subnetter", "dev")
	handler := MetricsMiddleware(m)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/subnet", nil))

	recMetrics := httptest.NewRecorder()
	m.Handler().ServeHTTP(recMetrics, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(recMetrics.Body.String(), `status="418"} 1`) {
		t.Errorf("middleware did not record request:\n%s", recMetrics.Body.String())
	}
}

func TestMetricsMiddlewareNil(t *testing.T) {
	called := false
	handler := MetricsMiddleware(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if !called {
		t.Error("nil metrics middleware did not pass through")
	}
}
