package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"venueadmin/internal/adapters/http/perf"
)

// TestTimingMiddleware_EmitsEntry verifies that a request entry is recorded.
func TestTimingMiddleware_EmitsEntry(t *testing.T) {
	collector := perf.NewCollector(100)
	handler := Timing(collector, 0)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/bookings", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if collector.TotalRecorded() != 1 {
		t.Errorf("TotalRecorded = %d, want 1", collector.TotalRecorded())
	}
}

// TestTimingMiddleware_SkipsStatic verifies static assets are excluded from timing.
func TestTimingMiddleware_SkipsStatic(t *testing.T) {
	collector := perf.NewCollector(100)
	handler := Timing(collector, 0)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/static/app.css", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if collector.TotalRecorded() != 0 {
		t.Errorf("TotalRecorded = %d, want 0 (static excluded)", collector.TotalRecorded())
	}
}

// TestTimingMiddleware_EntryFields verifies method, path and status reach the collector.
func TestTimingMiddleware_EntryFields(t *testing.T) {
	collector := perf.NewCollector(1)
	handler := Timing(collector, time.Hour)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	req := httptest.NewRequest("POST", "/clients", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", rr.Code)
	}
	snap := collector.Snapshot(time.Now().Add(-time.Minute), 10)
	if len(snap.SlowestPaths) != 1 {
		t.Fatalf("SlowestPaths len = %d, want 1", len(snap.SlowestPaths))
	}
	if snap.SlowestPaths[0].Path != "POST /clients" {
		t.Errorf("Path = %q, want \"POST /clients\"", snap.SlowestPaths[0].Path)
	}
}

// TestTimingMiddleware_PoolNoStateLeak verifies that statusWriter pool reuse
// does not leak status codes between requests.
func TestTimingMiddleware_PoolNoStateLeak(t *testing.T) {
	fail := Timing(nil, 0)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	fail.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/fail", nil))

	collector := perf.NewCollector(1)
	ok := Timing(collector, 0)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	ok.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/ok", nil))

	snap := collector.Snapshot(time.Now().Add(-time.Minute), 10)
	if snap.Requests != 1 {
		t.Fatalf("Requests = %d, want 1", snap.Requests)
	}
}

// TestTimingMiddleware_ObservesRoutePattern verifies the histogram is labelled
// with the mux pattern rather than the raw path.
func TestTimingMiddleware_ObservesRoutePattern(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /timing-test/{id}", func(w http.ResponseWriter, r *http.Request) {})
	handler := Timing(nil, 0)(mux)

	before := testutil.CollectAndCount(requestDuration)
	for _, id := range []string{"a", "b", "c"} {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/timing-test/"+id, nil))
	}
	if got := testutil.CollectAndCount(requestDuration); got != before+1 {
		t.Errorf("series = %d, want %d (one per pattern)", got, before+1)
	}
}

// TestTimingMiddleware_GroupsPerfByPattern verifies perf entries for one route
// share a row and each response carries a request ID.
func TestTimingMiddleware_GroupsPerfByPattern(t *testing.T) {
	collector := perf.NewCollector(100)
	mux := http.NewServeMux()
	mux.HandleFunc("POST /bookings/{id}/actions/{action}", func(w http.ResponseWriter, r *http.Request) {})
	handler := Timing(collector, 0)(mux)

	ids := map[string]bool{}
	for _, id := range []string{"b1", "b2"} {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest("POST", "/bookings/"+id+"/actions/cancel", nil))
		ids[rr.Header().Get("X-Request-ID")] = true
	}
	if len(ids) != 2 || ids[""] {
		t.Errorf("request IDs = %v, want two distinct values", ids)
	}

	snap := collector.Snapshot(time.Time{}, 10)
	if len(snap.SlowestPaths) != 1 {
		t.Fatalf("SlowestPaths len = %d, want 1", len(snap.SlowestPaths))
	}
	if got := snap.SlowestPaths[0].Path; got != "POST /bookings/{id}/actions/{action}" {
		t.Errorf("Path = %q", got)
	}
}

// BenchmarkTimingMiddleware measures per-request overhead.
func BenchmarkTimingMiddleware(b *testing.B) {
	collector := perf.NewCollector(perf.DefaultRingSize)
	handler := Timing(collector, 0)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	req := httptest.NewRequest("GET", "/bookings", nil)

	b.ReportAllocs()
	for b.Loop() {
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}
}
