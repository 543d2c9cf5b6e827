package obs

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	m.IncSearch("city")
	m.IncStage("city_lookup", "success")
	m.IncCache("search", true)
	m.ObserveUpstream("hotel-offers", "200", 0.1)
	m.IncTokenRefresh()
	m.IncPhoto("found")
	m.ObserveHTTP("GET", "/api/health", "200", 0.01)
}

func TestCountersAndHandler(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.IncSearch("market-fallback")
	m.IncSearch("market-fallback")
	m.IncCache("ids", false)
	m.IncTokenRefresh()

	if got := testutil.ToFloat64(m.SearchRequests.WithLabelValues("market-fallback")); got != 2 {
		t.Errorf("Expected 2 searches, got %v", got)
	}
	if got := testutil.ToFloat64(m.CacheLookups.WithLabelValues("ids", "miss")); got != 1 {
		t.Errorf("Expected 1 cache miss, got %v", got)
	}
	if got := testutil.ToFloat64(m.TokenRefreshes); got != 1 {
		t.Errorf("Expected 1 token refresh, got %v", got)
	}

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()
	resp, err := srv.Client().Get(srv.URL)
	if err != nil {
		t.Fatalf("Failed to scrape metrics: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "hotel_search_requests_total") {
		t.Error("Expected search counter in scrape output")
	}
}
