package obs

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the Prometheus collectors for the API. All methods are safe
// to call on a nil *Metrics so packages can run without instrumentation in tests.
type Metrics struct {
	SearchRequests  *prometheus.CounterVec
	StageOutcomes   *prometheus.CounterVec
	CacheLookups    *prometheus.CounterVec
	UpstreamLatency *prometheus.HistogramVec
	TokenRefreshes  prometheus.Counter
	PhotoLookups    *prometheus.CounterVec

	HTTPRequestDuration *prometheus.HistogramVec
	HTTPRequestsTotal   *prometheus.CounterVec
	Registry            *prometheus.Registry
}

// Create Prometheus collectors and register them
func NewMetrics(p *prometheus.Registry) *Metrics {
	m := &Metrics{
		SearchRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hotel_search_requests_total",
			Help: "Hotel searches by the stage tag that produced the response",
		}, []string{"via"}),
		StageOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hotel_search_stage_outcomes_total",
			Help: "Outcome of each orchestration stage",
		}, []string{"stage", "outcome"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hotel_cache_lookups_total",
			Help: "TTL cache lookups by cache and result",
		}, []string{"cache", "result"}),
		UpstreamLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "upstream_request_duration_seconds",
			Help:    "Latency of calls to the hotel directory and place services",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint", "status"}),
		TokenRefreshes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "directory_token_refreshes_total",
			Help: "Credential exchanges performed against the directory auth endpoint",
		}),
		PhotoLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hotel_photo_lookups_total",
			Help: "Photo enrichment attempts by result",
		}, []string{"result"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latencies",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		Registry: p,
	}

	p.MustRegister(
		m.SearchRequests,
		m.StageOutcomes,
		m.CacheLookups,
		m.UpstreamLatency,
		m.TokenRefreshes,
		m.PhotoLookups,
		m.HTTPRequestDuration,
		m.HTTPRequestsTotal,
	)

	return m
}

func (m *Metrics) IncSearch(via string) {
	if m == nil {
		return
	}
	m.SearchRequests.WithLabelValues(via).Inc()
}

func (m *Metrics) IncStage(stage, outcome string) {
	if m == nil {
		return
	}
	m.StageOutcomes.WithLabelValues(stage, outcome).Inc()
}

func (m *Metrics) IncCache(cache string, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookups.WithLabelValues(cache, result).Inc()
}

func (m *Metrics) ObserveUpstream(endpoint, status string, seconds float64) {
	if m == nil {
		return
	}
	m.UpstreamLatency.WithLabelValues(endpoint, status).Observe(seconds)
}

func (m *Metrics) IncTokenRefresh() {
	if m == nil {
		return
	}
	m.TokenRefreshes.Inc()
}

func (m *Metrics) IncPhoto(result string) {
	if m == nil {
		return
	}
	m.PhotoLookups.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveHTTP(method, path, status string, seconds float64) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(seconds)
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
