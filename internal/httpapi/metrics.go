package httpapi

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/raphaelgruber/rendercheck/internal/models"
)

// Metrics holds the Prometheus metrics for the HTTP API. Each instance owns
// its registry, so several handlers can coexist in one process.
type Metrics struct {
	requests   *prometheus.CounterVec
	latency    *prometheus.HistogramVec
	strategies *prometheus.CounterVec
	findings   *prometheus.CounterVec
	registry   *prometheus.Registry
}

// NewMetrics creates and registers all metrics on a fresh registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rendercheck_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		latency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "rendercheck_http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		strategies: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rendercheck_strategy_decisions_total",
				Help: "Strategies returned in reports",
			},
			[]string{"strategy"},
		),
		findings: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rendercheck_findings_total",
				Help: "Validation findings returned in reports",
			},
			[]string{"rule", "severity"},
		),
		registry: registry,
	}
}

// RecordRequest records one served request.
func (m *Metrics) RecordRequest(method, route string, status int, seconds float64) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.latency.WithLabelValues(method, route).Observe(seconds)
}

// RecordReport records the strategy and findings of a report.
func (m *Metrics) RecordReport(r *models.RecommendationReport) {
	m.strategies.WithLabelValues(string(r.Strategy)).Inc()
	for _, f := range r.Findings {
		m.findings.WithLabelValues(f.RuleID, string(f.Severity)).Inc()
	}
}

// Handler returns the Prometheus metrics handler.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
