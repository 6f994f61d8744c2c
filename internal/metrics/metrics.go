// Package metrics exposes Prometheus instrumentation for the HTTP API, the
// write paths and the scoring engine. A nil *Registry is valid and records
// nothing.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "preflists"

// Registry holds every collector on its own prometheus.Registry so several
// instances can coexist in tests.
type Registry struct {
	reg *prometheus.Registry

	HTTPRequests     *prometheus.CounterVec
	HTTPDuration     *prometheus.HistogramVec
	Writes           *prometheus.CounterVec
	RankingDuration  prometheus.Histogram
	RankedSecurities prometheus.Gauge
	CatalogReloads   *prometheus.CounterVec
	ExternalCalls    *prometheus.CounterVec
}

// NewRegistry creates and registers all collectors, including the Go runtime
// and process collectors.
func NewRegistry() *Registry {
	m := &Registry{
		reg: prometheus.NewRegistry(),

		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "HTTP requests by method, route and status code",
			},
			[]string{"method", "route", "status"},
		),

		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
			},
			[]string{"method", "route"},
		),

		Writes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "writes_total",
				Help:      "Write commands by entity and outcome",
			},
			[]string{"entity", "result"},
		),

		RankingDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "ranking_duration_seconds",
				Help:      "Time to query and aggregate a time-weighted ranking",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
			},
		),

		RankedSecurities: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "ranked_securities",
				Help:      "Securities with a positive score in the last computed ranking",
			},
		),

		CatalogReloads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "catalog_reloads_total",
				Help:      "Catalog index reloads by outcome",
			},
			[]string{"result"},
		),

		ExternalCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "external_requests_total",
				Help:      "Outbound requests by provider and outcome",
			},
			[]string{"provider", "result"},
		),
	}

	m.reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequests,
		m.HTTPDuration,
		m.Writes,
		m.RankingDuration,
		m.RankedSecurities,
		m.CatalogReloads,
		m.ExternalCalls,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format
func (m *Registry) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (m *Registry) ObserveHTTP(method, route, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, status).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveWrite counts a write command for entity (security, list_change, ...)
func (m *Registry) ObserveWrite(entity string, err error) {
	if m == nil {
		return
	}
	m.Writes.WithLabelValues(entity, result(err)).Inc()
}

func (m *Registry) ObserveRanking(elapsed time.Duration, ranked int) {
	if m == nil {
		return
	}
	m.RankingDuration.Observe(elapsed.Seconds())
	m.RankedSecurities.Set(float64(ranked))
}

func (m *Registry) ObserveCatalogReload(err error) {
	if m == nil {
		return
	}
	m.CatalogReloads.WithLabelValues(result(err)).Inc()
}

func (m *Registry) ObserveExternal(provider string, err error) {
	if m == nil {
		return
	}
	m.ExternalCalls.WithLabelValues(provider, result(err)).Inc()
}
