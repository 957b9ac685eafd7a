// Package metrics registers the Prometheus collectors for the EasyQSO
// backend and exposes helpers the handlers call at the import/export
// boundaries. All collectors live on a dedicated registry so tests can
// construct isolated instances.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the backend's collectors and their registry.
type Metrics struct {
	registry *prometheus.Registry

	importRecords *prometheus.CounterVec
	exportRecords *prometheus.CounterVec
	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
}

// New constructs a Metrics with all collectors registered on a fresh
// registry, alongside the standard Go runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{registry: reg}

	m.importRecords = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "easyqso",
		Name:      "import_records_total",
		Help:      "Imported log records by file format and outcome.",
	}, []string{"format", "outcome"})
	m.exportRecords = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "easyqso",
		Name:      "export_records_total",
		Help:      "Exported log records by file format.",
	}, []string{"format"})
	m.httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "easyqso",
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route pattern, and status code.",
	}, []string{"method", "route", "status"})
	m.httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "easyqso",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method and route pattern.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	reg.MustRegister(m.importRecords, m.exportRecords, m.httpRequests, m.httpDuration)
	return m
}

// Handler returns the /metrics endpoint for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveImport records the outcome of one import: inserted and duplicate
// record counts for the given format ("adif" or "csv").
func (m *Metrics) ObserveImport(format string, inserted, duplicates int) {
	m.importRecords.WithLabelValues(format, "inserted").Add(float64(inserted))
	m.importRecords.WithLabelValues(format, "duplicate").Add(float64(duplicates))
}

// ObserveExport records the size of one export for the given format.
func (m *Metrics) ObserveExport(format string, records int) {
	m.exportRecords.WithLabelValues(format).Add(float64(records))
}

// ObserveRequest records one completed HTTP request.
func (m *Metrics) ObserveRequest(method, route, status string, seconds float64) {
	m.httpRequests.WithLabelValues(method, route, status).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(seconds)
}
