// Package metrics exposes Prometheus metrics for document generation.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "pdd"

// Outcome labels for generation requests.
const (
	OutcomeSuccess      = "success"
	OutcomeInvalidInput = "invalid_input"
	OutcomeError        = "error"
)

// Recorder observes generation requests. The server depends on this interface
// so metrics can be turned off with Nop.
type Recorder interface {
	ObserveRequest(outcome string, elapsed time.Duration)
	ObserveDocument(size int)
}

// Compile-time interface checks.
var (
	_ Recorder = (*Metrics)(nil)
	_ Recorder = Nop{}
)

// Metrics holds the collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	requests     *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	documentSize prometheus.Histogram
}

// New registers the generation collectors plus the Go runtime and process
// collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.requests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generate_requests_total",
			Help:      "Document generation requests by outcome",
		},
		[]string{"outcome"},
	)

	m.duration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generate_duration_seconds",
			Help:      "Time spent handling a generation request",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"outcome"},
	)

	m.documentSize = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "document_size_bytes",
			Help:      "Size of generated documents before base64 encoding",
			Buckets:   prometheus.ExponentialBuckets(2048, 2, 10),
		},
	)

	m.registry.MustRegister(
		m.requests,
		m.duration,
		m.documentSize,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// ObserveRequest counts a request and records its latency.
func (m *Metrics) ObserveRequest(outcome string, elapsed time.Duration) {
	m.requests.WithLabelValues(outcome).Inc()
	m.duration.WithLabelValues(outcome).Observe(elapsed.Seconds())
}

// ObserveDocument records the size of a generated document.
func (m *Metrics) ObserveDocument(size int) {
	m.documentSize.Observe(float64(size))
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Nop discards observations.
type Nop struct{}

func (Nop) ObserveRequest(string, time.Duration) {}
func (Nop) ObserveDocument(int)                  {}
