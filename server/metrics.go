package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "hrquery"

// Outcome label values.
const (
	outcomeOK           = "ok"
	outcomeEmpty        = "empty"
	outcomeUnrecognized = "unrecognized"
	outcomeBadRequest   = "bad_request"
	outcomeError        = "error"
)

// Metrics is the /chat Prometheus collection. Each instance owns its own
// registry, so several servers (or tests) never collide on registration.
type Metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics registers the chat collectors on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "chat_requests_total",
				Help:      "Number of /chat requests by intent and outcome.",
			},
			[]string{"intent", "outcome"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "chat_request_duration_seconds",
				Help:      "Time spent answering /chat requests.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"intent"},
		),
	}
}

// Observe records one answered /chat request.
func (m *Metrics) Observe(intent, outcome string, elapsed time.Duration) {
	m.requests.WithLabelValues(intent, outcome).Inc()
	m.duration.WithLabelValues(intent).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
