// Package metrics provides Prometheus metrics export for the context engine.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusExporter exports engine metrics in Prometheus format.
type PrometheusExporter struct {
	registry *prometheus.Registry

	// Chat metrics
	chatLatency  *prometheus.HistogramVec
	chatRequests *prometheus.CounterVec
	chatFallback prometheus.Counter

	// Session metrics
	sessionsActive   prometheus.Gauge
	sessionEvictions prometheus.Counter

	// Response cache metrics
	cacheHits   prometheus.Counter
	cacheMisses prometheus.Counter

	// Model token metrics
	modelTokens  *prometheus.CounterVec
	modelLatency *prometheus.HistogramVec

	// Import metrics
	documentsImported *prometheus.CounterVec
	chunksImported    prometheus.Counter
}

// Config configures the Prometheus exporter.
type Config struct {
	// Registry to use (if nil, creates a new one)
	Registry *prometheus.Registry

	// Buckets for latency histograms (in seconds)
	LatencyBuckets []float64
}

// DefaultConfig returns default Prometheus configuration.
func DefaultConfig() Config {
	return Config{
		LatencyBuckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30},
	}
}

// NewPrometheusExporter creates a new Prometheus metrics exporter.
func NewPrometheusExporter(cfg Config) *PrometheusExporter {
	if len(cfg.LatencyBuckets) == 0 {
		cfg.LatencyBuckets = DefaultConfig().LatencyBuckets
	}

	registry := cfg.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	e := &PrometheusExporter{registry: registry}

	e.chatLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "mindsense",
			Subsystem: "ai",
			Name:      "chat_latency_seconds",
			Help:      "Chat turn latency in seconds",
			Buckets:   cfg.LatencyBuckets,
		},
		[]string{"persona"},
	)

	e.chatRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mindsense",
			Subsystem: "ai",
			Name:      "chat_requests_total",
			Help:      "Total number of chat turns",
		},
		[]string{"persona", "status"},
	)

	e.chatFallback = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "mindsense",
			Subsystem: "ai",
			Name:      "chat_fallbacks_total",
			Help:      "Chat turns answered with the fallback message",
		},
	)

	e.sessionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "mindsense",
			Subsystem: "ai",
			Name:      "sessions_active",
			Help:      "Number of live chat sessions",
		},
	)

	e.sessionEvictions = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "mindsense",
			Subsystem: "ai",
			Name:      "session_evictions_total",
			Help:      "Sessions evicted after idling past their TTL",
		},
	)

	e.cacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "mindsense",
			Subsystem: "ai",
			Name:      "response_cache_hits_total",
			Help:      "Total response cache hits",
		},
	)

	e.cacheMisses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "mindsense",
			Subsystem: "ai",
			Name:      "response_cache_misses_total",
			Help:      "Total response cache misses",
		},
	)

	e.modelTokens = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mindsense",
			Subsystem: "ai",
			Name:      "model_tokens_total",
			Help:      "Total model tokens consumed",
		},
		[]string{"model", "token_type"},
	)

	e.modelLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "mindsense",
			Subsystem: "ai",
			Name:      "model_latency_seconds",
			Help:      "Model request latency in seconds",
			Buckets:   cfg.LatencyBuckets,
		},
		[]string{"model"},
	)

	e.documentsImported = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mindsense",
			Subsystem: "ai",
			Name:      "documents_imported_total",
			Help:      "Total documents run through the import pipeline",
		},
		[]string{"class", "status"},
	)

	e.chunksImported = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "mindsense",
			Subsystem: "ai",
			Name:      "chunks_imported_total",
			Help:      "Total chunks appended to conversation memory",
		},
	)

	registry.MustRegister(
		e.chatLatency,
		e.chatRequests,
		e.chatFallback,
		e.sessionsActive,
		e.sessionEvictions,
		e.cacheHits,
		e.cacheMisses,
		e.modelTokens,
		e.modelLatency,
		e.documentsImported,
		e.chunksImported,
	)

	return e
}

// RecordChatTurn records one completed chat turn.
func (e *PrometheusExporter) RecordChatTurn(persona string, latency time.Duration, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	e.chatRequests.WithLabelValues(persona, status).Inc()
	e.chatLatency.WithLabelValues(persona).Observe(latency.Seconds())
}

// RecordFallback records a turn answered with the canned fallback message.
func (e *PrometheusExporter) RecordFallback() {
	e.chatFallback.Inc()
}

// SetActiveSessions sets the live session gauge.
func (e *PrometheusExporter) SetActiveSessions(count int) {
	e.sessionsActive.Set(float64(count))
}

// RecordSessionEviction counts one idle-session eviction.
func (e *PrometheusExporter) RecordSessionEviction() {
	e.sessionEvictions.Inc()
}

// RecordCacheHit records a response cache hit.
func (e *PrometheusExporter) RecordCacheHit() {
	e.cacheHits.Inc()
}

// RecordCacheMiss records a response cache miss.
func (e *PrometheusExporter) RecordCacheMiss() {
	e.cacheMisses.Inc()
}

// RecordModelTokens records model token usage.
func (e *PrometheusExporter) RecordModelTokens(model, tokenType string, count int) {
	e.modelTokens.WithLabelValues(model, tokenType).Add(float64(count))
}

// RecordModelLatency records model request latency.
func (e *PrometheusExporter) RecordModelLatency(model string, latency time.Duration) {
	e.modelLatency.WithLabelValues(model).Observe(latency.Seconds())
}

// RecordDocumentImport records one document import attempt.
func (e *PrometheusExporter) RecordDocumentImport(class string, chunks int, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	e.documentsImported.WithLabelValues(class, status).Inc()
	if chunks > 0 {
		e.chunksImported.Add(float64(chunks))
	}
}

// Handler returns the HTTP handler for the metrics endpoint.
func (e *PrometheusExporter) Handler() http.Handler {
	return promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{})
}

// ServeHTTP implements http.Handler for the metrics endpoint.
func (e *PrometheusExporter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	e.Handler().ServeHTTP(w, r)
}

// Registry returns the underlying Prometheus registry.
func (e *PrometheusExporter) Registry() *prometheus.Registry {
	return e.registry
}
