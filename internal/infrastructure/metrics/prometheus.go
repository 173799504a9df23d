// Package metrics exposes application metrics in the Prometheus format.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metric names.
const (
	MetricHTTPRequestsTotal      = "http_requests_total"
	MetricHTTPRequestDuration    = "http_request_duration_seconds"
	MetricLedgerTransactionTotal = "ledger_transactions_total"
	MetricLoginAttemptsTotal     = "login_attempts_total"
)

// Config holds configuration for the registry.
type Config struct {
	// Namespace is the prefix for all metrics. Default: "pm"
	Namespace string
	// HistogramBuckets are the buckets for request duration.
	// Default: prometheus.DefBuckets
	HistogramBuckets []float64
	// IncludeRuntime registers the Go runtime and process collectors.
	IncludeRuntime bool
}

// Registry owns a private Prometheus registry and the application collectors.
//
// Thread Safety: Safe for concurrent use by multiple goroutines.
type Registry struct {
	registry *prometheus.Registry

	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
	ledgerTxs     *prometheus.CounterVec
	loginAttempts *prometheus.CounterVec
}

// NewRegistry creates a registry with all collectors registered.
func NewRegistry(cfg Config) *Registry {
	if cfg.Namespace == "" {
		cfg.Namespace = "pm"
	}
	if len(cfg.HistogramBuckets) == 0 {
		cfg.HistogramBuckets = prometheus.DefBuckets
	}

	r := &Registry{registry: prometheus.NewRegistry()}

	r.httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      MetricHTTPRequestsTotal,
			Help:      "Total number of HTTP requests served.",
		},
		[]string{"method", "route", "status"},
	)
	r.httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Name:      MetricHTTPRequestDuration,
			Help:      "HTTP request latency in seconds.",
			Buckets:   cfg.HistogramBuckets,
		},
		[]string{"method", "route"},
	)
	r.ledgerTxs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      MetricLedgerTransactionTotal,
			Help:      "Stock ledger transactions applied, by type.",
		},
		[]string{"type"},
	)
	r.loginAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      MetricLoginAttemptsTotal,
			Help:      "Login attempts, by result.",
		},
		[]string{"result"},
	)

	r.registry.MustRegister(r.httpRequests, r.httpDuration, r.ledgerTxs, r.loginAttempts)
	if cfg.IncludeRuntime {
		r.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	return r
}

// ObserveHTTPRequest records one served request.
func (r *Registry) ObserveHTTPRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	r.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// LedgerTransactionApplied counts a committed ledger entry.
func (r *Registry) LedgerTransactionApplied(txType string) {
	r.ledgerTxs.WithLabelValues(txType).Inc()
}

// LoginAttempt counts a login by result ("success" or "failure").
func (r *Registry) LoginAttempt(success bool) {
	result := "failure"
	if success {
		result = "success"
	}
	r.loginAttempts.WithLabelValues(result).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Gatherer exposes the underlying registry, mostly for tests.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}
