// Package metrics exposes Prometheus instrumentation for the platform.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestsTotal counts HTTP requests by method, route pattern, and status.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vicoba_http_requests_total",
		Help: "Total HTTP requests processed.",
	}, []string{"method", "path", "status"})

	// RequestDuration observes HTTP request latency in seconds.
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "vicoba_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	// ContributionsTotal counts recorded contributions per group.
	ContributionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vicoba_contributions_total",
		Help: "Total contributions recorded.",
	}, []string{"group"})

	// PaymentsTotal counts recorded member-to-member payments per group.
	PaymentsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vicoba_payments_total",
		Help: "Total peer payments recorded.",
	}, []string{"group"})

	// RoundsFinalizedTotal counts finalized rounds per group.
	RoundsFinalizedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vicoba_rounds_finalized_total",
		Help: "Total rounds finalized.",
	}, []string{"group"})
)

// Handler returns the /metrics endpoint handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
