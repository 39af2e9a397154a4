// Package metrics registers the prometheus collectors exposed at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clinicore_http_requests_total",
		Help: "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "clinicore_http_request_duration_seconds",
		Help:    "HTTP request latency by method and route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	BillsGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clinicore_bills_generated_total",
		Help: "Bills successfully persisted.",
	})

	InvoicesRendered = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clinicore_invoices_rendered_total",
		Help: "Invoice documents rendered, by format.",
	}, []string{"format"})

	RenderCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clinicore_render_cache_hits_total",
		Help: "PDF downloads served from the redis render cache.",
	})
)
