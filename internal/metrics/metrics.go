// Package metrics defines the Prometheus collectors for the service.
// The collectors register with the default registry and are exposed on
// /metrics by the API server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Upstream fetch metrics
	UpstreamRequests = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "preconceive_upstream_requests_total",
			Help: "Total number of page requests issued to the Archidekt API",
		},
	)

	UpstreamErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "preconceive_upstream_errors_total",
			Help: "Total number of failed Archidekt API requests",
		},
	)

	// Catalog cache metrics
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "preconceive_catalog_cache_hits_total",
			Help: "Total number of catalog cache hits",
		},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "preconceive_catalog_cache_misses_total",
			Help: "Total number of catalog cache misses",
		},
	)

	// Rate limiting metrics
	RateLimitDenials = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "preconceive_rate_limit_denials_total",
			Help: "Total number of requests denied by the rate limiter",
		},
	)

	// Selection metrics
	Picks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "preconceive_picks_total",
			Help: "Total number of successful deck picks",
		},
	)

	PickFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "preconceive_pick_fallbacks_total",
			Help: "Total number of picks where the color filter matched nothing and the full catalog was used",
		},
	)
)
