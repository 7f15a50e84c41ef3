package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "golden_hour_http_requests_total",
		Help: "Number of HTTP requests handled by the gateway.",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "golden_hour_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	CacheHitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "golden_hour_cache_hits_total",
		Help: "Cache reads served from a fresh entry.",
	}, []string{"key_family"})

	CacheMissesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "golden_hour_cache_misses_total",
		Help: "Cache reads that required a remote fetch.",
	}, []string{"key_family"})

	CacheInvalidationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "golden_hour_cache_invalidations_total",
		Help: "Cache entries marked stale after a mutation.",
	}, []string{"key_family"})

	RemoteCallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "golden_hour_remote_calls_total",
		Help: "Calls issued to the studio backend.",
	}, []string{"key_family", "outcome"})
)
