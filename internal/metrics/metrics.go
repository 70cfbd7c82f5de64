// Package metrics defines Prometheus metrics for mandi-price-tracker.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "mandi"

// HTTP metrics.
var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "path", "status"})
)

// Health metrics.
var (
	HealthzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "healthz_up",
		Help:      "Whether the last liveness probe succeeded (1) or failed (0).",
	})

	ReadyzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "readyz_up",
		Help:      "Whether the last readiness probe succeeded (1) or failed (0).",
	})
)

// Dataset metrics.
var (
	DatasetReloadsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "dataset_reloads_total",
		Help:      "Total number of CSV dataset parses.",
	})

	DatasetCacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "dataset_cache_hits_total",
		Help:      "Total number of dataset loads served from the in-memory cache.",
	})

	DatasetRecords = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "dataset_records",
		Help:      "Number of price records in the currently cached dataset.",
	})

	DatasetLoadFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "dataset_load_failures_total",
		Help:      "Total number of dataset load failures, including sample fallbacks.",
	})
)

// Government API metrics.
var (
	GovAPICallsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "govapi_calls_total",
		Help:      "Total cumulative government data API calls.",
	})

	GovAPIFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "govapi_failures_total",
		Help:      "Total number of failed government data API calls.",
	})

	GovAPIDailyUsage = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "govapi_daily_usage",
		Help:      "Current daily government API call count within the rolling 24-hour window.",
	})

	GovAPIDailyLimitHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "govapi_daily_limit_hits_total",
		Help:      "Total number of times the daily government API quota was reached.",
	})
)

// Price resolution metrics.
var (
	PriceQueriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "price_queries_total",
		Help:      "Total number of price queries by result source.",
	}, []string{"source"})
)

// Price query source label values.
const (
	SourceLocal    = "local"
	SourceFallback = "government_api"
	SourceNone     = "none"
)
