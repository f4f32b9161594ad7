// Package metrics defines Prometheus metrics for game-deal-tracker.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "gdt"

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

	HealthzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "healthz_up",
		Help:      "Liveness probe status (1 = up).",
	})

	ReadyzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "readyz_up",
		Help:      "Readiness probe status (1 = ready).",
	})
)

// Discount scan metrics.
var (
	ScanDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "scan_duration_seconds",
		Help:      "Duration of discount scan runs in seconds.",
		Buckets:   prometheus.DefBuckets,
	})

	ScanUsersTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "scan_users_total",
		Help:      "Total number of users scanned for discounts.",
	})

	ScanEntryErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "scan_entry_errors_total",
		Help:      "Total number of wishlist entries skipped due to fetch or normalization errors.",
	})

	DiscountsFoundTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "discounts_found_total",
		Help:      "Total number of discounted games detected across scan runs.",
	})
)

// Provider metrics.
var (
	ProviderCallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "provider_calls_total",
		Help:      "Total storefront API calls by platform.",
	}, []string{"platform"})

	ProviderErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "provider_errors_total",
		Help:      "Total storefront API failures by platform.",
	}, []string{"platform"})

	ProviderDailyLimitHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "provider_daily_limit_hits_total",
		Help:      "Number of calls rejected because the daily provider quota was exhausted.",
	})
)

// Notification metrics.
var (
	NotificationsSentTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_sent_total",
		Help:      "Total discount notification batches dispatched.",
	})

	NotificationFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notification_failures_total",
		Help:      "Total failed notification dispatches.",
	})
)

// Review metrics.
var (
	ReviewGenerationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "review_generation_duration_seconds",
		Help:      "Duration of LLM review generation calls in seconds.",
		Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60},
	})

	ReviewGenerationFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "review_generation_failures_total",
		Help:      "Total failed LLM review generation calls.",
	})
)
