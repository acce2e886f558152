// Package metrics defines the Prometheus metrics exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics

	// HTTPRequests tracks requests by route, method and status class
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "velora",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests served",
		},
		[]string{"route", "method", "status"},
	)

	// HTTPDuration tracks request latency by route
	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "velora",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Time to serve an HTTP request",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	// HTTPRateLimited tracks requests rejected by the rate limiter
	HTTPRateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "velora",
			Subsystem: "http",
			Name:      "rate_limited_total",
			Help:      "Total requests rejected due to rate limiting",
		},
	)

	// Fault manager metrics

	// FaultsReported tracks faults by domain and severity
	FaultsReported = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "velora",
			Subsystem: "faults",
			Name:      "reported_total",
			Help:      "Total faults reported to the fault manager",
		},
		[]string{"domain", "severity"},
	)

	// FaultsRecovered tracks faults resolved by a recovery strategy
	FaultsRecovered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "velora",
			Subsystem: "faults",
			Name:      "recovered_total",
			Help:      "Total faults resolved by automatic recovery",
		},
		[]string{"domain"},
	)

	// FaultRetries tracks handler retry attempts
	FaultRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "velora",
			Subsystem: "faults",
			Name:      "retries_total",
			Help:      "Total fault handler retry attempts",
		},
		[]string{"domain"},
	)

	// Magazine scheduler metrics

	// ArticlesPublished tracks articles flipped to published by the scheduler
	ArticlesPublished = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "velora",
			Subsystem: "magazine",
			Name:      "articles_published_total",
			Help:      "Total scheduled articles published by the scheduler",
		},
	)

	// ArticlesArchived tracks articles archived by the retention sweep
	ArticlesArchived = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "velora",
			Subsystem: "magazine",
			Name:      "articles_archived_total",
			Help:      "Total published articles archived by the retention sweep",
		},
	)

	// SchedulerPollFailures tracks failed scheduler polls
	SchedulerPollFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "velora",
			Subsystem: "magazine",
			Name:      "scheduler_poll_failures_total",
			Help:      "Total scheduler polls that failed",
		},
	)

	// Payment metrics

	// PaymentRequests tracks charge attempts by result
	PaymentRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "velora",
			Subsystem: "payment",
			Name:      "requests_total",
			Help:      "Total payment provider requests",
		},
		[]string{"result"}, // result: success, declined, unavailable
	)

	// PaymentDuration tracks provider call latency
	PaymentDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "velora",
			Subsystem: "payment",
			Name:      "request_duration_seconds",
			Help:      "Time for a payment provider round trip",
			Buckets:   prometheus.DefBuckets,
		},
	)

	// PaymentBreakerState tracks circuit breaker state
	PaymentBreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "velora",
			Subsystem: "payment",
			Name:      "breaker_state",
			Help:      "Payment circuit breaker state (0=closed, 1=open, 2=half-open)",
		},
	)

	// Order metrics

	// OrdersPlaced tracks orders created from carts
	OrdersPlaced = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "velora",
			Subsystem: "orders",
			Name:      "placed_total",
			Help:      "Total orders placed",
		},
	)

	// OrdersPaid tracks orders successfully paid
	OrdersPaid = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "velora",
			Subsystem: "orders",
			Name:      "paid_total",
			Help:      "Total orders paid",
		},
	)

	// Event metrics

	// EventsPublished tracks domain events by subject and result
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "velora",
			Subsystem: "events",
			Name:      "published_total",
			Help:      "Total domain events published",
		},
		[]string{"subject", "result"},
	)
)

// Circuit breaker state values for PaymentBreakerState
const (
	BreakerClosed   = 0
	BreakerOpen     = 1
	BreakerHalfOpen = 2
)
