// Package metrics exposes the service's prometheus collectors.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration observes request latency per route
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "habit_tracker",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	// HabitOperations counts habit writes and reads by outcome.
	// result is "ok" or the error kind.
	HabitOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "habit_tracker",
			Name:      "habit_operations_total",
			Help:      "Habit operations by operation and result",
		},
		[]string{"operation", "result"},
	)

	// CacheLookups counts redis cache hits and misses per cache
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "habit_tracker",
			Name:      "cache_lookups_total",
			Help:      "Cache lookups by cache name and outcome",
		},
		[]string{"cache", "outcome"},
	)
)

// RecordHTTPRequest records the latency of one request
func RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, strconv.Itoa(status)).Observe(duration.Seconds())
}

// RecordHabitOperation counts one habit operation
func RecordHabitOperation(operation, result string) {
	HabitOperations.WithLabelValues(operation, result).Inc()
}

// RecordCacheLookup counts one cache lookup
func RecordCacheLookup(cache string, hit bool) {
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	CacheLookups.WithLabelValues(cache, outcome).Inc()
}
