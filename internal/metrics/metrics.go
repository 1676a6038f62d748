// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// EngagementTotal counts successful engagement mutations by kind and outcome.
	EngagementTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cineshelf_engagement_total",
			Help: "Engagement mutations, by kind and outcome.",
		},
		[]string{"kind", "outcome"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cineshelf_api_request_duration_seconds",
			Help:    "HTTP request duration in seconds, by endpoint and method.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	RequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "cineshelf_requests_in_flight",
			Help: "Number of HTTP requests currently being served.",
		},
	)

	RateLimited = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cineshelf_rate_limited_total",
			Help: "Requests rejected by a rate limiter.",
		},
		[]string{"limiter"},
	)

	CatalogRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cineshelf_catalog_requests_total",
			Help: "Catalog API requests, by endpoint and result.",
		},
		[]string{"endpoint", "result"},
	)

	CatalogDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cineshelf_catalog_request_duration_seconds",
			Help:    "Catalog API request duration, including retries.",
			Buckets: prometheus.DefBuckets,
		},
	)

	// FollowCounterDivergence counts reads that found stored follow counters
	// disagreeing with user_follows.
	FollowCounterDivergence = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cineshelf_follow_counter_divergence_total",
			Help: "Follow counter reads that found a mismatch.",
		},
	)

	// CircuitBreakerState is 0 closed, 1 half-open, 2 open.
	CircuitBreakerState = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cineshelf_circuit_breaker_state",
			Help: "Circuit breaker state (0 closed, 1 half-open, 2 open).",
		},
		[]string{"name"},
	)
)

var registerOnce sync.Once

// Register adds all collectors, plus pool gauges when pool is set, to the
// default registry. Later calls are no-ops.
func Register(pool *pgxpool.Pool) {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			EngagementTotal,
			RequestDuration,
			RequestsInFlight,
			RateLimited,
			CatalogRequests,
			CatalogDuration,
			CircuitBreakerState,
			FollowCounterDivergence,
		)

		if pool == nil {
			return
		}
		prometheus.MustRegister(
			prometheus.NewGaugeFunc(
				prometheus.GaugeOpts{
					Name: "cineshelf_db_connection_pool_active",
					Help: "Number of active database connections.",
				},
				func() float64 { return float64(pool.Stat().AcquiredConns()) },
			),
			prometheus.NewGaugeFunc(
				prometheus.GaugeOpts{
					Name: "cineshelf_db_connection_pool_idle",
					Help: "Number of idle database connections.",
				},
				func() float64 { return float64(pool.Stat().IdleConns()) },
			),
		)
	})
}

// Engagement records one engagement mutation.
func Engagement(kind string, active bool) {
	outcome := "off"
	if active {
		outcome = "on"
	}
	EngagementTotal.WithLabelValues(kind, outcome).Inc()
}
