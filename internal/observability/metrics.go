// Package observability provides metrics and tracing instrumentation.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// VotesApplied counts vote deltas applied by target kind and direction.
	VotesApplied = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ember_votes_applied_total",
		Help: "Total number of vote deltas applied",
	}, []string{"target", "direction"})

	// AuthorizationDenials counts policy denials by action class.
	AuthorizationDenials = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ember_authorization_denials_total",
		Help: "Total number of authorization denials by action",
	}, []string{"action"})

	// CacheRequests counts cache lookups by key prefix and outcome (hit/miss).
	CacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ember_cache_requests_total",
		Help: "Total number of cache lookups by outcome",
	}, []string{"prefix", "outcome"})

	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ember_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})
)
