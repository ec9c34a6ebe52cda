package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// StoreOpLatency records record-store call latency by operation and collection.
	StoreOpLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "satellite_store_op_latency_seconds",
		Help:    "Record store call latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "collection"})

	// StoreConflicts counts uniqueness-constraint conflicts by collection.
	StoreConflicts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "satellite_store_conflicts_total",
		Help: "Total uniqueness-constraint conflicts by collection",
	}, []string{"collection"})

	// CacheHits counts feed cache hits and misses.
	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "satellite_cache_results_total",
		Help: "Cache lookups by result (hit or miss)",
	}, []string{"result"})

	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "satellite_redis_error_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})
)

// ObserveStoreOp records the latency of one store call.
func ObserveStoreOp(operation, collection string, start time.Time) {
	StoreOpLatency.WithLabelValues(operation, collection).Observe(time.Since(start).Seconds())
}
