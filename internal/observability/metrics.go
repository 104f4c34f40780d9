package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// StoreOperationLatency records document store latency by backend and operation.
	StoreOperationLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "socialnet_store_operation_latency_seconds",
		Help:    "Document store operation latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"backend", "operation"})

	// CleanupFailures counts secondary reference updates that could not be applied.
	CleanupFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "socialnet_reference_cleanup_failures_total",
		Help: "Total number of cross-reference updates that failed after the primary write",
	}, []string{"operation"})

	// WebSocketConnectionsTotal tracks open event-stream connections.
	WebSocketConnectionsTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "socialnet_websocket_connections_total",
		Help: "Number of open websocket event-stream connections",
	})

	// WebSocketEventsTotal counts domain events by type and delivery path.
	WebSocketEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "socialnet_websocket_events_total",
		Help: "Total number of domain events dispatched to websocket clients",
	}, []string{"type", "path"})

	// WebSocketBackpressureDrops counts messages dropped for slow clients.
	WebSocketBackpressureDrops = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "socialnet_websocket_backpressure_drops_total",
		Help: "Total number of websocket messages dropped due to backpressure",
	}, []string{"reason"})
)

// TrackStoreOp returns a function that records store latency when called (e.g. defer).
func TrackStoreOp(backend, operation string) func() {
	start := time.Now()
	return func() {
		StoreOperationLatency.WithLabelValues(backend, operation).Observe(time.Since(start).Seconds())
	}
}

// RecordCleanupFailure increments the cleanup failure counter for operation.
func RecordCleanupFailure(operation string) {
	CleanupFailures.WithLabelValues(operation).Inc()
}
