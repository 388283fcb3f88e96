package rfpool

import "github.com/prometheus/client_golang/prometheus"

// Metrics mirrors the prometheus counters/gauges pattern used for
// background worker pools elsewhere in the pack (ratelimiter's churn
// telemetry): one gauge per pool for live connection count and queue
// depth, plus a counter for requests dropped by the overflow policy.
var (
	connectionsGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "redpath",
		Subsystem: "pool",
		Name:      "connections",
		Help:      "Number of live connections currently held by a destination's pool.",
	}, []string{"pool_key"})

	queueDepthGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "redpath",
		Subsystem: "pool",
		Name:      "queue_depth",
		Help:      "Number of requests currently waiting in a destination pool's overflow queue.",
	}, []string{"pool_key"})

	droppedCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "redpath",
		Subsystem: "pool",
		Name:      "dropped_total",
		Help:      "Number of requests dropped because a destination pool's overflow queue was full.",
	}, []string{"pool_key"})
)

func init() {
	prometheus.MustRegister(connectionsGauge, queueDepthGauge, droppedCounter)
}
