// internal/metrics/prom.go
// Package metrics centralises Prometheus metric registration for the
// gateway binary. It exposes typed collectors so code can remain
// import-cycle-free, registering with the global prometheus.DefaultRegisterer
// which callers expose via the /metrics HTTP handler.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	// Gauge metrics ---------------------------------------------------------
	ActiveConnections = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "appgateway",
		Subsystem: "connections",
		Name:      "active",
		Help:      "Current number of accepted WebSocket connections.",
	})

	ActiveSubscriptions = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "appgateway",
		Subsystem: "subscriptions",
		Name:      "active",
		Help:      "Current number of subscription entries across all events.",
	})

	UpstreamSubscriptionsActive = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "appgateway",
		Subsystem: "upstream",
		Name:      "subscriptions_active",
		Help:      "Current number of deduplicated upstream subscriptions.",
	})

	// Counter metrics -------------------------------------------------------
	RequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "appgateway",
		Subsystem: "dispatch",
		Name:      "requests_total",
		Help:      "Total number of dispatched requests, by terminal status.",
	}, []string{"status"})

	DownstreamErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "appgateway",
		Subsystem: "dispatch",
		Name:      "downstream_errors_total",
		Help:      "Total number of downstream invoke failures (bridge Mode A/B).",
	})

	PermissionDenialsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "appgateway",
		Subsystem: "dispatch",
		Name:      "permission_denials_total",
		Help:      "Total number of requests rejected by a permission-group check.",
	})

	// Histogram metrics -------------------------------------------------------
	DispatchLatencySeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "appgateway",
		Subsystem: "dispatch",
		Name:      "latency_seconds",
		Help:      "End-to-end dispatch latency from receipt to response submission.",
		Buckets:   prometheus.DefBuckets,
	})
)

// Register exports all metrics; safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			ActiveConnections,
			ActiveSubscriptions,
			UpstreamSubscriptionsActive,
			RequestsTotal,
			DownstreamErrorsTotal,
			PermissionDenialsTotal,
			DispatchLatencySeconds,
		)
	})
}
