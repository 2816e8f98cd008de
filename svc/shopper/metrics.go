package shopper

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	hydrateOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_auth_hydrate_total",
			Help: "Identity hydrations by outcome",
		},
		[]string{"outcome"},
	)

	cartHydrateFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "storefront_cart_hydrate_failures_total",
			Help: "Cart hydrations that failed to read storage",
		},
	)

	operations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_visitor_operations_total",
			Help: "Identity and cart mutations by operation and result",
		},
		[]string{"operation", "result"},
	)

	visitorLockWait = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "storefront_visitor_lock_wait_seconds",
			Help:    "Time spent waiting for the per-device lock",
			Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
		},
	)

	activeVisitors = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "storefront_active_visitors",
			Help: "Devices with a request in flight",
		},
	)
)

func observeOperation(op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	operations.WithLabelValues(op, result).Inc()
}
