// internal/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	CartItemsExpiredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cart_items_expired_total",
		Help: "Total number of cart rows deleted by the expiry janitor",
	})

	ProductsReconciledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "products_reconciled_total",
		Help: "Total number of products whose seller reference was back-filled",
	})
)
