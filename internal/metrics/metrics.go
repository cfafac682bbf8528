package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests by method, path and status code",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	OrdersSubmittedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_submitted_total",
			Help: "Orders successfully appended to the sheet",
		},
	)

	PaymentQRsGeneratedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "payment_qrs_generated_total",
			Help: "Payment QR codes generated via the provider",
		},
	)
)
