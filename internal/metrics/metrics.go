package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "storefront"

var (
	CartMutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cart_mutations_total",
			Help:      "Number of committed cart mutations by operation",
		},
		[]string{"op"},
	)

	Checkouts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkouts_total",
			Help:      "Number of completed checkouts",
		},
	)

	CheckoutRevenue = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkout_revenue_total",
			Help:      "Sum of charged checkout totals in the smallest currency unit",
		},
	)

	OutboxPublished = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "outbox_published_total",
			Help:      "Number of purchase events published to Kafka",
		},
	)

	OutboxFailed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "outbox_failed_total",
			Help:      "Number of purchase events that failed to publish",
		},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Time taken to serve HTTP requests",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

func Register(r prometheus.Registerer) {
	r.MustRegister(
		CartMutations,
		Checkouts,
		CheckoutRevenue,
		OutboxPublished,
		OutboxFailed,
		HTTPRequestDuration,
	)
}
