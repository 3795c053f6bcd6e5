package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)
	RequestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_latency_seconds",
			Help:    "Latency of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method", "status"},
	)

	// Transactions
	TransactionsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "transactions_created_total",
			Help: "Total pending transactions created",
		},
	)

	// Gateway confirmation paths
	VerifyCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "paystack_verify_calls_total",
			Help: "Synchronous verify calls by gateway-reported status",
		},
		[]string{"status"},
	)
	WebhookEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "paystack_webhook_events_total",
			Help: "Webhook deliveries by outcome",
		},
		[]string{"outcome"}, // received|ignored|applied|unknown_reference|invalid
	)
)

// Handler serves the /metrics endpoint
var Handler = promhttp.Handler

func Init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(RequestLatency)
	prometheus.MustRegister(TransactionsCreated)
	prometheus.MustRegister(VerifyCalls)
	prometheus.MustRegister(WebhookEvents)
}
