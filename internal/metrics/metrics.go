// Package metrics holds the Prometheus collectors of the engine. Labels are
// kept low-cardinality: zones and route patterns, never ids.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Serve results.
const (
	ServeServed    = "served"
	ServeNoContent = "no_content"
	ServeError     = "error"
)

// UnknownZone labels serves for zone codes that are not in the catalog, so
// arbitrary path segments never become series.
const UnknownZone = "unknown"

var (
	serveTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ads_serve_total",
			Help: "Ad serve requests by zone and result",
		},
		[]string{"zone", "result"},
	)

	budgetExhaustedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ads_budget_exhausted_total",
			Help: "Debits refused because the campaign had no budget or target left",
		},
	)

	webhookTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payments_webhook_total",
			Help: "Payment webhooks by outcome",
		},
		[]string{"result"},
	)

	transitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campaign_transitions_total",
			Help: "Campaign status changes by target status",
		},
		[]string{"to"},
	)

	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	httpInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_inflight_requests",
			Help: "Number of HTTP requests currently being served",
		},
	)
)

func Serve(zone, result string) {
	serveTotal.WithLabelValues(zone, result).Inc()
}

func BudgetExhausted() {
	budgetExhaustedTotal.Inc()
}

func Webhook(result string) {
	webhookTotal.WithLabelValues(result).Inc()
}

func Transition(to string) {
	transitionsTotal.WithLabelValues(to).Inc()
}

// InFlight increments the in-flight gauge and returns its decrement.
func InFlight() func() {
	httpInFlight.Inc()
	return httpInFlight.Dec
}

func ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	labels := prometheus.Labels{
		"method": method,
		"route":  route,
		"status": strconv.Itoa(status),
	}
	httpRequestsTotal.With(labels).Inc()
	httpRequestDuration.With(labels).Observe(elapsed.Seconds())
}
