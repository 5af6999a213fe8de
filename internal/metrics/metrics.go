package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// HTTPRequestsTotal counts handled requests by route, method and status.
var HTTPRequestsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "nsm_example_http_requests_total",
		Help: "Total number of HTTP requests handled",
	},
	[]string{"route", "method", "status"},
)

// HTTPRequestDuration records request latency by route and method.
var HTTPRequestDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "nsm_example_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"route", "method"},
)

// EventsPublished counts events handed to the broker by type and outcome.
var EventsPublished = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "nsm_example_events_published_total",
		Help: "Events published to the message broker",
	},
	[]string{"type", "result"},
)

func init() {
	prometheus.MustRegister(HTTPRequestsTotal, HTTPRequestDuration, EventsPublished)
}
