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
			Name:    "http_requests_latency_seconds",
			Help:    "Latency of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	// Auth
	LoginsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_logins_total",
			Help: "Login and registration attempts by outcome",
		},
		[]string{"kind", "result"}, // kind: login|register, result: success|failure
	)
	TokenRejections = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "auth_token_rejections_total",
			Help: "Bearer tokens rejected as invalid, expired or unknown",
		},
	)

	// Events
	EventOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calendar_event_operations_total",
			Help: "Event operations by type and outcome",
		},
		[]string{"op", "result"}, // result: ok|forbidden|error
	)

	// Weather upstream
	WeatherUpstreamErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "weather_upstream_errors_total",
			Help: "Failed calls to the weather provider",
		},
	)
)

// Handler serves /metrics.
var Handler = promhttp.Handler

func Init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(RequestLatency)
	prometheus.MustRegister(LoginsTotal)
	prometheus.MustRegister(TokenRejections)
	prometheus.MustRegister(EventOps)
	prometheus.MustRegister(WeatherUpstreamErrors)
}

func Result(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}
