// README: Prometheus collectors for plan generation and HTTP traffic.
package infra

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "tripplan", Name: "http_requests_total", Help: "HTTP requests."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "tripplan", Name: "http_request_duration_seconds",
			Help:    "HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	PlanRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "tripplan", Name: "plan_requests_total", Help: "Plan pipeline runs by outcome."},
		[]string{"outcome"}, // success|ConfigurationError|GenerationError|MalformedOutputError|ValidationError
	)
	GenerationLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "tripplan", Name: "generation_duration_seconds",
			Help:    "Generation backend call duration seconds.",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 120},
		},
		[]string{"provider"},
	)
)

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(HTTPRequests, HTTPLatency, PlanRequests, GenerationLatency)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

func ObservePlan(outcome string) {
	PlanRequests.WithLabelValues(outcome).Inc()
}

func ObserveGeneration(provider string, dur time.Duration) {
	GenerationLatency.WithLabelValues(provider).Observe(dur.Seconds())
}
