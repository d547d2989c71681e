package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "http_request_duration_seconds",
	Help:    "HTTP request latency by method, route template and status",
	Buckets: prometheus.DefBuckets,
}, []string{"method", "route", "status"})

// MetricsHandler serves the prometheus exposition format
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
