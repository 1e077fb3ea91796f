package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	Requests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pgrest_client_requests_total",
			Help: "Total number of PostgREST requests by method and status (\"error\" when no response was received)",
		},
		[]string{"method", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pgrest_client_request_duration_seconds",
			Help:    "Duration of PostgREST requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	Retries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pgrest_client_retries_total",
			Help: "Total number of retried HTTP requests by method",
		},
		[]string{"method"},
	)
)

// ObserveRequest records one executed request.
func ObserveRequest(method, status string, latency time.Duration) {
	Requests.WithLabelValues(method, status).Inc()
	RequestDuration.WithLabelValues(method).Observe(latency.Seconds())
}
