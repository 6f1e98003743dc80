package httpapi

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fisikaap_server",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route template and status code.",
		},
		[]string{"method", "route", "code"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "fisikaap_server",
			Name:      "http_request_duration_seconds",
			Help:      "Latency of HTTP requests.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	throttledTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "fisikaap_server",
			Name:      "auth_throttled_total",
			Help:      "Login and register requests rejected by the per-IP limiter.",
		},
	)

	submissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fisikaap_server",
			Name:      "answer_submissions_total",
			Help:      "Graded answer submissions by correctness.",
		},
		[]string{"correct"},
	)
)
