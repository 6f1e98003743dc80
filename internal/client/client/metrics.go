package client

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeSuccess        = "success"
	outcomeNetworkError   = "network_error"
	outcomeSessionExpired = "session_expired"
	outcomeHTTPError      = "http_error"
	outcomeMalformed      = "malformed"
	outcomeOther          = "other"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fisikaap_client",
			Name:      "requests_total",
			Help:      "API requests by HTTP method and outcome.",
		},
		[]string{"method", "outcome"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "fisikaap_client",
			Name:      "request_duration_seconds",
			Help:      "Latency of API requests, including failed ones.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	sessionExpiredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "fisikaap_client",
			Name:      "session_expired_total",
			Help:      "HTTP 401 responses that purged the local session.",
		},
	)
)

func outcomeOf(err error) string {
	if err == nil {
		return outcomeSuccess
	}
	var (
		ne *NetworkError
		se *SessionExpiredError
		he *HTTPError
		me *MalformedResponseError
	)
	switch {
	case errors.As(err, &se):
		return outcomeSessionExpired
	case errors.As(err, &ne):
		return outcomeNetworkError
	case errors.As(err, &he):
		return outcomeHTTPError
	case errors.As(err, &me):
		return outcomeMalformed
	}
	return outcomeOther
}
