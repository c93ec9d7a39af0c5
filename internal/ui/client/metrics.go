package client

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "komfort_client",
			Name:      "requests_total",
			Help:      "API requests issued by the client, by outcome (ok or the error kind).",
		},
		[]string{"resource", "method", "outcome"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "komfort_client",
			Name:      "request_duration_seconds",
			Help:      "Time from sending an API request to reading its body.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"resource", "method"},
	)
)
