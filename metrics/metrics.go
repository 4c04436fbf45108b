// Package metrics registers the Prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ComplaintsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "railcare_complaints_created_total",
			Help: "Total number of complaints submitted",
		},
	)

	LifecycleTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "railcare_lifecycle_transitions_total",
			Help: "Total number of complaint lifecycle transitions by action",
		},
		[]string{"action"},
	)

	LifecycleRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "railcare_lifecycle_rejections_total",
			Help: "Lifecycle transitions rejected before mutation, by action and cause",
		},
		[]string{"action", "cause"},
	)

	NotificationsFanout = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "railcare_notifications_fanout_total",
			Help: "Notification rows created by fan-out, by outcome",
		},
		[]string{"outcome"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "railcare_http_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
		},
		[]string{"method", "route"},
	)
)
