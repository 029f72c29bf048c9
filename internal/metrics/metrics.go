// Package metrics registers the portal's Prometheus collectors.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ResultOK        = "ok"
	ResultError     = "error"
	ResultDuplicate = "duplicate"
	ResultSkipped   = "skipped"
)

var (
	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_notifications_total",
			Help: "Notification writes by category and result",
		},
		[]string{"category", "result"},
	)

	JobRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_job_runs_total",
			Help: "Scheduled job runs by job and result",
		},
		[]string{"job", "result"},
	)

	JobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "portal_job_duration_seconds",
			Help:    "Scheduled job duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"job"},
	)

	TriggerEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_trigger_events_total",
			Help: "Document change events handled by the consumer",
		},
		[]string{"event_type", "result"},
	)

	UnmappedStatusTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_unmapped_status_total",
			Help: "Request status changes that have no notification mapping",
		},
		[]string{"status"},
	)

	OutboxPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_outbox_published_total",
			Help: "Outbox events published to Kafka by result",
		},
		[]string{"event_type", "result"},
	)

	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_http_requests_total",
			Help: "HTTP requests by method, route and status",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "portal_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

// ObserveJob records one run of a scheduled job.
func ObserveJob(job string, started time.Time, err error) {
	result := ResultOK
	if err != nil {
		result = ResultError
	}
	JobRunsTotal.WithLabelValues(job, result).Inc()
	JobDuration.WithLabelValues(job).Observe(time.Since(started).Seconds())
}
