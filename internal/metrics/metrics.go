// Package metrics exposes Prometheus instrumentation for the audit service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AnalysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auditpro_analyses_total",
			Help: "Total number of audit analyses attempted",
		},
		[]string{"type", "status"},
	)

	AnalysisDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "auditpro_analysis_duration_seconds",
			Help:    "Audit analysis duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10), // 500ms to ~4min
		},
		[]string{"type"},
	)

	ChatRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auditpro_chat_requests_total",
			Help: "Total number of follow-up chat requests",
		},
		[]string{"status"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auditpro_http_requests_total",
			Help: "Total HTTP requests by route and status code",
		},
		[]string{"route", "code"},
	)
)
