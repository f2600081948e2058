package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_http_requests_total",
		Help: "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ledger_http_request_duration_seconds",
		Help:    "HTTP request latency by method and route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	ReportsGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_reports_generated_total",
		Help: "Client PDF reports by outcome.",
	}, []string{"outcome"})

	ReportPages = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "ledger_report_pages",
		Help:    "Pages per generated report.",
		Buckets: []float64{1, 2, 3, 5, 8, 13, 21},
	})

	ClientDeletes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_client_deletes_total",
		Help: "Client deletions by outcome (ok, rolled_back, partial).",
	}, []string{"outcome"})

	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_cache_lookups_total",
		Help: "Summary cache lookups by result.",
	}, []string{"result"})
)
