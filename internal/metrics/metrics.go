package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestTotal counts HTTP requests by method, route and status.
	RequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aerostock_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
	// RequestDuration is the latency of HTTP requests.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "aerostock_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
	// EvaluationsTotal counts inventory query evaluations.
	EvaluationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "aerostock_inventory_evaluations_total",
			Help: "Total number of inventory query evaluations",
		},
	)
	// RefreshTotal counts snapshot refreshes against the source API.
	RefreshTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aerostock_inventory_refresh_total",
			Help: "Total number of inventory snapshot refreshes",
		},
		[]string{"status"},
	)
	// SnapshotRecords is the size of the current snapshot per record type.
	SnapshotRecords = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "aerostock_inventory_snapshot_records",
			Help: "Number of records in the current inventory snapshot",
		},
		[]string{"type"},
	)
)
