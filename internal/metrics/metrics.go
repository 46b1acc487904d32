package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ProductsRegistered counts products registered on the ledger through this service.
	ProductsRegistered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tracker_products_registered_total",
		Help: "Total number of products registered on the ledger",
	})

	// MetadataStored counts metadata documents written to the document store.
	MetadataStored = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tracker_metadata_stored_total",
		Help: "Total number of metadata documents stored",
	})

	// TransfersCompleted counts ownership transfers submitted to the ledger.
	TransfersCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tracker_transfers_completed_total",
		Help: "Total number of ownership transfers submitted",
	})

	// ScansResolved counts scanned labels resolved to a product id, by outcome.
	ScansResolved = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tracker_scans_resolved_total",
		Help: "Total number of label scans, partitioned by resolution outcome",
	}, []string{"outcome"})

	// ReconciliationRuns counts dashboard reconciliations, by outcome.
	ReconciliationRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tracker_reconciliation_runs_total",
		Help: "Total number of portfolio reconciliations, partitioned by outcome",
	}, []string{"outcome"})

	// EventsPublished counts outbox events delivered to the queue, by type.
	EventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tracker_events_published_total",
		Help: "Total number of outbox events published to SQS, partitioned by event type",
	}, []string{"event_type"})

	// HTTPRequestsTotal counts HTTP requests, partitioned by method, path and status.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tracker_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	// HTTPRequestDuration observes HTTP request latency.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tracker_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})
)

// Outcome label values.
const (
	OutcomeOK         = "ok"
	OutcomeUnresolved = "unresolved"
	OutcomeError      = "error"
)
