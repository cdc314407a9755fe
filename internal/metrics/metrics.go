// Package metrics exposes prometheus counters for optimistic mutations and
// change-feed events.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for rollback attempts
const (
	OutcomeRolledBack = "rolled_back"
	OutcomeSuperseded = "superseded"
)

// Metrics holds the tracker's collectors. Collectors are registered on the
// registerer passed to New so tests can use an isolated registry.
type Metrics struct {
	// MutationsApplied counts optimistic local applies, by table and op
	MutationsApplied *prometheus.CounterVec
	// MutationFailures counts remote writes that failed, by table, op and
	// whether the rollback ran or was skipped because the entry was superseded
	MutationFailures *prometheus.CounterVec
	// Reconciled counts temporary entries replaced by authoritative inserts
	Reconciled *prometheus.CounterVec
	// ChangeEvents counts change-feed events applied, by table and type
	ChangeEvents *prometheus.CounterVec
	// RemoteWriteDuration observes remote write latency in seconds
	RemoteWriteDuration *prometheus.HistogramVec
	// HTTPRequestDuration observes local API latency, by method, route and status
	HTTPRequestDuration *prometheus.HistogramVec
}

// New creates and registers the collectors
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		MutationsApplied: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tracker_mutations_applied_total",
				Help: "Optimistic mutations applied to the local mirror",
			},
			[]string{"table", "op"},
		),
		MutationFailures: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tracker_mutation_failures_total",
				Help: "Remote writes that failed after an optimistic apply",
			},
			[]string{"table", "op", "outcome"},
		),
		Reconciled: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tracker_mutations_reconciled_total",
				Help: "Temporary entries superseded by authoritative inserts",
			},
			[]string{"table"},
		),
		ChangeEvents: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tracker_change_events_total",
				Help: "Change-feed events applied to the local mirror",
			},
			[]string{"table", "type"},
		),
		RemoteWriteDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tracker_remote_write_duration_seconds",
				Help:    "Remote write latency in seconds",
				Buckets: prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms to ~10s
			},
			[]string{"table", "op"},
		),
		HTTPRequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tracker_http_request_duration_seconds",
				Help:    "Local API request latency in seconds",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
			},
			[]string{"method", "path", "status"},
		),
	}
}

// NewNop returns collectors registered on a throwaway registry
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}
