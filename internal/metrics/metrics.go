// Package metrics exposes Prometheus instrumentation for protocol runs.
//
// Collectors live on a package registry rather than the global default so a
// one-shot CLI run can snapshot them with WriteTextfile.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds every sigquery collector.
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

var (
	// RunsTotal counts protocol runs by the requester's final status.
	RunsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sigquery_runs_total",
			Help: "Total number of protocol runs",
		},
		[]string{"status"},
	)
	// OutcomesTotal counts terminal script outcomes per role.
	OutcomesTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sigquery_outcomes_total",
			Help: "Terminal party outcomes by role and status",
		},
		[]string{"role", "status"},
	)
	// SignaturesTotal counts signing operations.
	SignaturesTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sigquery_signatures_total",
			Help: "Documents signed by role and result",
		},
		[]string{"role", "result"},
	)
	// VerificationsTotal counts signature checks.
	VerificationsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sigquery_verifications_total",
			Help: "Signature verifications by role and result",
		},
		[]string{"role", "result"},
	)
	// GateWaitSeconds is the time a party spent parked on a gate.
	GateWaitSeconds = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sigquery_gate_wait_seconds",
			Help:    "Time spent waiting on a barrier gate",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"role", "gate"},
	)
	// StoreQuerySeconds is the latency of store executions.
	StoreQuerySeconds = factory.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sigquery_store_query_seconds",
			Help:    "Store query latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
)

// Result labels.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// ResultLabel maps an error to ResultOK or ResultError.
func ResultLabel(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultOK
}

// WriteTextfile snapshots the registry in the node-exporter textfile format.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, Registry)
}
