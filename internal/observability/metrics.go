package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce           sync.Once
	httpRequestsTotal      *prometheus.CounterVec
	httpLatencySeconds     *prometheus.HistogramVec
	workflowMutationsTotal *prometheus.CounterVec
	auditDroppedTotal      *prometheus.CounterVec
	uploadsRejectedTotal   *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors.
func RegisterMetrics() {
	registerOnce.Do(func() {
		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "coursehub_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		httpLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "coursehub_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		workflowMutationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "coursehub_workflow_mutations_total",
			Help: "Total number of successful domain mutations by action.",
		}, []string{"action"})

		auditDroppedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "coursehub_audit_dropped_total",
			Help: "Total number of audit entries that could not be recorded.",
		}, []string{"action"})

		uploadsRejectedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "coursehub_uploads_rejected_total",
			Help: "Total number of uploads rejected before storage by reason.",
		}, []string{"reason"})

		prometheus.MustRegister(httpRequestsTotal, httpLatencySeconds, workflowMutationsTotal, auditDroppedTotal, uploadsRejectedTotal)
	})
}

// HTTPRequests exposes the request counter.
func HTTPRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return httpRequestsTotal
}

// HTTPLatency exposes the request latency histogram.
func HTTPLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return httpLatencySeconds
}

// WorkflowMutations exposes the counter for successful domain mutations.
func WorkflowMutations() *prometheus.CounterVec {
	RegisterMetrics()
	return workflowMutationsTotal
}

// AuditDropped exposes the counter for dropped audit entries.
func AuditDropped() *prometheus.CounterVec {
	RegisterMetrics()
	return auditDroppedTotal
}

// UploadsRejected exposes the counter for uploads rejected at the gate.
func UploadsRejected() *prometheus.CounterVec {
	RegisterMetrics()
	return uploadsRejectedTotal
}
