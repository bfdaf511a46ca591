package metrics

import (
	"regexp"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestDuration tracks HTTP request duration in seconds by method, path, status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts HTTP requests by method, path, status.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// AccessDecisions counts recorded access events by action (entry, exit, denied).
	AccessDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "access_decisions_total",
			Help: "Total number of recorded access events by action",
		},
		[]string{"action"},
	)

	// AuditWriteFailures counts activity trail writes that failed. Failed
	// writes do not fail their request, so this counter is the main signal
	// that auditing is degraded.
	AuditWriteFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "audit_write_failures_total",
			Help: "Total number of failed activity audit writes",
		},
	)
)

var numericPathSegment = regexp.MustCompile(`/[0-9]+(/|$)`)

func init() {
	prometheus.MustRegister(RequestDuration, RequestTotal, AccessDecisions, AuditWriteFailures)
}

// NormalizePath reduces label cardinality by replacing numeric path segments
// with {id}, e.g. /v1/areas/12/access -> /v1/areas/{id}/access.
func NormalizePath(path string) string {
	return numericPathSegment.ReplaceAllString(path, "/{id}$1")
}

// RecordRequest records duration and count for one HTTP request.
func RecordRequest(method, path string, statusCode int, durationSeconds float64) {
	path = NormalizePath(path)
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, path, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, path, status).Inc()
}

// IncAccessDecision counts one recorded access event.
func IncAccessDecision(action string) {
	AccessDecisions.WithLabelValues(action).Inc()
}

// IncAuditWriteFailure counts one failed activity write.
func IncAuditWriteFailure() {
	AuditWriteFailures.Inc()
}
