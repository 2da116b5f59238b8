// Package metrics records client-side counters for API calls, exports and
// clipboard writes on a private Prometheus registry.
//
// A nil *Recorder is valid and records nothing, so components take an
// optional recorder without nil checks at every call site.
package metrics

import (
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/benjaminpeng/sql-audit/pkg/model"
)

const namespace = "sqlaudit"

// Recorder owns the registry and every collector registered on it.
type Recorder struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	exportsTotal    *prometheus.CounterVec
	copiesTotal     *prometheus.CounterVec
	violations      *prometheus.GaugeVec
}

// New creates a recorder with its own registry (the default registry is
// left untouched).
func New() (*Recorder, error) {
	r := &Recorder{registry: prometheus.NewRegistry()}

	r.requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_requests_total",
			Help:      "Audit service requests by operation and HTTP status",
		},
		[]string{"op", "status"},
	)
	r.requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "api_request_duration_seconds",
			Help:      "Audit service request latency",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"op"},
	)
	r.exportsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exports_total",
			Help:      "Report exports by format and delivery path",
		},
		[]string{"format", "via"},
	)
	r.copiesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "clipboard_copies_total",
			Help:      "Clipboard writes by method",
		},
		[]string{"method"},
	)
	r.violations = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "report_violations",
			Help:      "Violations in the most recently loaded report by severity",
		},
		[]string{"severity"},
	)

	for _, c := range []prometheus.Collector{
		r.requestsTotal, r.requestDuration, r.exportsTotal, r.copiesTotal, r.violations,
	} {
		if err := r.registry.Register(c); err != nil {
			return nil, fmt.Errorf("register collector: %w", err)
		}
	}
	return r, nil
}

// Registry exposes the private registry for gathering.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// ObserveRequest records one API call. status is 0 when no response was
// received.
func (r *Recorder) ObserveRequest(op string, status int, elapsed time.Duration) {
	if r == nil {
		return
	}
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	r.requestsTotal.WithLabelValues(op, label).Inc()
	r.requestDuration.WithLabelValues(op).Observe(elapsed.Seconds())
}

// ObserveExport records a finished export. via is "remote" or "fallback".
func (r *Recorder) ObserveExport(format, via string) {
	if r == nil {
		return
	}
	r.exportsTotal.WithLabelValues(format, via).Inc()
}

// ObserveCopy records a clipboard write by method.
func (r *Recorder) ObserveCopy(method string) {
	if r == nil {
		return
	}
	r.copiesTotal.WithLabelValues(method).Inc()
}

// ObserveReport sets the per-severity gauges from a report's declared counts.
func (r *Recorder) ObserveReport(report *model.ScanReport) {
	if r == nil || report == nil {
		return
	}
	r.violations.WithLabelValues(string(model.Error)).Set(float64(report.ErrorCount))
	r.violations.WithLabelValues(string(model.Warning)).Set(float64(report.WarningCount))
	r.violations.WithLabelValues(string(model.Info)).Set(float64(report.InfoCount))
}

// WriteFile dumps the registry in text exposition format, for the node
// exporter textfile collector. Writing is atomic.
func (r *Recorder) WriteFile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics file: %w", err)
	}
	return nil
}
