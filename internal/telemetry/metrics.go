package telemetry

import (
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const (
	meterName = "github.com/stafflens/goalboard"
)

// Metrics holds all the OpenTelemetry metric instruments
type Metrics struct {
	// Goals API metrics
	GoalsFetchedTotal    metric.Int64Counter
	GoalsSavedTotal      metric.Int64Counter
	GoalsSaveDeniedTotal metric.Int64Counter
	GoalsSaveErrorsTotal metric.Int64Counter
	GoalsRequestDuration metric.Float64Histogram

	// Audit metrics
	AuditEntriesTotal      metric.Int64Counter
	AuditAppendErrorsTotal metric.Int64Counter

	// Store metrics
	StoreErrorsTotal metric.Int64Counter
}

var (
	once    sync.Once
	metrics *Metrics
)

// GetMetrics returns the singleton Metrics instance, initializing it if necessary
func GetMetrics() *Metrics {
	once.Do(func() {
		metrics = initMetrics()
	})
	return metrics
}

// initMetrics creates and registers all metric instruments
func initMetrics() *Metrics {
	meter := otel.GetMeterProvider().Meter(meterName)

	m := &Metrics{}

	m.GoalsFetchedTotal, _ = meter.Int64Counter(
		"goalboard.goals.fetched.total",
		metric.WithDescription("Total number of goal set fetches"),
		metric.WithUnit("{fetch}"),
	)

	m.GoalsSavedTotal, _ = meter.Int64Counter(
		"goalboard.goals.saved.total",
		metric.WithDescription("Total number of successful goal set saves"),
		metric.WithUnit("{save}"),
	)

	m.GoalsSaveDeniedTotal, _ = meter.Int64Counter(
		"goalboard.goals.save_denied.total",
		metric.WithDescription("Total number of goal saves rejected by the access policy"),
		metric.WithUnit("{save}"),
	)

	m.GoalsSaveErrorsTotal, _ = meter.Int64Counter(
		"goalboard.goals.save_errors.total",
		metric.WithDescription("Total number of goal saves that failed at the storage layer"),
		metric.WithUnit("{error}"),
	)

	m.GoalsRequestDuration, _ = meter.Float64Histogram(
		"goalboard.goals.request.duration",
		metric.WithDescription("Duration of goals API operations"),
		metric.WithUnit("ms"),
	)

	m.AuditEntriesTotal, _ = meter.Int64Counter(
		"goalboard.audit.entries.total",
		metric.WithDescription("Total number of audit entries appended"),
		metric.WithUnit("{entry}"),
	)

	m.AuditAppendErrorsTotal, _ = meter.Int64Counter(
		"goalboard.audit.append_errors.total",
		metric.WithDescription("Total number of audit append failures"),
		metric.WithUnit("{error}"),
	)

	m.StoreErrorsTotal, _ = meter.Int64Counter(
		"goalboard.store.errors.total",
		metric.WithDescription("Total number of storage layer errors"),
		metric.WithUnit("{error}"),
	)

	return m
}
