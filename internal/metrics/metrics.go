// Package metrics provides Prometheus metrics for the notesync client.
package metrics

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

var (
	// Sync operation metrics
	syncOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notesync_operations_total",
			Help: "Total number of sync engine operations",
		},
		[]string{"operation", "status"},
	)

	syncOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "notesync_operation_duration_seconds",
			Help:    "Sync engine operation duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	syncInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "notesync_operations_in_flight",
			Help: "Number of sync engine operations currently running",
		},
	)

	// Tracker metrics
	unsyncedNotes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "notesync_unsynced_notes",
			Help: "Number of edited plus deleted notes awaiting push",
		},
	)

	// Scheduler metrics
	pushesScheduledTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "notesync_pushes_scheduled_total",
			Help: "Total debounced pushes that fired",
		},
	)

	// Event metrics
	eventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notesync_events_total",
			Help: "Total events published",
		},
		[]string{"topic"},
	)

	eventsDroppedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notesync_events_dropped_total",
			Help: "Total events dropped for slow subscribers",
		},
		[]string{"topic"},
	)
)

// RecordOperation records a finished sync engine operation.
func RecordOperation(operation string, duration time.Duration, success bool) {
	syncOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
	status := "success"
	if !success {
		status = "error"
	}
	syncOperationsTotal.WithLabelValues(operation, status).Inc()
}

// IncInFlight marks an operation as started.
func IncInFlight() {
	syncInFlight.Inc()
}

// DecInFlight marks an operation as finished.
func DecInFlight() {
	syncInFlight.Dec()
}

// SetUnsyncedNotes sets the current tracker size.
func SetUnsyncedNotes(size int) {
	unsyncedNotes.Set(float64(size))
}

// RecordScheduledPush records a debounced push firing.
func RecordScheduledPush() {
	pushesScheduledTotal.Inc()
}

// RecordEvent records an event published on topic.
func RecordEvent(topic string, dropped int) {
	eventsTotal.WithLabelValues(topic).Inc()
	if dropped > 0 {
		eventsDroppedTotal.WithLabelValues(topic).Add(float64(dropped))
	}
}

// Gather returns every notesync metric family currently registered.
func Gather() ([]*dto.MetricFamily, error) {
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return nil, err
	}

	out := families[:0]
	for _, f := range families {
		if strings.HasPrefix(f.GetName(), "notesync_") {
			out = append(out, f)
		}
	}
	return out, nil
}
