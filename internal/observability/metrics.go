// Package observability provides Prometheus metrics for momentum. The CLI is
// short lived, so metrics are pushed to a Pushgateway on exit rather than
// scraped.
package observability

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

const namespace = "momentum"

// Metrics holds all Prometheus metrics for momentum. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	ActivitiesTotal  *prometheus.CounterVec
	TimeEntriesTotal *prometheus.CounterVec
	TasksCloned      prometheus.Histogram
	TrackedSeconds   prometheus.Counter
	ErrorsTotal      *prometheus.CounterVec

	registry *prometheus.Registry
}

// New creates and registers all metrics on a private registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		ActivitiesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "activities_total",
				Help:      "Activity lifecycle events by event (created, cloned, completed, deleted).",
			},
			[]string{"event"},
		),
		TimeEntriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "time_entries_total",
				Help:      "Time entries opened and closed.",
			},
			[]string{"event"},
		),
		TasksCloned: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "clone_tasks",
				Help:      "Number of tasks copied per template clone.",
				Buckets:   []float64{0, 1, 2, 5, 10, 20, 50},
			},
		),
		TrackedSeconds: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "tracked_seconds_total",
				Help:      "Seconds of work recorded by closed time entries.",
			},
		),
		ErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "errors_total",
				Help:      "Failed operations by operation and error code.",
			},
			[]string{"operation", "code"},
		),
		registry: reg,
	}

	reg.MustRegister(m.ActivitiesTotal)
	reg.MustRegister(m.TimeEntriesTotal)
	reg.MustRegister(m.TasksCloned)
	reg.MustRegister(m.TrackedSeconds)
	reg.MustRegister(m.ErrorsTotal)

	return m
}

// Registry exposes the registry the metrics are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordActivity counts an activity lifecycle event.
func (m *Metrics) RecordActivity(event string) {
	if m == nil {
		return
	}
	m.ActivitiesTotal.WithLabelValues(event).Inc()
}

// RecordClone counts a clone and the number of tasks it copied.
func (m *Metrics) RecordClone(tasks int) {
	if m == nil {
		return
	}
	m.ActivitiesTotal.WithLabelValues("cloned").Inc()
	m.TasksCloned.Observe(float64(tasks))
}

// RecordEntryStarted counts an opened time entry.
func (m *Metrics) RecordEntryStarted() {
	if m == nil {
		return
	}
	m.TimeEntriesTotal.WithLabelValues("started").Inc()
}

// RecordEntryStopped counts a closed time entry and the time it covered.
func (m *Metrics) RecordEntryStopped(tracked time.Duration) {
	if m == nil {
		return
	}
	m.TimeEntriesTotal.WithLabelValues("stopped").Inc()
	if tracked > 0 {
		m.TrackedSeconds.Add(tracked.Seconds())
	}
}

// RecordError counts a failed operation.
func (m *Metrics) RecordError(operation, code string) {
	if m == nil {
		return
	}
	m.ErrorsTotal.WithLabelValues(operation, code).Inc()
}

// Push sends the current values to the Pushgateway at url under job,
// replacing what was pushed before for that job.
func (m *Metrics) Push(ctx context.Context, url, job string) error {
	if m == nil || url == "" {
		return nil
	}
	return push.New(url, job).Gatherer(m.registry).PushContext(ctx)
}
