package metrics

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"setrunner/internal/domain"
	"setrunner/internal/execution"
)

const (
	MetricsNamespace = "setrunner"
)

var _ execution.Recorder = &Metrics{}

// Metrics records case and set outcomes of one run
type Metrics struct {
	registry *prometheus.Registry
	runID    string

	casesTotal   *prometheus.CounterVec
	caseDuration *prometheus.HistogramVec
	setsTotal    *prometheus.CounterVec
	errorsTotal  *prometheus.CounterVec
}

// New creates Metrics on a private registry so that several runs in one
// process (tests) do not collide
func New(runID string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		runID:    runID,
		casesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Name:      "cases_total",
			Help:      "Count of executed test cases",
		}, []string{
			"run_id",
			"set",
			"result",
		}),
		caseDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: MetricsNamespace,
			Name:      "case_duration_seconds",
			Help:      "Duration of test cases including their hooks",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}, []string{
			"run_id",
			"set",
		}),
		setsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Name:      "sets_total",
			Help:      "Count of executed test sets",
		}, []string{
			"run_id",
			"result",
		}),
		errorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Name:      "run_errors_total",
			Help:      "Count of configuration and environment hook errors",
		}, []string{
			"run_id",
			"kind",
		}),
	}
	m.registry.MustRegister(m.casesTotal, m.caseDuration, m.setsTotal, m.errorsTotal)
	return m
}

// Registry returns the registry holding the run's collectors
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordCase implements execution.Recorder
func (m *Metrics) RecordCase(set string, result domain.TestCaseResult) {
	m.casesTotal.WithLabelValues(m.runID, set, resultLabel(result.Success)).Inc()
	m.caseDuration.WithLabelValues(m.runID, set).Observe(result.Duration.Seconds())
}

// RecordSet implements execution.Recorder
func (m *Metrics) RecordSet(result domain.TestSetResult) {
	m.setsTotal.WithLabelValues(m.runID, resultLabel(len(result.Failed()) == 0)).Inc()
}

// RecordEntryError implements execution.Recorder
func (m *Metrics) RecordEntryError(err error) {
	m.errorsTotal.WithLabelValues(m.runID, errorKind(err)).Inc()
}

// WriteTextfile writes the collected metrics in the text exposition format,
// suitable for the node_exporter textfile collector
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}

func resultLabel(passed bool) string {
	if passed {
		return "pass"
	}
	return "fail"
}

func errorKind(err error) string {
	var hookErr *execution.HookError
	switch {
	case execution.IsConfigError(err):
		return "config"
	case errors.As(err, &hookErr):
		return "hook_" + hookErr.Phase
	default:
		return "other"
	}
}
