// Package metrics collects scan counters in a private Prometheus registry
// and exports them in the text exposition format.
package metrics

import (
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/coregx/acmatch"
)

const namespace = "acmatch"

// Metrics holds the scanner's collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	reg *prometheus.Registry

	files      prometheus.Counter
	fileErrors prometheus.Counter
	bytes      prometheus.Counter
	matches    *prometheus.CounterVec
	latency    prometheus.Histogram

	patterns prometheus.Gauge
	states   prometheus.Gauge
	searches prometheus.Gauge
	rejected prometheus.Gauge
	skipped  prometheus.Gauge
}

// New registers all collectors in a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		reg:        reg,
		files:      f.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: "files_scanned_total"}),
		fileErrors: f.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: "file_errors_total"}),
		bytes:      f.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: "bytes_scanned_total"}),
		matches: f.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: "matches_total"},
			[]string{"pattern"}),
		latency: f.NewHistogram(prometheus.HistogramOpts{Namespace: namespace, Name: "scan_seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10)}),

		patterns: f.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: "automaton_patterns"}),
		states:   f.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: "automaton_states"}),
		searches: f.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: "automaton_searches"}),
		rejected: f.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: "automaton_rejected_searches"}),
		skipped:  f.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: "automaton_skipped_bytes"}),
	}
}

// Registry returns the registry holding every collector.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.reg
}

// ObserveFile records one scanned input of size bytes.
func (m *Metrics) ObserveFile(size int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.files.Inc()
	m.bytes.Add(float64(size))
	m.latency.Observe(elapsed.Seconds())
}

// FileError records an input that could not be scanned.
func (m *Metrics) FileError() {
	if m == nil {
		return
	}
	m.fileErrors.Inc()
}

// AddMatches adds n matches of the named pattern.
func (m *Metrics) AddMatches(pattern string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.matches.WithLabelValues(pattern).Add(float64(n))
}

// SetAutomaton publishes a snapshot of automaton statistics.
func (m *Metrics) SetAutomaton(st acmatch.Stats) {
	if m == nil {
		return
	}
	m.patterns.Set(float64(st.Patterns))
	m.states.Set(float64(st.States))
	m.searches.Set(float64(st.Searches))
	m.rejected.Set(float64(st.Rejected))
	m.skipped.Set(float64(st.SkippedBytes))
}

// WriteFile writes all metrics to path in the Prometheus text format,
// suitable for the node_exporter textfile collector.
func (m *Metrics) WriteFile(path string) error {
	if m == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.reg); err != nil {
		return errors.Wrapf(err, "failed to write metrics to %s", path)
	}
	return nil
}
