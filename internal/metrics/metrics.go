// Package metrics collects training metrics in a private prometheus registry.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the training metrics. A nil *Metrics records nothing.
type Metrics struct {
	registry *prometheus.Registry

	TreesBuilt  *prometheus.CounterVec   // method
	TreeDepth   *prometheus.HistogramVec // method
	TreeLeaves  *prometheus.HistogramVec // method
	FitDuration *prometheus.HistogramVec // method
	Accuracy    *prometheus.GaugeVec     // method, set
}

// New returns metrics registered in a fresh registry.
func New() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.TreesBuilt = m.NewCounterVec(prometheus.CounterOpts{
		Name: "dtree_trees_built_total",
		Help: "Number of decision trees fitted",
	}, []string{"method"})

	m.TreeDepth = m.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dtree_tree_depth",
		Help:    "Depth of fitted decision trees",
		Buckets: prometheus.LinearBuckets(1, 2, 10),
	}, []string{"method"})

	m.TreeLeaves = m.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dtree_tree_leaves",
		Help:    "Number of leaves of fitted decision trees",
		Buckets: prometheus.ExponentialBuckets(1, 4, 8),
	}, []string{"method"})

	m.FitDuration = m.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dtree_fit_duration_seconds",
		Help:    "Time spent fitting a model",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})

	m.Accuracy = m.NewGaugeVec(prometheus.GaugeOpts{
		Name: "dtree_accuracy_ratio",
		Help: "Accuracy of the last fitted model",
	}, []string{"method", "set"})

	return m
}

func (m *Metrics) NewCounterVec(opts prometheus.CounterOpts, labelNames []string) *prometheus.CounterVec {
	cv := prometheus.NewCounterVec(opts, labelNames)
	m.registry.MustRegister(cv)
	return cv
}

func (m *Metrics) NewGaugeVec(opts prometheus.GaugeOpts, labelNames []string) *prometheus.GaugeVec {
	gv := prometheus.NewGaugeVec(opts, labelNames)
	m.registry.MustRegister(gv)
	return gv
}

func (m *Metrics) NewHistogramVec(opts prometheus.HistogramOpts, labelNames []string) *prometheus.HistogramVec {
	hv := prometheus.NewHistogramVec(opts, labelNames)
	m.registry.MustRegister(hv)
	return hv
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// ObserveTree records one fitted tree.
func (m *Metrics) ObserveTree(method string, depth, leaves int) {
	if m == nil {
		return
	}
	m.TreesBuilt.WithLabelValues(method).Inc()
	m.TreeDepth.WithLabelValues(method).Observe(float64(depth))
	m.TreeLeaves.WithLabelValues(method).Observe(float64(leaves))
}

// ObserveFit records the duration of fitting a whole model.
func (m *Metrics) ObserveFit(method string, d time.Duration) {
	if m == nil {
		return
	}
	m.FitDuration.WithLabelValues(method).Observe(d.Seconds())
}

// SetAccuracy records the accuracy of a model on a data set, "test" or "oob".
func (m *Metrics) SetAccuracy(method, set string, acc float64) {
	if m == nil {
		return
	}
	m.Accuracy.WithLabelValues(method, set).Set(acc)
}

// WriteToTextfile writes the registry in the text exposition format, for
// pickup by the node exporter textfile collector.
func (m *Metrics) WriteToTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
