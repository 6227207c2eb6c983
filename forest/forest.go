// Package forest implements bagging and random forest ensembles of decision
// trees. Every member is fit to a bootstrap sample of the training data and
// the ensemble answers by an unweighted majority vote.
package forest

import (
	"errors"
	"log/slog"
	"math"
	"time"

	"github.com/wlattner/dtree/internal/metrics"
)

var ErrNumTrees = errors.New("number of trees must be positive")

// RatioClamp bounds the feature ratio handed to random forest members.
type RatioClamp int

const (
	// ClampAtMostOne uses min(ratio, 1), so a ratio below one restricts
	// every split to a random attribute subset.
	ClampAtMostOne RatioClamp = iota
	// ClampAtLeastOne uses max(ratio, 1). Any ratio at or below one then
	// becomes one and members select by gain ratio over all attributes,
	// which reproduces older results.
	ClampAtLeastOne
)

// Option configures a Classifier.
type Option func(forestConfiger)

type forestConfiger interface {
	setNumTrees(n int)
	setFeatureRatio(r float64)
	setClamp(c RatioClamp)
	setNumWorkers(n int)
	setComputeOOB()
	setSeed(n int64)
	setLogger(l *slog.Logger)
	setMetrics(m *metrics.Metrics)
}

// methods for the forestConfiger interface
func (f *Classifier) setNumTrees(n int)             { f.NTrees = n }
func (f *Classifier) setFeatureRatio(r float64)     { f.FeatureRatio = r }
func (f *Classifier) setClamp(c RatioClamp)         { f.Clamp = c }
func (f *Classifier) setNumWorkers(n int)           { f.nWorkers = n }
func (f *Classifier) setComputeOOB()                { f.computeOOB = true }
func (f *Classifier) setSeed(n int64)               { f.seed = n }
func (f *Classifier) setLogger(l *slog.Logger)      { f.logger = l }
func (f *Classifier) setMetrics(m *metrics.Metrics) { f.metrics = m }

// NumTrees sets the number of trees in the ensemble.
func NumTrees(n int) Option {
	return func(c forestConfiger) {
		c.setNumTrees(n)
	}
}

// FeatureRatio sets the fraction of attributes random forest members
// consider at each split. Bagging ignores it.
func FeatureRatio(r float64) Option {
	return func(c forestConfiger) {
		c.setFeatureRatio(r)
	}
}

// LegacyRatioClamp clamps the random forest feature ratio with
// ClampAtLeastOne instead of ClampAtMostOne.
func LegacyRatioClamp() Option {
	return func(c forestConfiger) {
		c.setClamp(ClampAtLeastOne)
	}
}

// NumWorkers sets the number of goroutines fitting trees concurrently.
func NumWorkers(n int) Option {
	return func(c forestConfiger) {
		c.setNumWorkers(n)
	}
}

// ComputeOOB computes the confusion matrix and accuracy from out of bag
// samples for each tree.
func ComputeOOB() Option {
	return func(c forestConfiger) {
		c.setComputeOOB()
	}
}

// Seed fixes the random state of the ensemble. Fits with the same seed and
// data produce the same trees regardless of the number of workers.
func Seed(n int64) Option {
	return func(c forestConfiger) {
		c.setSeed(n)
	}
}

// Logger sets the logger receiving per tree debug output.
func Logger(l *slog.Logger) Option {
	return func(c forestConfiger) {
		c.setLogger(l)
	}
}

// Metrics records fitted trees and out of bag accuracy in m.
func Metrics(m *metrics.Metrics) Option {
	return func(c forestConfiger) {
		c.setMetrics(m)
	}
}

// NewBagging returns a bagging ensemble. Every member selects splits by gain
// ratio over all attributes. If no options are passed, the returned Classifier
// will be equivalent to the following call:
//
//	clf := NewBagging(NumTrees(15), NumWorkers(1))
func NewBagging(options ...Option) *Classifier {
	f := newClassifier(true)

	for _, opt := range options {
		opt(f)
	}

	return f
}

// NewRandomForest returns a random forest. Members select splits by gini
// reduction over a random subset of attributes at every node. If no options
// are passed, the returned Classifier will be equivalent to the following
// call:
//
//	clf := NewRandomForest(NumTrees(15), FeatureRatio(0.2), NumWorkers(1))
func NewRandomForest(options ...Option) *Classifier {
	f := newClassifier(false)

	for _, opt := range options {
		opt(f)
	}

	return f
}

func newClassifier(bagging bool) *Classifier {
	return &Classifier{
		NTrees:       15,
		FeatureRatio: 0.2,
		Bagging:      bagging,
		nWorkers:     1,
		seed:         time.Now().UnixNano(),
		logger:       slog.Default(),
	}
}

// Method names the ensemble, "bag" or "forest".
func (f *Classifier) Method() string {
	if f.Bagging {
		return "bag"
	}
	return "forest"
}

// TreeRatio is the feature ratio every member is fit with.
func (f *Classifier) TreeRatio() float64 {
	switch {
	case f.Bagging:
		return 1
	case f.Clamp == ClampAtLeastOne:
		return math.Max(f.FeatureRatio, 1)
	default:
		return math.Min(f.FeatureRatio, 1)
	}
}
