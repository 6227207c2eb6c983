// Package eval scores binary classifiers on held-out data.
package eval

import (
	"github.com/sourcegraph/conc/iter"

	"github.com/wlattner/dtree/data"
)

// Classifier is anything that labels a record: a single tree or an ensemble.
type Classifier interface {
	Query(r data.Record) data.Label
}

// Pair is one prediction alongside the record's actual label.
type Pair struct {
	Predicted data.Label
	Actual    data.Label
}

// Pairs queries c with every record of d, in dataset order.
func Pairs(c Classifier, d *data.Dataset) []Pair {
	return iter.Map(d.Records(), func(r *data.Record) Pair {
		return Pair{Predicted: c.Query(*r), Actual: r.Label()}
	})
}

// Matrix is a binary confusion matrix.
type Matrix struct {
	TP, TN, FP, FN int
}

// Add counts one prediction.
func (m *Matrix) Add(predicted, actual data.Label) {
	switch {
	case predicted == data.Positive && actual == data.Positive:
		m.TP++
	case predicted == data.Negative && actual == data.Negative:
		m.TN++
	case predicted == data.Positive:
		m.FP++
	default:
		m.FN++
	}
}

// Total is the number of counted predictions.
func (m Matrix) Total() int { return m.TP + m.TN + m.FP + m.FN }

// Accuracy is the fraction of correct predictions.
func (m Matrix) Accuracy() float64 {
	return float64(m.TP+m.TN) / float64(m.Total())
}

// Test evaluates c on every record of d.
func Test(c Classifier, d *data.Dataset) Matrix {
	var m Matrix
	for _, p := range Pairs(c, d) {
		m.Add(p.Predicted, p.Actual)
	}
	return m
}
