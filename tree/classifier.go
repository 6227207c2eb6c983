// Package tree induces multiway decision trees over discrete attributes.
package tree

import (
	"math/rand"
	"time"

	"github.com/xh3b4sd/tracer"

	"github.com/wlattner/dtree/data"
)

// Classifier implements a decision tree classifier. The classifier
// should be initialized with NewClassifier.
type Classifier struct {
	Root         Node
	FeatureRatio float64
	randState    *rand.Rand
	nFeatures    int
}

// NewClassifier returns a configured/initialized decision tree classifier.
// If no options are passed, the returned Classifier will be equivalent to the
// following call:
//
//	clf := NewClassifier(FeatureRatio(1))
func NewClassifier(options ...Option) *Classifier {
	c := &Classifier{
		FeatureRatio: 1,
		randState:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	for _, opt := range options {
		opt(c)
	}

	return c
}

// Fit constructs a tree from the provided records.
func (t *Classifier) Fit(records []data.Record) error {
	d, err := data.New(records, t.dataOptions()...)
	if err != nil {
		return tracer.Mask(err)
	}

	return t.build(d)
}

// FitInx constructs a tree as in Fit, using the records of src at the
// positions in inx. Positions may repeat. FitInx is intended for meta
// algorithms that rely on bootstrap sampling, such as bagging.
func (t *Classifier) FitInx(src *data.Dataset, inx []int) error {
	d, err := data.Subset(src, inx, t.dataOptions()...)
	if err != nil {
		return tracer.Mask(err)
	}

	return t.build(d)
}

// FitDataset constructs a tree rooted at d. The root split follows the
// options d was built with, deeper splits use the tree's FeatureRatio.
func (t *Classifier) FitDataset(d *data.Dataset) error {
	return t.build(d)
}

func (t *Classifier) dataOptions() []data.Option {
	return []data.Option{data.FeatureRatio(t.FeatureRatio), data.RandState(t.randState)}
}

// Query returns the label the tree assigns to r. An attribute value that
// never reached a node during training resolves to that node's majority
// label. Query panics on an unfitted tree.
func (t *Classifier) Query(r data.Record) data.Label {
	if t.Root == nil {
		panic("tree: Query called before Fit")
	}

	n := t.Root
	for {
		switch v := n.(type) {
		case *Leaf:
			return v.Label
		case *Internal:
			i, ok := v.Branches[r.Value(v.SplitVar)]
			if !ok {
				return v.Label
			}
			n = v.Children[i]
		}
	}
}

// Predict returns the predicted label for each record.
func (t *Classifier) Predict(records []data.Record) []data.Label {
	labels := make([]data.Label, len(records))
	for i, r := range records {
		labels[i] = t.Query(r)
	}
	return labels
}

// PredictInx returns predictions for the records of src at the positions
// in inx.
func (t *Classifier) PredictInx(src *data.Dataset, inx []int) []data.Label {
	labels := make([]data.Label, len(inx))
	for i, j := range inx {
		labels[i] = t.Query(src.Record(j))
	}
	return labels
}

// Depth is the number of edges on the longest root to leaf path.
func (t *Classifier) Depth() int {
	var depth func(Node) int
	depth = func(n Node) int {
		in, ok := n.(*Internal)
		if !ok {
			return 0
		}
		deepest := 0
		for _, c := range in.Children {
			if d := depth(c); d > deepest {
				deepest = d
			}
		}
		return deepest + 1
	}

	if t.Root == nil {
		return 0
	}
	return depth(t.Root)
}

// NumLeaves counts the leaves of the tree.
func (t *Classifier) NumLeaves() int {
	if t.Root == nil {
		return 0
	}

	leaves := 0
	s := []Node{t.Root}
	for len(s) > 0 {
		n := s[len(s)-1]
		s = s[:len(s)-1]

		switch v := n.(type) {
		case *Leaf:
			leaves++
		case *Internal:
			s = append(s, v.Children...)
		}
	}
	return leaves
}

// VarImp returns importance scores for each attribute, the total decrease in
// gini impurity from splits on the attribute weighted by the examples reaching
// the split, normalized to sum to one. A tree without splits scores zero
// everywhere.
func (t *Classifier) VarImp() []float64 {
	imp := make([]float64, t.nFeatures)
	if t.Root == nil {
		return imp
	}

	s := []Node{t.Root}
	for len(s) > 0 {
		n := s[len(s)-1]
		s = s[:len(s)-1]

		in, ok := n.(*Internal)
		if !ok {
			continue
		}

		decrease := float64(in.Samples) * in.Impurity
		for _, c := range in.Children {
			decrease -= float64(c.N()) * c.GiniImpurity()
			s = append(s, c)
		}
		imp[in.SplitVar] += decrease
	}

	nSamples := float64(t.Root.N())
	total := 0.0
	for i := range imp {
		imp[i] /= nSamples
		total += imp[i]
	}

	if total <= 0 {
		return make([]float64, t.nFeatures)
	}

	// normalize
	for i := range imp {
		imp[i] /= total
	}

	return imp
}
