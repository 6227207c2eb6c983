package tree

import "math/rand"

// Option configures a Classifier.
type Option func(treeConfiger)

type treeConfiger interface {
	setFeatureRatio(r float64)
	setRandState(n int64)
}

// FeatureRatio sets the fraction of attributes considered at each split. With
// the default of 1 every split is chosen by gain ratio over all attributes;
// smaller ratios choose by gini reduction over a random attribute subset.
func FeatureRatio(r float64) Option {
	return func(c treeConfiger) {
		c.setFeatureRatio(r)
	}
}

// RandState sets the seed for the random number generator
func RandState(n int64) Option {
	return func(c treeConfiger) {
		c.setRandState(n)
	}
}

// methods for the treeConfiger interface
func (t *Classifier) setFeatureRatio(r float64) { t.FeatureRatio = r }
func (t *Classifier) setRandState(n int64)      { t.randState = rand.New(rand.NewSource(n)) }
