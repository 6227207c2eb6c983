// Package data holds the records, per-attribute statistics and datasets that
// drive attribute selection during tree induction.
package data

import (
	"fmt"
	"math"
)

// Label is a binary class label.
type Label int

const (
	Negative Label = -1
	Positive Label = 1
)

// ParseLabel converts the integer encoding used in input files (+1/-1) to a
// Label.
func ParseLabel(v int) (Label, error) {
	switch Label(v) {
	case Positive, Negative:
		return Label(v), nil
	}
	return 0, fmt.Errorf("%w: %d", ErrInvalidLabel, v)
}

// Valid reports whether l is Positive or Negative.
func (l Label) Valid() bool { return l == Positive || l == Negative }

// Vote is the weight the label contributes to an ensemble vote.
func (l Label) Vote() int {
	if l == Positive {
		return 1
	}
	return -1
}

func (l Label) String() string {
	switch l {
	case Positive:
		return "+1"
	case Negative:
		return "-1"
	}
	return fmt.Sprintf("Label(%d)", int(l))
}

// Entropy returns the two class entropy, in bits, of a node holding p
// positive and n negative examples. A pure node has zero entropy.
func Entropy(p, n int) float64 {
	if p == 0 || n == 0 {
		return 0
	}
	t := float64(p + n)
	fp := float64(p) / t
	fn := float64(n) / t
	return -fp*math.Log2(fp) - fn*math.Log2(fn)
}

// Gini returns the gini impurity of a node holding p positive and n
// negative examples.
// g_t = 1 - sum over k p(c_k|t)^2
func Gini(p, n int) float64 {
	t := float64(p + n)
	fp := float64(p) / t
	fn := float64(n) / t
	return 1.0 - fp*fp - fn*fn
}
