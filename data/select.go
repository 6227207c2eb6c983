package data

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"

	"github.com/wlattner/dtree/sample"
)

func (d *Dataset) selectAttribute(r *rand.Rand) {
	n := len(d.attributes)

	d.f = int(math.Floor(d.ratio * float64(n)))
	if d.f < 1 {
		d.f = 1
	}
	if d.f > n {
		d.f = n
	}

	if d.ratio == 1 {
		d.criterion = GainRatio
		d.best = d.maxGainRatio()
		return
	}

	d.criterion = DeltaGini
	var masked []int
	if n > 0 {
		masked = sample.SubSample(r, n, n-d.f)
	}
	d.best = d.maxDeltaGini(masked)
}

// maxGainRatio returns the attribute with the highest gain ratio among those
// whose gain is at least the mean gain, first index on ties.
func (d *Dataset) maxGainRatio() int {
	n := len(d.attributes)
	if n == 0 {
		return -1
	}

	info := d.Entropy()
	gain := make([]float64, n)
	ratio := make([]float64, n)
	for i, a := range d.attributes {
		gain[i] = info - a.Info()
		if a.SplitInfo() == 0 {
			ratio[i] = math.Inf(-1)
		} else {
			ratio[i] = gain[i] / a.SplitInfo()
		}
	}

	// tolerance keeps equal gains from falling below their own rounded mean
	mean := floats.Sum(gain)/float64(n) - 1e-12
	for i := range ratio {
		if gain[i] < mean {
			ratio[i] = math.Inf(-1)
		}
	}

	best := floats.MaxIdx(ratio)
	if math.IsInf(ratio[best], -1) {
		return -1
	}
	return best
}

// maxDeltaGini returns the attribute with the largest gini reduction after
// zeroing the masked attributes, first index on ties. A non-positive best
// reduction means no attribute is eligible.
func (d *Dataset) maxDeltaGini(masked []int) int {
	n := len(d.attributes)
	if n == 0 {
		return -1
	}

	g := d.Gini()
	delta := make([]float64, n)
	for i, a := range d.attributes {
		delta[i] = g - a.Gini()
	}
	for _, i := range masked {
		delta[i] = 0
	}

	return maxPositive(delta)
}

// maxPositive returns the first index of the largest value, or -1 when that
// value is not positive. Reductions that round below zero count as none.
func maxPositive(delta []float64) int {
	best := floats.MaxIdx(delta)
	if delta[best] <= 0 {
		return -1
	}
	return best
}
